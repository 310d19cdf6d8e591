package quiz

import "github.com/MarcGrol/furniturestore/services/commerce"

const (
	QuestionCount = 5
	OptionCount   = 4
)

type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Options are ordered from least to most; the index of the chosen option is its score.
var questions = [QuestionCount]Question{
	{
		Text:    "How do you spend most evenings at home?",
		Options: []string{"Out and about", "Working at my desk", "Reading in a chair", "Stretched out on the couch"},
	},
	{
		Text:    "How many people usually sit with you?",
		Options: []string{"Just me", "Two of us", "Three or four", "The whole family and the dog"},
	},
	{
		Text:    "How firm do you like your seat?",
		Options: []string{"Firm and upright", "Supportive", "Soft", "Sink-in soft"},
	},
	{
		Text:    "How much room do you have?",
		Options: []string{"A small corner", "A compact living room", "A spacious living room", "An open-plan loft"},
	},
	{
		Text:    "How often do you take a nap on your seat?",
		Options: []string{"Never", "Rarely", "Most weekends", "Every day"},
	},
}

type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

type RecommendationRequest struct {
	Answers []int `json:"answers" form:"answers"`
}

type RecommendationResponse struct {
	Score   int              `json:"score"`
	Product commerce.Product `json:"product"`
}

type quizPageData struct {
	Questions      []Question
	Recommendation *RecommendationResponse
	Error          string
}
