package quiz

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/services/commerce"
	"github.com/MarcGrol/furniturestore/services/consent"
)

type webService struct {
	service  *service
	injector *consent.ScriptInjector
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(config Config, client commerce.Client, injector *consent.ScriptInjector) *webService {
	logger := mylog.New("quiz")
	return &webService{
		logger:   logger,
		injector: injector,
		service:  newService(config, client, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/quiz", s.getQuestions()).Methods("GET")
	router.HandleFunc("/api/quiz/recommendation", s.recommendation()).Methods("POST")
	router.HandleFunc("/quiz", s.quizPage()).Methods("GET")
	router.HandleFunc("/quiz", s.submitQuizPage()).Methods("POST")

	return nil
}

//go:embed templates
var templateFolder embed.FS
var (
	quizPageTemplate *template.Template
)

func init() {
	quizPageTemplate = template.Must(template.New("quiz.html").Funcs(template.FuncMap{
		"money": func(m commerce.Money) string { return m.Amount.StringFixed(2) + " " + m.CurrencyCode },
		"add":   func(a, b int) int { return a + b },
	}).ParseFS(templateFolder, "templates/quiz.html"))
}

func (s *webService) getQuestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, QuestionsResponse{
			Questions: questions[:],
		})
	}
}

func (s *webService) recommendation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := RecommendationRequest{}
		err := myhttp.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		resp, err := s.service.recommend(c, req.Answers)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

type pageData struct {
	quizPageData
	Consent consent.State
	Scripts template.HTML
}

func (s *webService) render(c context.Context, w http.ResponseWriter, r *http.Request, status int, data quizPageData) {
	state := consent.FromRequest(r)
	data.Questions = questions[:]
	myhttp.NewWriter(s.logger).WriteHTML(c, w, status, quizPageTemplate, pageData{
		quizPageData: data,
		Consent:      state,
		Scripts:      s.injector.Render(c, state),
	})
}

func (s *webService) quizPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		s.render(c, w, r, http.StatusOK, quizPageData{})
	}
}

func (s *webService) submitQuizPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		req := RecommendationRequest{}
		err := myhttp.DecodeForm(r, &req)
		if err == nil {
			var resp RecommendationResponse
			resp, err = s.service.recommend(c, req.Answers)
			if err == nil {
				s.render(c, w, r, http.StatusOK, quizPageData{Recommendation: &resp})
				return
			}
		}
		s.render(c, w, r, myerrors.GetHTTPStatus(err), quizPageData{Error: myerrors.GetMessage(err)})
	}
}
