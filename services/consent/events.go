package consent

const (
	TopicName = "consent"
	savedName = TopicName + ".saved"
)

type ConsentSaved struct {
	VisitorID  string
	Statistics bool
	Marketing  bool
}

func (e ConsentSaved) GetEventTypeName() string {
	return savedName
}

func (e ConsentSaved) GetAggregateName() string {
	return e.VisitorID
}
