package marketing

const (
	TopicName      = "marketing"
	subscribedName = TopicName + ".subscribed"
)

type ProfileSubscribed struct {
	Email  string
	ListID string
	Source string
}

func (e ProfileSubscribed) GetEventTypeName() string {
	return subscribedName
}

func (e ProfileSubscribed) GetAggregateName() string {
	return e.Email
}
