package marketing

type Config struct {
	APIKey    string
	PublicKey string
	ListID    string
}

func (c Config) configured() bool {
	return c.APIKey != ""
}

type SubscribeRequest struct {
	Email     string `json:"email" form:"email"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Source    string `json:"source" form:"source"`
	ListID    string `json:"listId" form:"listId"`
	ReturnTo  string `json:"-" form:"returnTo"`
}

type TrackRequest struct {
	Email      string         `json:"email"`
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

type TrackReviewRequest struct {
	Email       string `json:"email"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Rating      int    `json:"rating"`
	Review      string `json:"review"`
}

type DiscountEmailRequest struct {
	Email        string `json:"email"`
	DiscountCode string `json:"discountCode"`
}

type DebugResponse struct {
	PrivateKeyConfigured bool       `json:"privateKeyConfigured"`
	PublicKeyConfigured  bool       `json:"publicKeyConfigured"`
	ListID               string     `json:"listId"`
	ListLookup           ListLookup `json:"listLookup"`
}

type ListLookup struct {
	Attempted bool      `json:"attempted"`
	OK        bool      `json:"ok"`
	List      *ListInfo `json:"list,omitempty"`
	Error     string    `json:"error,omitempty"`
}
