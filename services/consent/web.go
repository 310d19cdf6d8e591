package consent

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/mypublisher"
	"github.com/MarcGrol/furniturestore/lib/mystore"
	"github.com/MarcGrol/furniturestore/lib/mytime"
	"github.com/MarcGrol/furniturestore/lib/myuuid"
)

type webService struct {
	service  *service
	injector *ScriptInjector
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[ConsentRecord], pub mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, injector *ScriptInjector) *webService {
	logger := mylog.New("consent")
	return &webService{
		logger:   logger,
		injector: injector,
		service:  newService(store, pub, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/consent", s.getConsent()).Methods("GET")
	router.HandleFunc("/api/consent", s.saveConsent()).Methods("POST")
	router.HandleFunc("/api/consent/accept-all", s.saveFixedConsent(true)).Methods("POST")
	router.HandleFunc("/api/consent/reject-all", s.saveFixedConsent(false)).Methods("POST")
	router.HandleFunc("/consent", s.consentPage()).Methods("GET")

	err := s.service.publisher.CreateTopic(c, TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", TopicName, err)
	}

	return nil
}

//go:embed templates
var templateFolder embed.FS
var (
	consentPageTemplate *template.Template
)

func init() {
	consentPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/consent.html"))
}

type SaveConsentRequest struct {
	Statistics bool   `json:"statistics" form:"statistics"`
	Marketing  bool   `json:"marketing" form:"marketing"`
	ReturnTo   string `json:"returnTo" form:"returnTo"`
}

type ConsentResponse struct {
	Decided bool     `json:"decided"`
	Consent *Consent `json:"consent"`
	Scripts []string `json:"scripts"`
}

type consentPageData struct {
	State    State
	ReturnTo string
	Scripts  template.HTML
}

func (s *webService) responseOf(state State) ConsentResponse {
	resp := ConsentResponse{
		Decided: state.Decided,
		Scripts: s.injector.ScriptIDs(state),
	}
	if state.Decided {
		resp.Consent = &state.Consent
	}
	return resp
}

func (s *webService) getConsent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		errorWriter.Write(c, w, http.StatusOK, s.responseOf(FromRequest(r)))
	}
}

func (s *webService) saveConsent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := SaveConsentRequest{}
		err := myhttp.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}

		s.save(c, w, r, req)
	}
}

func (s *webService) saveFixedConsent(allowAll bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := SaveConsentRequest{}
		err := myhttp.DecodeRequest(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, err)
			return
		}
		req.Statistics = allowAll
		req.Marketing = allowAll

		s.save(c, w, r, req)
	}
}

func (s *webService) save(c context.Context, w http.ResponseWriter, r *http.Request, req SaveConsentRequest) {
	errorWriter := myhttp.NewWriter(s.logger)

	visitorID, consent, err := s.service.save(c, visitorIDFromRequest(r), req.Statistics, req.Marketing, r.UserAgent())
	if err != nil {
		errorWriter.WriteError(c, w, err)
		return
	}

	err = writeCookie(w, r, consent, visitorID)
	if err != nil {
		errorWriter.WriteError(c, w, myerrors.NewInternalError(err))
		return
	}

	if myhttp.IsFormPost(r) {
		http.Redirect(w, r, myhttp.SafeReturnPath(req.ReturnTo), http.StatusSeeOther)
		return
	}

	errorWriter.Write(c, w, http.StatusOK, s.responseOf(State{Decided: true, Consent: consent}))
}

func (s *webService) consentPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		state := FromRequest(r)
		errorWriter.WriteHTML(c, w, http.StatusOK, consentPageTemplate, consentPageData{
			State:    state,
			ReturnTo: myhttp.SafeReturnPath(r.URL.Query().Get("returnTo")),
			Scripts:  s.injector.Render(c, state),
		})
	}
}
