package pages

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/furniturestore/lib/mycontext"
	"github.com/MarcGrol/furniturestore/lib/myerrors"
	"github.com/MarcGrol/furniturestore/lib/myhttp"
	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/services/commerce"
	"github.com/MarcGrol/furniturestore/services/consent"
)

type webService struct {
	client   commerce.Client
	carts    CartReader
	injector *consent.ScriptInjector
	logger   mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(client commerce.Client, carts CartReader, injector *consent.ScriptInjector) *webService {
	return &webService{
		client:   client,
		carts:    carts,
		injector: injector,
		logger:   mylog.New("pages"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/", s.homePage()).Methods("GET")
	router.HandleFunc("/products", s.productsPage()).Methods("GET")
	router.HandleFunc("/products/{handle}", s.productPage()).Methods("GET")
	router.HandleFunc("/collections/{handle}", s.collectionPage()).Methods("GET")
	router.HandleFunc("/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/faq", s.faqPage()).Methods("GET")
	router.HandleFunc("/about", s.aboutPage()).Methods("GET")

	return nil
}

//go:embed templates
var templateFolder embed.FS
var (
	homePageTemplate       *template.Template
	productsPageTemplate   *template.Template
	productPageTemplate    *template.Template
	collectionPageTemplate *template.Template
	cartPageTemplate       *template.Template
	faqPageTemplate        *template.Template
	aboutPageTemplate      *template.Template
	errorPageTemplate      *template.Template
)

var templateFuncs = template.FuncMap{
	"money": func(m commerce.Money) string {
		return m.Amount.StringFixed(2) + " " + m.CurrencyCode
	},
	"amount": func(d decimal.Decimal, currencyCode string) string {
		return d.StringFixed(2) + " " + currencyCode
	},
}

func init() {
	homePageTemplate = parsePage("home.html")
	productsPageTemplate = parsePage("products.html")
	productPageTemplate = parsePage("product.html")
	collectionPageTemplate = parsePage("collection.html")
	cartPageTemplate = parsePage("cart.html")
	faqPageTemplate = parsePage("faq.html")
	aboutPageTemplate = parsePage("about.html")
	errorPageTemplate = parsePage("error.html")
}

// parsePage combines the shared layout with the content of a single page.
func parsePage(name string) *template.Template {
	tmpl := template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFolder, "templates/layout.html", "templates/"+name))
	return tmpl.Lookup("layout")
}

func (s *webService) layout(r *http.Request, title string) layoutData {
	c := mycontext.ContextFromHTTPRequest(r)

	state := consent.FromRequest(r)
	data := layoutData{
		Title:   title,
		Path:    r.URL.RequestURI(),
		Consent: state,
		Scripts: s.injector.Render(c, state),
	}

	current, err := s.carts.CurrentCart(r)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error reading cart for page %s: %s", data.Path, err)
		return data
	}
	data.CartCount = current.GetItemCount()
	return data
}

func (s *webService) writeErrorPage(c context.Context, w http.ResponseWriter, r *http.Request, err error) {
	status := myerrors.GetHTTPStatus(err)
	s.logger.Log(c, "", mylog.SeverityWarn, "Error rendering page %s: http-status:%d, error-msg:%s", r.URL.Path, status, err)

	myhttp.NewWriter(s.logger).WriteHTML(c, w, status, errorPageTemplate, errorPageData{
		layoutData: s.layout(r, "Something went wrong"),
		Status:     status,
		Message:    myerrors.GetMessage(err),
	})
}

func (s *webService) homePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		featured, err := s.client.GetCollectionByHandle(c, featuredCollection, commerce.DefaultPageSize)
		if err != nil {
			s.writeErrorPage(c, w, r, err)
			return
		}

		myhttp.NewWriter(s.logger).WriteHTML(c, w, http.StatusOK, homePageTemplate, homePageData{
			layoutData: s.layout(r, "Furniture for slow living"),
			Featured:   featured,
			FAQ:        faqEntries[:faqTeaserSize],
		})
	}
}

func (s *webService) productsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		products, err := s.client.ListProducts(c, commerce.MaxPageSize)
		if err != nil {
			s.writeErrorPage(c, w, r, err)
			return
		}

		myhttp.NewWriter(s.logger).WriteHTML(c, w, http.StatusOK, productsPageTemplate, productsPageData{
			layoutData: s.layout(r, "All products"),
			Products:   products,
		})
	}
}

func (s *webService) productPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		product, err := s.client.GetProductByHandle(c, mux.Vars(r)["handle"])
		if err != nil {
			s.writeErrorPage(c, w, r, err)
			return
		}

		myhttp.NewWriter(s.logger).WriteHTML(c, w, http.StatusOK, productPageTemplate, productPageData{
			layoutData: s.layout(r, product.Title),
			Product:    product,
		})
	}
}

func (s *webService) collectionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		collection, err := s.client.GetCollectionByHandle(c, mux.Vars(r)["handle"], commerce.MaxPageSize)
		if err != nil {
			s.writeErrorPage(c, w, r, err)
			return
		}

		myhttp.NewWriter(s.logger).WriteHTML(c, w, http.StatusOK, collectionPageTemplate, collectionPageData{
			layoutData: s.layout(r, collection.Title),
			Collection: collection,
		})
	}
}

func (s *webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		current, err := s.carts.CurrentCart(r)
		if err != nil {
			s.writeErrorPage(c, w, r, err)
			return
		}

		myhttp.NewWriter(s.logger).WriteHTML(c, w, http.StatusOK, cartPageTemplate, cartPageData{
			layoutData: s.layout(r, "Your cart"),
			Cart:       current,
		})
	}
}

func (s *webService) faqPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).WriteHTML(c, w, http.StatusOK, faqPageTemplate, faqPageData{
			layoutData: s.layout(r, "Frequently asked questions"),
			FAQ:        faqEntries,
		})
	}
}

func (s *webService) aboutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).WriteHTML(c, w, http.StatusOK, aboutPageTemplate, s.layout(r, "About us"))
	}
}
