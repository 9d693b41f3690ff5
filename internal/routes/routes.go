package routes

import (
	"net/http"

	"evcms/internal/handlers"
	"evcms/internal/middleware"
	"evcms/internal/models"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Posts *handlers.PostHandler
	SEO   *handlers.SEOHandler

	CustomerSupport   *handlers.EnquiryHandler[models.CustomerSupport]
	RequestDemo       *handlers.EnquiryHandler[models.RequestDemo]
	DealershipEnquiry *handlers.EnquiryHandler[models.DealershipEnquiry]
	CustomerFeedback  *handlers.EnquiryHandler[models.CustomerFeedback]
	TestDriveBooking  *handlers.EnquiryHandler[models.TestDriveBooking]
	DownloadBrochure  *handlers.EnquiryHandler[models.DownloadBrochure]
}

// InitRoutes builds the router: public reads and form submissions on one
// subrouter, admin mutations behind JWT on another.
func InitRoutes(h Handlers, jwtSecret string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Recoverer)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	public := r.PathPrefix("/api").Subrouter()

	admin := r.PathPrefix("/api").Subrouter()
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.OnlyRole("admin"))

	// Blog posts. Fixed paths go before the {slug} catch-all.
	public.HandleFunc("/blogs", h.Posts.List).Methods(http.MethodGet)
	public.HandleFunc("/blogs/featured", h.Posts.Featured).Methods(http.MethodGet)
	public.HandleFunc("/blogs/by_category", h.Posts.ByCategory).Methods(http.MethodGet)
	public.HandleFunc("/blogs/latest", h.Posts.Latest).Methods(http.MethodGet)
	public.HandleFunc("/blogs/{slug}", h.Posts.Retrieve).Methods(http.MethodGet)

	admin.HandleFunc("/blogs", h.Posts.Create).Methods(http.MethodPost)
	admin.HandleFunc("/blogs/{slug}", h.Posts.Update).Methods(http.MethodPut)
	admin.HandleFunc("/blogs/{slug}", h.Posts.PartialUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/blogs/{slug}", h.Posts.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/blogs/{slug}/publish", h.Posts.Publish).Methods(http.MethodPost)
	admin.HandleFunc("/blogs/{slug}/unpublish", h.Posts.Unpublish).Methods(http.MethodPost)

	// SEO registry. Fixed paths go before the {page_id} catch-all.
	public.HandleFunc("/seo", h.SEO.List).Methods(http.MethodGet)
	public.HandleFunc("/seo/full-seo", h.SEO.FullSEO).Methods(http.MethodGet)
	public.HandleFunc("/seo/advanced", h.SEO.GetSite).Methods(http.MethodGet)
	public.HandleFunc("/seo/{page_id}", h.SEO.Retrieve).Methods(http.MethodGet)

	admin.HandleFunc("/seo", h.SEO.Create).Methods(http.MethodPost)
	admin.HandleFunc("/seo/advanced", h.SEO.UpdateSite).Methods(http.MethodPut, http.MethodPatch)
	admin.HandleFunc("/seo/{page_id}", h.SEO.Update).Methods(http.MethodPut)
	admin.HandleFunc("/seo/{page_id}", h.SEO.PartialUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/seo/{page_id}", h.SEO.Delete).Methods(http.MethodDelete)

	// Lead forms: anyone can submit, only admins can read or manage.
	mountEnquiry(public, admin, "/customer-support", h.CustomerSupport)
	mountEnquiry(public, admin, "/request-demo", h.RequestDemo)
	mountEnquiry(public, admin, "/dealership-enquiry", h.DealershipEnquiry)
	mountEnquiry(public, admin, "/feedback", h.CustomerFeedback)
	mountEnquiry(public, admin, "/testdrive-booking", h.TestDriveBooking)
	mountEnquiry(public, admin, "/download-brochure", h.DownloadBrochure)

	return r
}

func mountEnquiry[T any](public, admin *mux.Router, path string, h *handlers.EnquiryHandler[T]) {
	public.HandleFunc(path, h.Create).Methods(http.MethodPost)

	admin.HandleFunc(path, h.List).Methods(http.MethodGet)
	admin.HandleFunc(path+"/{id:[0-9]+}", h.Retrieve).Methods(http.MethodGet)
	admin.HandleFunc(path+"/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	admin.HandleFunc(path+"/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}
