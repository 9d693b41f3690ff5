package app

import (
	"evcms/internal/config"
	"evcms/internal/handlers"
	"evcms/internal/models"
	"evcms/internal/repository"
	"evcms/internal/routes"
	"evcms/internal/services"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitApp wires repositories, services and handlers onto the router.
func InitApp(cfg *config.Config, db *pgxpool.Pool) *mux.Router {
	postRepo := repository.NewPostRepo(db)
	seoRepo := repository.NewSEORepo(db)

	postService := services.NewPostService(postRepo)
	seoService := services.NewSEOService(seoRepo, cfg.SiteURL)

	h := routes.Handlers{
		Posts: handlers.NewPostHandler(postService),
		SEO:   handlers.NewSEOHandler(seoService),

		CustomerSupport: handlers.NewEnquiryHandler(
			services.NewEnquiryService[models.CustomerSupport](repository.NewCustomerSupportRepo(db), "customer_support")),
		RequestDemo: handlers.NewEnquiryHandler(
			services.NewEnquiryService[models.RequestDemo](repository.NewRequestDemoRepo(db), "request_demo")),
		DealershipEnquiry: handlers.NewEnquiryHandler(
			services.NewEnquiryService[models.DealershipEnquiry](repository.NewDealershipEnquiryRepo(db), "dealership_enquiry")),
		CustomerFeedback: handlers.NewEnquiryHandler(
			services.NewEnquiryService[models.CustomerFeedback](repository.NewCustomerFeedbackRepo(db), "customer_feedback")),
		TestDriveBooking: handlers.NewEnquiryHandler(
			services.NewEnquiryService[models.TestDriveBooking](repository.NewTestDriveBookingRepo(db), "testdrive_booking")),
		DownloadBrochure: handlers.NewEnquiryHandler(
			services.NewEnquiryService[models.DownloadBrochure](repository.NewDownloadBrochureRepo(db), "download_brochure")),
	}

	return routes.InitRoutes(h, cfg.JWTSecret)
}
