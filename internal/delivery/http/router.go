package http

import (
	"net/http"

	"skinconsult-api/internal/delivery/http/handler"
	"skinconsult-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	caseHandler         *handler.CaseHandler
	consultationHandler *handler.ConsultationHandler
	offerHandler        *handler.OfferHandler
	paymentHandler      *handler.PaymentHandler
	chatHandler         *handler.ChatHandler
	reviewHandler       *handler.ReviewHandler
	doctorHandler       *handler.DoctorHandler
	notificationHandler *handler.NotificationHandler
	wsHandler           *handler.WebSocketHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	uploadDir           string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	caseHandler *handler.CaseHandler,
	consultationHandler *handler.ConsultationHandler,
	offerHandler *handler.OfferHandler,
	paymentHandler *handler.PaymentHandler,
	chatHandler *handler.ChatHandler,
	reviewHandler *handler.ReviewHandler,
	doctorHandler *handler.DoctorHandler,
	notificationHandler *handler.NotificationHandler,
	wsHandler *handler.WebSocketHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	uploadDir string,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		caseHandler:         caseHandler,
		consultationHandler: consultationHandler,
		offerHandler:        offerHandler,
		paymentHandler:      paymentHandler,
		chatHandler:         chatHandler,
		reviewHandler:       reviewHandler,
		doctorHandler:       doctorHandler,
		notificationHandler: notificationHandler,
		wsHandler:           wsHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		uploadDir:           uploadDir,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public doctor directory
	api.HandleFunc("/doctors", r.doctorHandler.ListApproved).Methods(http.MethodGet)
	api.HandleFunc("/reviews/doctor/{doctorId}", r.reviewHandler.GetDoctorReviews).Methods(http.MethodGet)

	// Disease cases (patient only)
	cases := api.PathPrefix("/cases").Subrouter()
	cases.Use(r.authMiddleware.Authenticate)
	cases.Use(middleware.RequirePatient)
	cases.HandleFunc("/analyze", r.caseHandler.AnalyzeImage).Methods(http.MethodPost)
	cases.HandleFunc("/mine", r.caseHandler.GetMyCases).Methods(http.MethodGet)

	// Consultations
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.Use(r.authMiddleware.Authenticate)
	consultations.Handle("/request", middleware.RequirePatient(http.HandlerFunc(r.consultationHandler.CreateRequest))).Methods(http.MethodPost)
	consultations.Handle("/open", middleware.RequireDoctor(http.HandlerFunc(r.consultationHandler.GetOpenRequests))).Methods(http.MethodGet)
	consultations.Handle("/mine", middleware.RequirePatient(http.HandlerFunc(r.consultationHandler.GetMyConsultations))).Methods(http.MethodGet)
	consultations.Handle("/recent", middleware.RequirePatient(http.HandlerFunc(r.consultationHandler.GetRecent))).Methods(http.MethodGet)
	consultations.Handle("/assigned", middleware.RequireDoctor(http.HandlerFunc(r.consultationHandler.GetAssignedConsultations))).Methods(http.MethodGet)
	consultations.HandleFunc("/{id}", r.consultationHandler.GetByID).Methods(http.MethodGet)
	consultations.Handle("/{id}/finalize", middleware.RequireDoctor(http.HandlerFunc(r.consultationHandler.Finalize))).Methods(http.MethodPut)
	consultations.Handle("/{id}/cancel", middleware.RequirePatient(http.HandlerFunc(r.consultationHandler.Cancel))).Methods(http.MethodPut)

	// Offers
	offers := api.PathPrefix("/offers").Subrouter()
	offers.Use(r.authMiddleware.Authenticate)
	offers.Handle("/{consultationId}", middleware.RequireDoctor(http.HandlerFunc(r.offerHandler.CreateOffer))).Methods(http.MethodPost)
	offers.Handle("/consultation/{consultationId}", middleware.RequirePatient(http.HandlerFunc(r.offerHandler.ListOffers))).Methods(http.MethodGet)
	offers.Handle("/select/{offerId}", middleware.RequirePatient(http.HandlerFunc(r.offerHandler.SelectOffer))).Methods(http.MethodPost)

	// Payments (patient only)
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(r.authMiddleware.Authenticate)
	payments.Use(middleware.RequirePatient)
	payments.HandleFunc("/simulate", r.paymentHandler.SimulatePay).Methods(http.MethodPost)
	payments.HandleFunc("/mine", r.paymentHandler.GetMyPayments).Methods(http.MethodGet)

	// Chat
	chat := api.PathPrefix("/chat").Subrouter()
	chat.Use(r.authMiddleware.Authenticate)
	chat.HandleFunc("/consultations/{id}/messages", r.chatHandler.ListMessages).Methods(http.MethodGet)
	chat.HandleFunc("/consultations/{id}/messages", r.chatHandler.SendText).Methods(http.MethodPost)
	chat.HandleFunc("/consultations/{id}/messages/voice", r.chatHandler.SendVoice).Methods(http.MethodPost)
	chat.HandleFunc("/consultations/{id}/messages/file", r.chatHandler.SendFile).Methods(http.MethodPost)

	// Reviews
	reviews := api.PathPrefix("/reviews").Subrouter()
	reviews.Use(r.authMiddleware.Authenticate)
	reviews.Handle("/consultation/{consultationId}", middleware.RequirePatient(http.HandlerFunc(r.reviewHandler.CreateReview))).Methods(http.MethodPost)
	reviews.Handle("/mine", middleware.RequirePatient(http.HandlerFunc(r.reviewHandler.GetMyReviews))).Methods(http.MethodGet)

	// Notifications
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetMyNotifications).Methods(http.MethodGet)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors/{id}/approval", r.doctorHandler.SetApproval).Methods(http.MethodPut)

	// Realtime channel
	wsRoute := r.router.PathPrefix("/ws").Subrouter()
	wsRoute.Use(r.authMiddleware.Authenticate)
	wsRoute.HandleFunc("", r.wsHandler.Connect).Methods(http.MethodGet)

	// Uploaded assets
	r.router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.uploadDir))))

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
