package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/edumarket/edumarket-backend/internal/api/handlers"
	"github.com/edumarket/edumarket-backend/internal/config"
	"github.com/edumarket/edumarket-backend/internal/metrics"
	"github.com/edumarket/edumarket-backend/internal/middleware"
	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/services"
)

type Deps struct {
	Cfg           config.Config
	Auth          *middleware.AuthMiddleware
	Users         *services.UserService
	Balances      *services.BalanceService
	Notes         *services.NoteService
	Purchases     *services.PurchaseService
	Withdrawals   *services.WithdrawalService
	Courses       *services.CourseService
	Ratings       *services.RatingService
	Announcements *services.AnnouncementService
	Notifications *services.NotificationService
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authH := handlers.NewAuthHandler(d.Users)
	usersH := handlers.NewUsersHandler(d.Users)
	balancesH := handlers.NewBalancesHandler(d.Balances)
	notesH := handlers.NewNotesHandler(d.Notes, d.Purchases)
	purchaseH := handlers.NewPurchaseHandler(d.Purchases)
	withdrawalsH := handlers.NewWithdrawalsHandler(d.Withdrawals)
	coursesH := handlers.NewCoursesHandler(d.Courses)
	ratingsH := handlers.NewRatingsHandler(d.Ratings)
	announcementsH := handlers.NewAnnouncementsHandler(d.Announcements)
	notificationsH := handlers.NewNotificationsHandler(d.Notifications)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)
		r.Get("/notes", notesH.List)
		r.Get("/notes/{id}", notesH.Get)
		r.Get("/notes/{id}/reviews", notesH.ListReviews)
		r.Get("/courses", coursesH.List)
		r.Get("/courses/{id}", coursesH.Get)
		r.Get("/courses/{id}/content", coursesH.Content)
		r.Get("/announcements", announcementsH.List)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth)

			r.Get("/users/me", usersH.Me)
			r.With(middleware.RequireRole(models.RoleAdmin)).Get("/users", usersH.List)

			r.Get("/balances/current", balancesH.Current)
			r.Get("/balances/profit", balancesH.Profit)

			r.Post("/notes", notesH.Create)
			r.Get("/notes/mine", notesH.Mine)
			r.Get("/notes/purchased", notesH.Purchased)
			r.Put("/notes/{id}", notesH.Update)
			r.Delete("/notes/{id}", notesH.Delete)
			r.Post("/notes/{id}/file", notesH.AttachFile)
			r.Post("/notes/{id}/reviews", notesH.AddReview)

			r.Post("/purchase", purchaseH.Purchase)
			r.Get("/sales", purchaseH.ListSales)
			r.Get("/sales/{id}", purchaseH.GetSale)

			r.Post("/withdrawals", withdrawalsH.Create)
			r.Get("/withdrawals", withdrawalsH.List)
			r.Route("/withdrawals/{id}", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Post("/accepted", withdrawalsH.Accept)
				r.Post("/rejected", withdrawalsH.Reject)
				r.Post("/completed", withdrawalsH.Complete)
			})

			r.Post("/courses", coursesH.Create)
			r.Put("/courses/{id}", coursesH.Update)
			r.Delete("/courses/{id}", coursesH.Delete)
			r.Post("/courses/{id}/modules", coursesH.AddModule)
			r.Post("/modules/{id}/lessons", coursesH.AddLesson)

			r.Post("/users/{id}/ratings", ratingsH.Rate)
			r.Get("/users/{id}/ratings", ratingsH.ListForUser)

			r.With(middleware.RequireRole(models.RoleAdmin)).Post("/announcements", announcementsH.Create)

			r.Get("/notifications", notificationsH.List)
			r.Post("/notifications/{id}/read", notificationsH.MarkRead)
		})
	})

	return r
}
