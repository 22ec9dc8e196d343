package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/middleware"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/config"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System   *service.SystemService
	Position *service.PositionService
	Account  *service.AccountService
	Fund     *service.FundService
	Refresh  *service.RefreshService
	Setting  *service.SettingService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/positions", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(svc.Position, svc.Fund, svc.Refresh)
			r.Get("/", positionHandler.Positions)
			r.Post("/", positionHandler.CreatePosition)
			r.Get("/summary", positionHandler.Summary)
			r.Post("/preview", positionHandler.PreviewEntry)
			r.Post("/refresh", positionHandler.Refresh)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", positionHandler.GetPosition)
				r.Put("/", positionHandler.UpdatePosition)
				r.Delete("/", positionHandler.DeletePosition)
			})
		})

		r.Route("/accounts", func(r chi.Router) {
			accountHandler := handlers.NewAccountHandler(svc.Account)
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", accountHandler.RenameAccount)
				r.Delete("/", accountHandler.DeleteAccount)
			})
		})

		r.Route("/funds", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Fund)
			r.Get("/search", fundHandler.Search)
			r.Get("/{code}", fundHandler.Detail)
			r.Get("/{code}/history", fundHandler.History)
		})

		r.Route("/settings", func(r chi.Router) {
			settingHandler := handlers.NewSettingHandler(svc.Setting)
			r.Get("/vendor-token", settingHandler.VendorTokenStatus)
			r.Put("/vendor-token", settingHandler.SetVendorToken)
		})
	})

	return r
}
