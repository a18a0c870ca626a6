package api

import (
	"log/slog"
	"net/http"
	"time"

	"loanledger/internal/api/handler"
	mw "loanledger/internal/api/middleware"
	"loanledger/internal/config"
	"loanledger/internal/domain/customer"
	"loanledger/internal/domain/entry"
	"loanledger/internal/domain/loan"
	"loanledger/internal/domain/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(authService user.AuthService, customerService customer.CustomerService, loanService loan.LoanService, entryService entry.EntryService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupAuthRoutes(router, authService, cfg, logger)
	setupCustomerRoutes(router, cfg, customerService, loanService, entryService, logger)
	setupLoanRoutes(router, loanService, cfg, logger)
	setupEntryRoutes(router, entryService, cfg, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupAuthRoutes(router *chi.Mux, svc user.AuthService, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewAuthHandler(svc, cfg.Server.Auth, logger)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})
}

func setupCustomerRoutes(router chi.Router, cfg *config.Config, svc customer.CustomerService, loanSvc loan.LoanService, entrySvc entry.EntryService, logger *slog.Logger) {
	h := handler.NewCustomerHandler(svc, logger)
	loanHandler := handler.NewLoanHandler(loanSvc, logger)
	entryHandler := handler.NewEntryHandler(entrySvc, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateCustomer)
		r.Get("/", h.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.GetCustomer)
			r.Put("/", h.UpdateCustomer)
			r.Delete("/", h.DeleteCustomer)
			r.Get("/loans", loanHandler.ListLoansByCustomer)
			r.Get("/entries", entryHandler.ListEntriesByCustomer)
		})
	})
}

func setupLoanRoutes(router *chi.Mux, svc loan.LoanService, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewLoanHandler(svc, logger)

	router.Route("/loans", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateLoan)
		r.Get("/", h.ListLoans)
		r.Route("/{loanNumber}", func(r chi.Router) {
			r.Get("/", h.GetLoan)
			r.Put("/", h.UpdateLoan)
			r.Delete("/", h.DeleteLoan)
		})
	})
}

func setupEntryRoutes(router *chi.Mux, svc entry.EntryService, cfg *config.Config, logger *slog.Logger) {
	h := handler.NewEntryHandler(svc, logger)

	router.Route("/entries", func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.Server.Auth, logger))
		r.Post("/", h.CreateEntry)
		r.Get("/", h.ListEntries)
		r.Get("/expiring", h.GetExpiringLoans)
		r.Route("/{entryID}", func(r chi.Router) {
			r.Get("/", h.GetEntry)
			r.Put("/", h.UpdateEntry)
			r.Delete("/", h.DeleteEntry)
		})
	})
}
