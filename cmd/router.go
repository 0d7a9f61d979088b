package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/gw-pesa-settlement/docs"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/config"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/handlers"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/middlewares"
)

type authAPI interface {
	handlers.Registerer
	handlers.Loginer
	handlers.KYCTierSetter
}

type paymentsAPI interface {
	handlers.WalletReader
	handlers.MpesaPayments
	handlers.LightningPayments
}

type settlementAPI interface {
	handlers.MpesaSettler
	handlers.LightningSettler
}

// api groups the services the HTTP layer depends on.
type api struct {
	tokens     middlewares.Tokener
	auth       authAPI
	payments   paymentsAPI
	rates      handlers.RateReader
	settlement settlementAPI
}

// newRouter mounts public, user, webhook and internal routes with their guards.
func newRouter(cfg *config.Config, svc api) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.RateLimitMiddleware(middlewares.NewIPRateLimiter(cfg.App.RateLimitRPS, cfg.App.RateLimitBurst)))

	// Public routes
	r.Post("/register", handlers.NewRegisterHandler(svc.auth))
	r.Post("/login", handlers.NewLoginHandler(svc.auth))

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(svc.tokens))

		r.Get("/wallet/balance", handlers.NewGetBalanceHandler(svc.payments))
		r.Get("/wallet/transactions", handlers.NewListTransactionsHandler(svc.payments))
		r.Get("/wallet/transactions/{id}", handlers.NewGetTransactionHandler(svc.payments))

		r.Post("/mpesa/deposit", handlers.NewDepositHandler(svc.payments))
		r.Post("/mpesa/withdrawal", handlers.NewWithdrawHandler(svc.payments))

		r.Post("/lightning/invoices", handlers.NewCreateInvoiceHandler(svc.payments))
		r.Post("/lightning/payments", handlers.NewPayInvoiceHandler(svc.payments))

		r.Get("/exchange-rates/current", handlers.NewExchangeRateHandler(svc.rates))
	})

	// Provider callbacks
	r.Route("/callbacks", func(r chi.Router) {
		r.Use(middlewares.WebhookSecretMiddleware(cfg.App.WebhookSecret))

		r.Post("/mpesa/stk", handlers.NewMpesaSTKCallbackHandler(svc.settlement))
		r.Post("/mpesa/b2c", handlers.NewMpesaB2CCallbackHandler(svc.settlement))
		r.Post("/lightning", handlers.NewLightningCallbackHandler(svc.settlement))
	})

	// Operator routes
	r.Route("/internal", func(r chi.Router) {
		r.Use(middlewares.InternalAPIKeyMiddleware(cfg.App.InternalAPIKey))

		r.Put("/users/{id}/kyc-tier", handlers.NewKYCTierHandler(svc.auth))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
