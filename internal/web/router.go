package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Jimmysmirlies/cheerbase/internal/handlers"
	"github.com/Jimmysmirlies/cheerbase/internal/store"
)

func Router(gdb *gorm.DB, repo store.Repository, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)

	r.Post("/registrations", handlers.CreateRegistration(gdb, repo, log))
	r.Post("/registrations/{id}/pay", handlers.PayRegistration(gdb, repo, log))

	r.Get("/invoices/{id}", handlers.Invoice(repo, log))
	r.Get("/invoices/{id}/qr.png", handlers.InvoiceQR(repo))

	return r
}
