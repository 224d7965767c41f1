package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Jimmysmirlies/cheerbase/internal/invoice"
	"github.com/Jimmysmirlies/cheerbase/internal/models"
	"github.com/Jimmysmirlies/cheerbase/internal/store"
)

// InvoiceResponse pairs the assembled invoice with its computed totals so
// clients never redo tax math.
type InvoiceResponse struct {
	Invoice invoice.InvoiceData `json:"invoice"`
	Totals  invoice.Totals      `json:"totals"`
}

// Invoice serves GET /invoices/{id}: assemble the registration's invoice
// from fresh club/event snapshots and compute totals. Optional query params
// club_name, invoice_id, and order_version override the defaults.
func Invoice(repo store.Repository, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, status, err := buildInvoice(repo, r)
		if err != nil {
			if status == http.StatusNotFound {
				writeError(w, status, "invoice unavailable")
				return
			}
			log.Error().Err(err).Str("registration", chi.URLParam(r, "id")).Msg("invoice assembly failed")
			writeError(w, status, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func buildInvoice(repo store.Repository, r *http.Request) (*InvoiceResponse, int, error) {
	id := chi.URLParam(r, "id")

	reg, err := repo.GetRegistration(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusInternalServerError, err
	}

	club, err := repo.GetClubData(reg.ClubID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, http.StatusInternalServerError, err
	}

	// A deleted or historical event is fine; assembly synthesizes pricing.
	var event *models.Event
	if reg.EventID != "" {
		event, err = repo.GetEvent(reg.EventID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, http.StatusInternalServerError, err
		}
	}

	q := r.URL.Query()
	opts := invoice.Options{
		ClubName:  q.Get("club_name"),
		InvoiceID: q.Get("invoice_id"),
	}
	if v, err := strconv.Atoi(q.Get("order_version")); err == nil && v > 0 {
		opts.OrderVersion = v
	}

	inv := invoice.Assemble(*reg, club, event, opts)
	return &InvoiceResponse{Invoice: inv, Totals: invoice.ComputeTotals(inv)}, http.StatusOK, nil
}
