package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Jimmysmirlies/cheerbase/internal/services"
	"github.com/Jimmysmirlies/cheerbase/internal/store"
)

type createRegistrationRequest struct {
	ClubID   string `json:"clubId"`
	TeamID   string `json:"teamId"`
	EventID  string `json:"eventId"`
	Division string `json:"division"`
}

// CreateRegistration serves POST /registrations: freeze the team's roster
// and record the signup.
func CreateRegistration(gdb *gorm.DB, repo store.Repository, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if req.ClubID == "" || req.TeamID == "" || req.EventID == "" || req.Division == "" {
			writeError(w, http.StatusBadRequest, "clubId, teamId, eventId, division required")
			return
		}

		event, err := repo.GetEvent(req.EventID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "event not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}

		reg, err := services.RegisterTeam(gdb, req.ClubID, req.TeamID, *event, req.Division)
		if err != nil {
			if errors.Is(err, services.ErrTeamNotFound) {
				writeError(w, http.StatusNotFound, "team not found")
				return
			}
			log.Error().Err(err).Str("team", req.TeamID).Msg("registration failed")
			writeError(w, http.StatusInternalServerError, "registration failed")
			return
		}

		log.Info().Str("registration", reg.ID).Str("division", reg.Division).Msg("registration created")
		writeJSON(w, http.StatusCreated, reg)
	}
}

type payRequest struct {
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
	LastFour string  `json:"lastFour"`
}

// PayRegistration serves POST /registrations/{id}/pay. It records an
// already-settled payment fact; no money moves here. With no amount given
// the current balance due is settled in full.
func PayRegistration(gdb *gorm.DB, repo store.Repository, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req payRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		if req.Amount == 0 {
			resp, status, err := buildInvoice(repo, r)
			if err != nil {
				if status == http.StatusNotFound {
					writeError(w, status, "registration not found")
					return
				}
				writeError(w, status, "internal error")
				return
			}
			req.Amount = resp.Totals.BalanceDue
		}

		err := services.MarkPaid(gdb, id, req.Amount, req.Method, req.LastFour, time.Now().UTC())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrAlreadyPaid):
				writeError(w, http.StatusConflict, "already paid")
			case errors.Is(err, gorm.ErrRecordNotFound):
				writeError(w, http.StatusNotFound, "registration not found")
			default:
				log.Error().Err(err).Str("registration", id).Msg("settlement failed")
				writeError(w, http.StatusInternalServerError, "settlement failed")
			}
			return
		}

		resp, status, err := buildInvoice(repo, r)
		if err != nil {
			writeError(w, status, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
