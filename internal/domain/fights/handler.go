package fights

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"castador-pro/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/fights", func(fr chi.Router) {
		fr.Post("/", createFightHandler(svc))
		fr.Get("/", listFightsHandler(svc))

		// /stats va antes que /{fightID} para que chi no lo capture como ID.
		fr.Get("/stats", statsHandler(svc))

		fr.Get("/{fightID}", getFightHandler(svc))
		fr.Patch("/{fightID}", updateFightHandler(svc))
		fr.Delete("/{fightID}", deleteFightHandler(svc))
	})
}

type createFightRequest struct {
	BirdID string `json:"bird_id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Venue  string `json:"venue"`
	Result string `json:"result"`
	Rating string `json:"rating"`
	Notes  string `json:"notes"`
}

type fightResponse struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	BirdID      string    `json:"bird_id"`
	Date        time.Time `json:"date"`
	Venue       string    `json:"venue,omitempty"`
	Result      Result    `json:"result"`
	Rating      Rating    `json:"rating"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type updateFightRequest struct {
	BirdID *string `json:"bird_id"`
	Date   *string `json:"date"`
	Venue  *string `json:"venue"`
	Result *string `json:"result"`
	Rating *string `json:"rating"`
	Notes  *string `json:"notes"`
}

func createFightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createFightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		f, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			BirdID: req.BirdID,
			Date:   date,
			Venue:  req.Venue,
			Result: Result(strings.TrimSpace(req.Result)),
			Rating: Rating(strings.TrimSpace(req.Rating)),
			Notes:  req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toFightResponse(f))
	}
}

func listFightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		items, err := svc.List(r.Context(), claims.UserID, ListFilter{
			BirdID: strings.TrimSpace(q.Get("bird_id")),
			Result: Result(strings.TrimSpace(q.Get("result"))),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]fightResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFightResponse(f))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		st, err := svc.Stats(r.Context(), claims.UserID, StatsFilter{
			BirdID: q.Get("bird_id"),
			Line:   q.Get("line"),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func getFightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		f, err := svc.GetByID(r.Context(), chi.URLParam(r, "fightID"), claims.UserID)
		if err != nil {
			http.Error(w, "fight not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toFightResponse(f))
	}
}

func updateFightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateFightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			BirdID: req.BirdID,
			Venue:  req.Venue,
			Notes:  req.Notes,
		}
		if req.Date != nil {
			t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.Date))
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &t
		}
		if req.Result != nil {
			res := Result(strings.TrimSpace(*req.Result))
			in.Result = &res
		}
		if req.Rating != nil {
			rat := Rating(strings.TrimSpace(*req.Rating))
			in.Rating = &rat
		}

		f, err := svc.Update(r.Context(), chi.URLParam(r, "fightID"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFightResponse(f))
	}
}

func deleteFightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "fightID"), claims.UserID); err != nil {
			http.Error(w, "fight not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "fight deleted"})
	}
}

func toFightResponse(f Fight) fightResponse {
	return fightResponse{
		ID:          f.ID,
		OwnerUserID: f.OwnerUserID,
		BirdID:      f.BirdID,
		Date:        f.Date,
		Venue:       f.Venue,
		Result:      f.Result,
		Rating:      f.Rating,
		Notes:       f.Notes,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBirdNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
