package health

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
	r.Route("/health-records", func(hr chi.Router) {
		hr.Post("/", createRecordHandler(svc))
		hr.Get("/", listRecordsHandler(svc))

		// /reminders va antes que /{recordID} para que chi no lo capture.
		hr.Get("/reminders", remindersHandler(svc))

		hr.Get("/{recordID}", getRecordHandler(svc))
		hr.Patch("/{recordID}", updateRecordHandler(svc))
		hr.Delete("/{recordID}", deleteRecordHandler(svc))
	})
}

type createRecordRequest struct {
	BirdID   string `json:"bird_id"`
	Type     string `json:"type"`
	Product  string `json:"product"`
	Dose     string `json:"dose"`
	Date     string `json:"date"`      // YYYY-MM-DD
	NextDate string `json:"next_date"` // YYYY-MM-DD opcional
	Notes    string `json:"notes"`
}

type recordResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	BirdID      string     `json:"bird_id"`
	Type        Type       `json:"type"`
	Product     string     `json:"product"`
	Dose        string     `json:"dose,omitempty"`
	Date        time.Time  `json:"date"`
	NextDate    *time.Time `json:"next_date,omitempty"`
	Notes       string     `json:"notes"`
	BirdCode    string     `json:"bird_code,omitempty"`
	BirdName    string     `json:"bird_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type updateRecordRequest struct {
	BirdID  *string `json:"bird_id"`
	Type    *string `json:"type"`
	Product *string `json:"product"`
	Dose    *string `json:"dose"`
	Date    *string `json:"date"`
	Notes   *string `json:"notes"`
}

func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var next *time.Time
		if strings.TrimSpace(req.NextDate) != "" {
			t, err := time.Parse("2006-01-02", req.NextDate)
			if err != nil {
				http.Error(w, "next_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			next = &t
		}

		rec, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			BirdID:   req.BirdID,
			Type:     Type(strings.TrimSpace(req.Type)),
			Product:  req.Product,
			Dose:     req.Dose,
			Date:     date,
			NextDate: next,
			Notes:    req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		items, err := svc.List(r.Context(), claims.UserID, ListFilter{
			BirdID: strings.TrimSpace(q.Get("bird_id")),
			Type:   Type(strings.TrimSpace(q.Get("type"))),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func remindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Reminders(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rem := range items {
			resp := toRecordResponse(rem.Record)
			resp.BirdCode = rem.BirdCode
			resp.BirdName = rem.BirdName
			out = append(out, resp)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, err := svc.GetByID(r.Context(), chi.URLParam(r, "recordID"), claims.UserID)
		if err != nil {
			http.Error(w, "health record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// next_date admite null para limpiar, así que hace falta detectar
		// presencia del campo con un decode a raw primero.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateRecordRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			BirdID:  req.BirdID,
			Product: req.Product,
			Dose:    req.Dose,
			Notes:   req.Notes,
		}
		if req.Type != nil {
			t := Type(strings.TrimSpace(*req.Type))
			in.Type = &t
		}
		if req.Date != nil {
			t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.Date))
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &t
		}
		if v, exists := raw["next_date"]; exists {
			if string(v) == "null" {
				in.ClearNextDate = true
			} else {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "next_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "next_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.NextDate = &t
			}
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID"), claims.UserID); err != nil {
			http.Error(w, "health record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "health record deleted"})
	}
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:          rec.ID,
		OwnerUserID: rec.OwnerUserID,
		BirdID:      rec.BirdID,
		Type:        rec.Type,
		Product:     rec.Product,
		Dose:        rec.Dose,
		Date:        rec.Date,
		NextDate:    rec.NextDate,
		Notes:       rec.Notes,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
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
