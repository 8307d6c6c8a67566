package conditioning

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
	r.Route("/conditioning", func(cr chi.Router) {
		cr.Post("/", createHandler(svc))
		cr.Get("/", listHandler(svc))

		cr.Get("/{recordID}", getHandler(svc))
		cr.Patch("/{recordID}", updateHandler(svc))
		cr.Delete("/{recordID}", deleteHandler(svc))

		cr.Post("/{recordID}/milestone", milestoneHandler(svc))
		cr.Post("/{recordID}/session", sessionHandler(svc))
		cr.Post("/{recordID}/rest", beginRestHandler(svc))
		cr.Post("/{recordID}/rest/end", endRestHandler(svc))
		cr.Post("/{recordID}/finalize", finalizeHandler(svc))
	})
}

type createRequest struct {
	BirdID    string `json:"bird_id"`
	StartDate string `json:"start_date"` // YYYY-MM-DD, default hoy
	Notes     string `json:"notes"`
}

type recordResponse struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`
	BirdID      string `json:"bird_id"`

	StartDate time.Time `json:"start_date"`
	Status    Status    `json:"status"`

	Milestone1Done  bool       `json:"milestone1_done"`
	Milestone1Date  *time.Time `json:"milestone1_date,omitempty"`
	Milestone1Notes string     `json:"milestone1_notes,omitempty"`
	Milestone2Done  bool       `json:"milestone2_done"`
	Milestone2Date  *time.Time `json:"milestone2_date,omitempty"`
	Milestone2Notes string     `json:"milestone2_notes,omitempty"`

	Sessions []Session `json:"sessions"`

	InRest    bool       `json:"in_rest"`
	RestDays  *int       `json:"rest_days,omitempty"`
	RestStart *time.Time `json:"rest_start,omitempty"`
	RestEnd   *time.Time `json:"rest_end,omitempty"`

	Notes string `json:"notes"`

	BirdCode  string `json:"bird_code,omitempty"`
	BirdName  string `json:"bird_name,omitempty"`
	BirdPhoto string `json:"bird_photo,omitempty"`
	BirdColor string `json:"bird_color,omitempty"`
	BirdLine  string `json:"bird_line,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createHandler godoc
// @Summary Abrir ciclo de cuido
// @Description Abre un ciclo de cuido para un gallo activo. Un gallo con ciclo active o resting no puede abrir otro (409). Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags conditioning
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createRequest true "Gallo y fecha de inicio"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "bird not found"
// @Failure 409 {string} string "bird already has an ongoing conditioning cycle"
// @Router /conditioning [post]
func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var start *time.Time
		if strings.TrimSpace(req.StartDate) != "" {
			t, err := time.Parse("2006-01-02", req.StartDate)
			if err != nil {
				http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			start = &t
		}

		rec, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			BirdID:    req.BirdID,
			StartDate: start,
			Notes:     req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toResponse(rec))
	}
}

// listHandler godoc
// @Summary Listar ciclos de cuido
// @Description Lista los ciclos del usuario, opcionalmente filtrados por estado, con los datos básicos del gallo pegados.
// @Tags conditioning
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param status query string false "active | resting | finished"
// @Success 200 {array} recordResponse
// @Failure 401 {string} string "unauthorized"
// @Router /conditioning [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		status := Status(strings.TrimSpace(r.URL.Query().Get("status")))
		items, err := svc.List(r.Context(), claims.UserID, status)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toEnrichedResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		it, err := svc.Get(r.Context(), chi.URLParam(r, "recordID"), claims.UserID)
		if err != nil {
			http.Error(w, "conditioning record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toEnrichedResponse(it))
	}
}

type updateRequest struct {
	Status   *string    `json:"status"`
	Notes    *string    `json:"notes"`
	Sessions *[]Session `json:"sessions"`
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{Notes: req.Notes, Sessions: req.Sessions}
		if req.Status != nil {
			st := Status(strings.TrimSpace(*req.Status))
			in.Status = &st
		}

		rec, err := svc.Update(r.Context(), chi.URLParam(r, "recordID"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "recordID"), claims.UserID); err != nil {
			http.Error(w, "conditioning record not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "conditioning record deleted"})
	}
}

type milestoneRequest struct {
	Number int    `json:"number"`
	Notes  string `json:"notes"`
}

// milestoneHandler godoc
// @Summary Registrar tope
// @Description Marca el tope 1 o 2 como hecho con fecha de hoy.
// @Tags conditioning
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param recordID path string true "ID del ciclo"
// @Param payload body milestoneRequest true "Número de tope (1 o 2) y notas"
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "conditioning record not found"
// @Router /conditioning/{recordID}/milestone [post]
func milestoneHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req milestoneRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.RecordMilestone(r.Context(), chi.URLParam(r, "recordID"), claims.UserID, req.Number, req.Notes)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

type sessionRequest struct {
	Number  int    `json:"number"`
	Minutes int    `json:"minutes"`
	Notes   string `json:"notes"`
}

// sessionHandler godoc
// @Summary Registrar trabajo
// @Description Completa uno de los cinco trabajos numerados con sus minutos.
// @Tags conditioning
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param recordID path string true "ID del ciclo"
// @Param payload body sessionRequest true "Número de trabajo (1 a 5), minutos y notas"
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "conditioning record not found"
// @Router /conditioning/{recordID}/session [post]
func sessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req sessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.RecordSession(r.Context(), chi.URLParam(r, "recordID"), claims.UserID, req.Number, req.Minutes, req.Notes)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

type restRequest struct {
	Days int `json:"days"`
}

// beginRestHandler godoc
// @Summary Iniciar descanso
// @Description Pone al gallo en descanso entre 1 y 20 días. Reiniciar un descanso en curso arranca el período de nuevo.
// @Tags conditioning
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param recordID path string true "ID del ciclo"
// @Param payload body restRequest true "Días de descanso (1 a 20)"
// @Success 200 {object} recordResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "conditioning record not found"
// @Router /conditioning/{recordID}/rest [post]
func beginRestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req restRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.BeginRest(r.Context(), chi.URLParam(r, "recordID"), claims.UserID, req.Days)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func endRestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, err := svc.EndRest(r.Context(), chi.URLParam(r, "recordID"), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func finalizeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rec, err := svc.Finalize(r.Context(), chi.URLParam(r, "recordID"), claims.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(rec))
	}
}

func toResponse(rec Record) recordResponse {
	return recordResponse{
		ID:              rec.ID,
		OwnerUserID:     rec.OwnerUserID,
		BirdID:          rec.BirdID,
		StartDate:       rec.StartDate,
		Status:          rec.Status,
		Milestone1Done:  rec.Milestone1Done,
		Milestone1Date:  rec.Milestone1Date,
		Milestone1Notes: rec.Milestone1Notes,
		Milestone2Done:  rec.Milestone2Done,
		Milestone2Date:  rec.Milestone2Date,
		Milestone2Notes: rec.Milestone2Notes,
		Sessions:        rec.Sessions,
		InRest:          rec.InRest,
		RestDays:        rec.RestDays,
		RestStart:       rec.RestStart,
		RestEnd:         rec.RestEnd,
		Notes:           rec.Notes,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}

func toEnrichedResponse(it WithBird) recordResponse {
	out := toResponse(it.Record)
	out.BirdCode = it.BirdCode
	out.BirdName = it.BirdName
	out.BirdPhoto = it.BirdPhoto
	out.BirdColor = it.BirdColor
	out.BirdLine = it.BirdLine
	return out
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrBirdNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrConflict), errors.Is(err, ErrFinished):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotRooster):
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
