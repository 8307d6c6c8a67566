package birds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"castador-pro/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// PairCounter cuenta cruces que referencian a un ave. Lo implementa el
// servicio de breeding; se define acá para no acoplar paquetes de dominio.
type PairCounter interface {
	CountPairsByBird(ctx context.Context, ownerUserID, birdID string) (int, error)
}

// RelatedCleanup borra registros colgados de un ave (peleas, salud).
type RelatedCleanup interface {
	DeleteByBird(ctx context.Context, ownerUserID, birdID string) error
}

// DeleteDeps agrupa lo que el handler de borrado necesita de otros módulos.
type DeleteDeps struct {
	Pairs    PairCounter
	Cleanups []RelatedCleanup
}

func RegisterRoutes(r chi.Router, svc *Service, del DeleteDeps) {
	r.Route("/birds", func(br chi.Router) {
		br.Post("/", createBirdHandler(svc))
		br.Get("/", listBirdsHandler(svc))

		br.Get("/{birdID}", getBirdHandler(svc))
		br.Patch("/{birdID}", updateBirdHandler(svc))
		br.Delete("/{birdID}", deleteBirdHandler(svc, del))

		br.Get("/{birdID}/children", listChildrenHandler(svc))
	})
}

type createBirdRequest struct {
	Role      string `json:"role"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Photo     string `json:"photo"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD opcional
	Color     string `json:"color"`
	Line      string `json:"line"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
	QRTag     string `json:"qr_tag"`
	FatherID  string `json:"father_id"`
	MotherID  string `json:"mother_id"`
}

type birdResponse struct {
	ID          string     `json:"id"`
	OwnerUserID string     `json:"owner_user_id"`
	Role        Role       `json:"role"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Photo       string     `json:"photo,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Color       string     `json:"color"`
	Line        string     `json:"line"`
	Status      Status     `json:"status"`
	Notes       string     `json:"notes"`
	QRTag       string     `json:"qr_tag,omitempty"`
	FatherID    string     `json:"father_id,omitempty"`
	MotherID    string     `json:"mother_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type updateBirdRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Role     *string `json:"role"`
	Code     *string `json:"code"`
	Name     *string `json:"name"`
	Photo    *string `json:"photo"`
	Color    *string `json:"color"`
	Line     *string `json:"line"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
	QRTag    *string `json:"qr_tag"`
	FatherID *string `json:"father_id"`
	MotherID *string `json:"mother_id"`
}

func createBirdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createBirdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		b, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Role:      Role(strings.TrimSpace(req.Role)),
			Code:      req.Code,
			Name:      req.Name,
			Photo:     req.Photo,
			BirthDate: bd,
			Color:     req.Color,
			Line:      req.Line,
			Status:    Status(strings.TrimSpace(req.Status)),
			Notes:     req.Notes,
			QRTag:     req.QRTag,
			FatherID:  req.FatherID,
			MotherID:  req.MotherID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBirdResponse(b))
	}
}

func listBirdsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		items, err := svc.ListByOwner(r.Context(), claims.UserID, ListFilter{
			Role:   Role(strings.TrimSpace(q.Get("role"))),
			Status: Status(strings.TrimSpace(q.Get("status"))),
			Color:  strings.TrimSpace(q.Get("color")),
			Line:   strings.TrimSpace(q.Get("line")),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]birdResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBirdResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBirdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "birdID"), claims.UserID)
		if err != nil {
			http.Error(w, "bird not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toBirdResponse(b))
	}
}

func updateBirdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Para birth_date: null (limpiar) hay que detectar presencia del
		// campo, así que primero se decodifica a raw.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateBirdRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		bd := OptionalDate{}
		if v, exists := raw["birth_date"]; exists {
			bd.Set = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = &t
			}
		}

		in := UpdateInput{
			Code:      req.Code,
			Name:      req.Name,
			Photo:     req.Photo,
			Color:     req.Color,
			Line:      req.Line,
			Notes:     req.Notes,
			QRTag:     req.QRTag,
			FatherID:  req.FatherID,
			MotherID:  req.MotherID,
			BirthDate: bd,
		}
		if req.Role != nil {
			role := Role(strings.TrimSpace(*req.Role))
			in.Role = &role
		}
		if req.Status != nil {
			st := Status(strings.TrimSpace(*req.Status))
			in.Status = &st
		}

		b, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "birdID"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBirdResponse(b))
	}
}

func deleteBirdHandler(svc *Service, del DeleteDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		birdID := chi.URLParam(r, "birdID")

		pairRefs := 0
		if del.Pairs != nil {
			if n, err := del.Pairs.CountPairsByBird(r.Context(), claims.UserID, birdID); err == nil {
				pairRefs = n
			}
		}

		childrenRefs, err := svc.Delete(r.Context(), birdID, claims.UserID)
		if err != nil {
			http.Error(w, "bird not found", http.StatusNotFound)
			return
		}

		// Limpieza best-effort de registros dependientes (peleas, salud).
		for _, c := range del.Cleanups {
			_ = c.DeleteByBird(r.Context(), claims.UserID, birdID)
		}

		resp := map[string]any{"message": "bird deleted"}
		if childrenRefs > 0 || pairRefs > 0 {
			resp["warning"] = fmt.Sprintf(
				"this bird was parent of %d birds and appeared in %d pairs",
				childrenRefs, pairRefs,
			)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func listChildrenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Children(r.Context(), chi.URLParam(r, "birdID"), claims.UserID)
		if err != nil {
			http.Error(w, "bird not found", http.StatusNotFound)
			return
		}

		out := make([]birdResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBirdResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toBirdResponse(b Bird) birdResponse {
	return birdResponse{
		ID:          b.ID,
		OwnerUserID: b.OwnerUserID,
		Role:        b.Role,
		Code:        b.Code,
		Name:        b.Name,
		Photo:       b.Photo,
		BirthDate:   b.BirthDate,
		Color:       b.Color,
		Line:        b.Line,
		Status:      b.Status,
		Notes:       b.Notes,
		QRTag:       b.QRTag,
		FatherID:    b.FatherID,
		MotherID:    b.MotherID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFatherRole), errors.Is(err, ErrMotherRole):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo,
// igual que en el resto del proyecto: todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
