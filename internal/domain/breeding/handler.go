package breeding

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"castador-pro/internal/domain/birds"
	"castador-pro/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pairs", func(pr chi.Router) {
		pr.Post("/", createPairHandler(svc))
		pr.Get("/", listPairsHandler(svc))

		pr.Get("/{pairID}", getPairHandler(svc))
		pr.Patch("/{pairID}", updatePairHandler(svc))
		pr.Delete("/{pairID}", deletePairHandler(svc))
	})

	r.Route("/litters", func(lr chi.Router) {
		lr.Post("/", createLitterHandler(svc))
		lr.Get("/", listLittersHandler(svc))

		lr.Get("/{litterID}", getLitterHandler(svc))
		lr.Patch("/{litterID}", updateLitterHandler(svc))
		lr.Delete("/{litterID}", deleteLitterHandler(svc))

		lr.Post("/{litterID}/chicks", registerChicksHandler(svc))
	})
}

type createPairRequest struct {
	FatherID string `json:"father_id"`
	MotherID string `json:"mother_id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Goal     string `json:"goal"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
}

type pairResponse struct {
	ID                     string     `json:"id"`
	OwnerUserID            string     `json:"owner_user_id"`
	FatherID               string     `json:"father_id"`
	MotherID               string     `json:"mother_id"`
	Date                   time.Time  `json:"date"`
	Goal                   string     `json:"goal"`
	Notes                  string     `json:"notes"`
	Status                 PairStatus `json:"status"`
	EstimatedConsanguinity float64    `json:"estimated_consanguinity"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

type updatePairRequest struct {
	FatherID *string `json:"father_id"`
	MotherID *string `json:"mother_id"`
	Date     *string `json:"date"`
	Goal     *string `json:"goal"`
	Notes    *string `json:"notes"`
	Status   *string `json:"status"`
}

func createPairHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPairRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.CreatePair(r.Context(), claims.UserID, CreatePairInput{
			FatherID: req.FatherID,
			MotherID: req.MotherID,
			Date:     date,
			Goal:     req.Goal,
			Notes:    req.Notes,
			Status:   PairStatus(strings.TrimSpace(req.Status)),
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPairResponse(p))
	}
}

func listPairsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		status := PairStatus(strings.TrimSpace(r.URL.Query().Get("status")))
		items, err := svc.ListPairs(r.Context(), claims.UserID, status)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]pairResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPairResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPairHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetPair(r.Context(), chi.URLParam(r, "pairID"), claims.UserID)
		if err != nil {
			http.Error(w, "pair not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPairResponse(p))
	}
}

func updatePairHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updatePairRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdatePairInput{
			FatherID: req.FatherID,
			MotherID: req.MotherID,
			Goal:     req.Goal,
			Notes:    req.Notes,
		}
		if req.Date != nil {
			t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.Date))
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Date = &t
		}
		if req.Status != nil {
			st := PairStatus(strings.TrimSpace(*req.Status))
			in.Status = &st
		}

		p, err := svc.UpdatePair(r.Context(), chi.URLParam(r, "pairID"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPairResponse(p))
	}
}

func deletePairHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.DeletePair(r.Context(), chi.URLParam(r, "pairID"), claims.UserID); err != nil {
			http.Error(w, "pair not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "pair deleted"})
	}
}

type createLitterRequest struct {
	PairID          string `json:"pair_id"`
	LayingStart     string `json:"laying_start"`
	EggCount        *int   `json:"egg_count"`
	IncubationStart string `json:"incubation_start"`
	Method          string `json:"method"`
	HatchDate       string `json:"hatch_date"`
	ChicksHatched   *int   `json:"chicks_hatched"`
	Notes           string `json:"notes"`
}

type litterResponse struct {
	ID              string      `json:"id"`
	OwnerUserID     string      `json:"owner_user_id"`
	PairID          string      `json:"pair_id"`
	LayingStart     *time.Time  `json:"laying_start,omitempty"`
	EggCount        *int        `json:"egg_count,omitempty"`
	IncubationStart *time.Time  `json:"incubation_start,omitempty"`
	Method          HatchMethod `json:"method"`
	HatchDate       *time.Time  `json:"hatch_date,omitempty"`
	ChicksHatched   *int        `json:"chicks_hatched,omitempty"`
	Notes           string      `json:"notes"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type updateLitterRequest struct {
	LayingStart     *string `json:"laying_start"`
	EggCount        *int    `json:"egg_count"`
	IncubationStart *string `json:"incubation_start"`
	Method          *string `json:"method"`
	HatchDate       *string `json:"hatch_date"`
	ChicksHatched   *int    `json:"chicks_hatched"`
	Notes           *string `json:"notes"`
}

func createLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createLitterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := CreateLitterInput{
			PairID:        req.PairID,
			EggCount:      req.EggCount,
			Method:        HatchMethod(strings.TrimSpace(req.Method)),
			ChicksHatched: req.ChicksHatched,
			Notes:         req.Notes,
		}

		var badDate bool
		in.LayingStart, badDate = parseOptionalDate(req.LayingStart)
		if badDate {
			http.Error(w, "laying_start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		in.IncubationStart, badDate = parseOptionalDate(req.IncubationStart)
		if badDate {
			http.Error(w, "incubation_start must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		in.HatchDate, badDate = parseOptionalDate(req.HatchDate)
		if badDate {
			http.Error(w, "hatch_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		l, err := svc.CreateLitter(r.Context(), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toLitterResponse(l))
	}
}

func listLittersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListLitters(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]litterResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLitterResponse(l))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		l, err := svc.GetLitter(r.Context(), chi.URLParam(r, "litterID"), claims.UserID)
		if err != nil {
			http.Error(w, "litter not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toLitterResponse(l))
	}
}

func updateLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateLitterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateLitterInput{
			EggCount:      req.EggCount,
			ChicksHatched: req.ChicksHatched,
			Notes:         req.Notes,
		}
		if req.Method != nil {
			m := HatchMethod(strings.TrimSpace(*req.Method))
			in.Method = &m
		}

		var bad bool
		if req.LayingStart != nil {
			if in.LayingStart, bad = parseOptionalDate(*req.LayingStart); bad {
				http.Error(w, "laying_start must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		if req.IncubationStart != nil {
			if in.IncubationStart, bad = parseOptionalDate(*req.IncubationStart); bad {
				http.Error(w, "incubation_start must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		if req.HatchDate != nil {
			if in.HatchDate, bad = parseOptionalDate(*req.HatchDate); bad {
				http.Error(w, "hatch_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}

		l, err := svc.UpdateLitter(r.Context(), chi.URLParam(r, "litterID"), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLitterResponse(l))
	}
}

func deleteLitterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.DeleteLitter(r.Context(), chi.URLParam(r, "litterID"), claims.UserID); err != nil {
			http.Error(w, "litter not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "litter deleted"})
	}
}

type registerChicksRequest struct {
	Count int `json:"count"`
}

func registerChicksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerChicksRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		chicks, err := svc.RegisterChicks(r.Context(), chi.URLParam(r, "litterID"), claims.UserID, req.Count)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "chicks registered",
			"count":   len(chicks),
			"chicks":  toChickSummaries(chicks),
		})
	}
}

type chickSummary struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	FatherID  string     `json:"father_id,omitempty"`
	MotherID  string     `json:"mother_id,omitempty"`
}

func toChickSummaries(items []birds.Bird) []chickSummary {
	out := make([]chickSummary, 0, len(items))
	for _, b := range items {
		out = append(out, chickSummary{
			ID:        b.ID,
			Code:      b.Code,
			BirthDate: b.BirthDate,
			FatherID:  b.FatherID,
			MotherID:  b.MotherID,
		})
	}
	return out
}

func toPairResponse(p Pair) pairResponse {
	return pairResponse{
		ID:                     p.ID,
		OwnerUserID:            p.OwnerUserID,
		FatherID:               p.FatherID,
		MotherID:               p.MotherID,
		Date:                   p.Date,
		Goal:                   p.Goal,
		Notes:                  p.Notes,
		Status:                 p.Status,
		EstimatedConsanguinity: p.EstimatedConsanguinity,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func toLitterResponse(l Litter) litterResponse {
	return litterResponse{
		ID:              l.ID,
		OwnerUserID:     l.OwnerUserID,
		PairID:          l.PairID,
		LayingStart:     l.LayingStart,
		EggCount:        l.EggCount,
		IncubationStart: l.IncubationStart,
		Method:          l.Method,
		HatchDate:       l.HatchDate,
		ChicksHatched:   l.ChicksHatched,
		Notes:           l.Notes,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// parseOptionalDate: "" = sin valor; formato inválido devuelve bad=true.
func parseOptionalDate(s string) (t *time.Time, bad bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	v, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, true
	}
	return &v, false
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPairNotFound), errors.Is(err, ErrLitterNotFound), errors.Is(err, ErrBirdNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFatherRole), errors.Is(err, ErrMotherRole):
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
