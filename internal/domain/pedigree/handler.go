package pedigree

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"castador-pro/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/birds/{birdID}/pedigree", getPedigreeHandler(svc))
	r.Get("/consanguinity", consanguinityHandler(svc))
}

// getPedigreeHandler godoc
// @Summary Pedigrí de un ave
// @Description Arma el árbol de ancestros del ave hasta N generaciones (default 5). Referencias rotas aparecen como nodos unknown. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pedigree
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param birdID path string true "ID del ave raíz"
// @Param generations query int false "Tope de generaciones (default 5)"
// @Success 200 {object} Node
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "bird not found"
// @Router /birds/{birdID}/pedigree [get]
func getPedigreeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tree, err := svc.ResolveTree(
			r.Context(),
			claims.UserID,
			chi.URLParam(r, "birdID"),
			parseGenerations(r),
		)
		if err != nil {
			http.Error(w, "bird not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, tree)
	}
}

// consanguinityHandler godoc
// @Summary Estimar consanguinidad entre dos aves
// @Description Estima el porcentaje de consanguinidad entre un candidato a padre y una candidata a madre, listando los ancestros comunes. IDs vacíos o inexistentes degradan a 0% / low. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags pedigree
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param father_id query string true "ID del candidato a padre"
// @Param mother_id query string true "ID de la candidata a madre"
// @Param generations query int false "Tope de generaciones (default 5)"
// @Success 200 {object} Estimate
// @Failure 401 {string} string "unauthorized"
// @Router /consanguinity [get]
func consanguinityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		est, err := svc.Estimate(
			r.Context(),
			claims.UserID,
			q.Get("father_id"),
			q.Get("mother_id"),
			parseGenerations(r),
		)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, est)
	}
}

func parseGenerations(r *http.Request) int {
	if v := strings.TrimSpace(r.URL.Query().Get("generations")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultGenerations
}

// writeJSON está duplicado a propósito en los handlers de cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
