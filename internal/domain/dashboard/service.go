package dashboard

import (
	"context"

	"castador-pro/internal/domain/birds"
	"castador-pro/internal/domain/breeding"
	"castador-pro/internal/domain/fights"
	"castador-pro/internal/domain/health"
)

// Summary es la foto general de la operación del usuario.
type Summary struct {
	Birds           BirdCounts   `json:"birds"`
	PlannedPairs    int          `json:"planned_pairs"`
	ActiveLitters   int          `json:"active_litters"`
	Fights          FightSummary `json:"fights"`
	HealthReminders int          `json:"health_reminders"`
}

type BirdCounts struct {
	TotalActive int `json:"total_active"`
	Roosters    int `json:"roosters"`
	Hens        int `json:"hens"`
}

type FightSummary struct {
	Total         int              `json:"total"`
	Won           int              `json:"won"`
	Lost          int              `json:"lost"`
	WinPercentage float64          `json:"win_percentage"`
	Recent        []fights.Summary `json:"recent"`
}

const recentFights = 5

// Service agrega sobre los servicios de dominio; no tiene repositorio
// propio.
type Service struct {
	birds    *birds.Service
	breeding *breeding.Service
	fights   *fights.Service
	health   *health.Service
}

func NewService(b *birds.Service, br *breeding.Service, f *fights.Service, h *health.Service) *Service {
	return &Service{
		birds:    b,
		breeding: br,
		fights:   f,
		health:   h,
	}
}

func (s *Service) Summarize(ctx context.Context, ownerUserID string) (Summary, error) {
	var out Summary

	total, err := s.birds.Count(ctx, ownerUserID, birds.CountFilter{Status: birds.StatusActive})
	if err != nil {
		return Summary{}, err
	}
	roosters, err := s.birds.Count(ctx, ownerUserID, birds.CountFilter{Role: birds.RoleRooster, Status: birds.StatusActive})
	if err != nil {
		return Summary{}, err
	}
	hens, err := s.birds.Count(ctx, ownerUserID, birds.CountFilter{Role: birds.RoleHen, Status: birds.StatusActive})
	if err != nil {
		return Summary{}, err
	}
	out.Birds = BirdCounts{TotalActive: total, Roosters: roosters, Hens: hens}

	if out.PlannedPairs, err = s.breeding.CountPairs(ctx, ownerUserID, breeding.PairPlanned); err != nil {
		return Summary{}, err
	}
	if out.ActiveLitters, err = s.breeding.CountActiveLitters(ctx, ownerUserID); err != nil {
		return Summary{}, err
	}

	st, err := s.fights.Stats(ctx, ownerUserID, fights.StatsFilter{})
	if err != nil {
		return Summary{}, err
	}
	recent, err := s.fights.Recent(ctx, ownerUserID, recentFights)
	if err != nil {
		return Summary{}, err
	}
	out.Fights = FightSummary{
		Total:         st.Total,
		Won:           st.Won,
		Lost:          st.Lost,
		WinPercentage: st.WinPercentage,
		Recent:        recent,
	}

	if out.HealthReminders, err = s.health.CountReminders(ctx, ownerUserID); err != nil {
		return Summary{}, err
	}

	return out, nil
}
