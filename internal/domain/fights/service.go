package fights

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"castador-pro/internal/domain/birds"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("fight not found")
	ErrBirdNotFound = errors.New("bird not found")
)

// BirdSource es la vista del registro de aves que usa este módulo:
// validar el ave al registrar una pelea y resolver aves por línea para
// las estadísticas filtradas.
type BirdSource interface {
	GetByID(ctx context.Context, id, ownerUserID string) (birds.Bird, error)
	ListByOwner(ctx context.Context, ownerUserID string, f birds.ListFilter) ([]birds.Bird, error)
}

type Service struct {
	repo  Repository
	birds BirdSource
	now   func() time.Time
}

func NewService(repo Repository, src BirdSource) *Service {
	return &Service{
		repo:  repo,
		birds: src,
		now:   time.Now,
	}
}

type CreateInput struct {
	BirdID string
	Date   time.Time
	Venue  string
	Result Result
	Rating Rating
	Notes  string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Fight, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	birdID := strings.TrimSpace(in.BirdID)
	if ownerUserID == "" || birdID == "" || in.Date.IsZero() {
		return Fight{}, ErrInvalidInput
	}
	if !ValidResult(in.Result) || !ValidRating(in.Rating) {
		return Fight{}, ErrInvalidInput
	}

	if _, err := s.birds.GetByID(ctx, birdID, ownerUserID); err != nil {
		return Fight{}, ErrBirdNotFound
	}

	now := s.now()
	f := Fight{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		BirdID:      birdID,
		Date:        in.Date,
		Venue:       strings.TrimSpace(in.Venue),
		Result:      in.Result,
		Rating:      in.Rating,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return Fight{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id, ownerUserID string) (Fight, error) {
	f, err := s.repo.GetByID(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID))
	if err != nil {
		return Fight{}, ErrNotFound
	}
	return f, nil
}

func (s *Service) List(ctx context.Context, ownerUserID string, f ListFilter) ([]Fight, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID), f)
}

type UpdateInput struct {
	BirdID *string
	Date   *time.Time
	Venue  *string
	Result *Result
	Rating *Rating
	Notes  *string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Fight, error) {
	f, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Fight{}, err
	}

	if in.BirdID != nil {
		bid := strings.TrimSpace(*in.BirdID)
		if bid == "" {
			return Fight{}, ErrInvalidInput
		}
		if _, err := s.birds.GetByID(ctx, bid, f.OwnerUserID); err != nil {
			return Fight{}, ErrBirdNotFound
		}
		f.BirdID = bid
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return Fight{}, ErrInvalidInput
		}
		f.Date = *in.Date
	}
	if in.Venue != nil {
		f.Venue = strings.TrimSpace(*in.Venue)
	}
	if in.Result != nil {
		if !ValidResult(*in.Result) {
			return Fight{}, ErrInvalidInput
		}
		f.Result = *in.Result
	}
	if in.Rating != nil {
		if !ValidRating(*in.Rating) {
			return Fight{}, ErrInvalidInput
		}
		f.Rating = *in.Rating
	}
	if in.Notes != nil {
		f.Notes = strings.TrimSpace(*in.Notes)
	}

	f.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, f); err != nil {
		return Fight{}, err
	}
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID)); err != nil {
		return ErrNotFound
	}
	return nil
}

// DeleteByBird satisface birds.RelatedCleanup.
func (s *Service) DeleteByBird(ctx context.Context, ownerUserID, birdID string) error {
	return s.repo.DeleteByBird(ctx, strings.TrimSpace(ownerUserID), strings.TrimSpace(birdID))
}

// Stats es el resumen de peleas del usuario, opcionalmente acotado a un
// ave o a una línea.
type Stats struct {
	Total         int            `json:"total"`
	Won           int            `json:"won"`
	Lost          int            `json:"lost"`
	WinPercentage float64        `json:"win_percentage"`
	Ratings       map[Rating]int `json:"ratings"`

	// CurrentStreak cuenta peleas consecutivas con el mismo resultado,
	// de la más reciente hacia atrás. StreakResult queda vacío sin peleas.
	CurrentStreak int    `json:"current_streak"`
	StreakResult  Result `json:"streak_result,omitempty"`
}

// StatsFilter: BirdID acota a un ave puntual; Line a todas las aves cuya
// línea contenga el texto (sin distinguir mayúsculas).
type StatsFilter struct {
	BirdID string
	Line   string
}

func (s *Service) Stats(ctx context.Context, ownerUserID string, filter StatsFilter) (Stats, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)

	items, err := s.repo.ListByOwner(ctx, ownerUserID, ListFilter{BirdID: strings.TrimSpace(filter.BirdID)})
	if err != nil {
		return Stats{}, err
	}

	if line := strings.TrimSpace(filter.Line); line != "" {
		owned, err := s.birds.ListByOwner(ctx, ownerUserID, birds.ListFilter{})
		if err != nil {
			return Stats{}, err
		}
		match := make(map[string]bool, len(owned))
		needle := strings.ToLower(line)
		for _, b := range owned {
			if strings.Contains(strings.ToLower(b.Line), needle) {
				match[b.ID] = true
			}
		}
		filtered := items[:0]
		for _, f := range items {
			if match[f.BirdID] {
				filtered = append(filtered, f)
			}
		}
		items = filtered
	}

	st := Stats{
		Ratings: map[Rating]int{
			RatingExtraordinary: 0,
			RatingGood:          0,
			RatingRegular:       0,
			RatingBad:           0,
		},
	}

	st.Total = len(items)
	for _, f := range items {
		switch f.Result {
		case ResultWon:
			st.Won++
		case ResultLost:
			st.Lost++
		}
		if _, ok := st.Ratings[f.Rating]; ok {
			st.Ratings[f.Rating]++
		}
	}

	if st.Total > 0 {
		st.WinPercentage = math.Round(float64(st.Won)/float64(st.Total)*1000) / 10
	}

	// La racha se calcula sobre el orden por fecha descendente.
	sort.Slice(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if len(items) > 0 {
		st.StreakResult = items[0].Result
		for _, f := range items {
			if f.Result != st.StreakResult {
				break
			}
			st.CurrentStreak++
		}
	}

	return st, nil
}

// Summary es una pelea con los datos básicos del ave, para el dashboard.
type Summary struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Result   Result    `json:"result"`
	Rating   Rating    `json:"rating"`
	BirdCode string    `json:"bird_code,omitempty"`
	BirdName string    `json:"bird_name,omitempty"`
}

func (s *Service) Recent(ctx context.Context, ownerUserID string, n int) ([]Summary, error) {
	items, err := s.repo.ListRecent(ctx, strings.TrimSpace(ownerUserID), n)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(items))
	for _, f := range items {
		sum := Summary{
			ID:     f.ID,
			Date:   f.Date,
			Result: f.Result,
			Rating: f.Rating,
		}
		if b, err := s.birds.GetByID(ctx, f.BirdID, f.OwnerUserID); err == nil {
			sum.BirdCode = b.Code
			sum.BirdName = b.Name
		}
		out = append(out, sum)
	}
	return out, nil
}
