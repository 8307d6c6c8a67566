package health

import (
	"context"
	"errors"
	"strings"
	"time"

	"castador-pro/internal/domain/birds"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("health record not found")
	ErrBirdNotFound = errors.New("bird not found")
)

// BirdSource resuelve aves del owner; lo implementa birds.Service.
type BirdSource interface {
	GetByID(ctx context.Context, id, ownerUserID string) (birds.Bird, error)
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
	BirdID   string
	Type     Type
	Product  string
	Dose     string
	Date     time.Time
	NextDate *time.Time
	Notes    string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Record, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	birdID := strings.TrimSpace(in.BirdID)
	if ownerUserID == "" || birdID == "" || in.Date.IsZero() {
		return Record{}, ErrInvalidInput
	}
	if !ValidType(in.Type) {
		return Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Product) == "" {
		return Record{}, ErrInvalidInput
	}

	if _, err := s.birds.GetByID(ctx, birdID, ownerUserID); err != nil {
		return Record{}, ErrBirdNotFound
	}

	now := s.now()
	rec := Record{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		BirdID:      birdID,
		Type:        in.Type,
		Product:     strings.TrimSpace(in.Product),
		Dose:        strings.TrimSpace(in.Dose),
		Date:        in.Date,
		NextDate:    in.NextDate,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id, ownerUserID string) (Record, error) {
	rec, err := s.repo.GetByID(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID))
	if err != nil {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, ownerUserID string, f ListFilter) ([]Record, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID), f)
}

type UpdateInput struct {
	BirdID   *string
	Type     *Type
	Product  *string
	Dose     *string
	Date     *time.Time
	NextDate *time.Time
	Notes    *string

	// ClearNextDate limpia la próxima aplicación (NextDate=nil no alcanza
	// para distinguir "no tocar" de "quitar").
	ClearNextDate bool
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Record, error) {
	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}

	if in.BirdID != nil {
		bid := strings.TrimSpace(*in.BirdID)
		if bid == "" {
			return Record{}, ErrInvalidInput
		}
		if _, err := s.birds.GetByID(ctx, bid, rec.OwnerUserID); err != nil {
			return Record{}, ErrBirdNotFound
		}
		rec.BirdID = bid
	}
	if in.Type != nil {
		if !ValidType(*in.Type) {
			return Record{}, ErrInvalidInput
		}
		rec.Type = *in.Type
	}
	if in.Product != nil {
		p := strings.TrimSpace(*in.Product)
		if p == "" {
			return Record{}, ErrInvalidInput
		}
		rec.Product = p
	}
	if in.Dose != nil {
		rec.Dose = strings.TrimSpace(*in.Dose)
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return Record{}, ErrInvalidInput
		}
		rec.Date = *in.Date
	}
	if in.ClearNextDate {
		rec.NextDate = nil
	} else if in.NextDate != nil {
		rec.NextDate = in.NextDate
	}
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}

	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
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

// Reminder es un registro con próxima aplicación dentro de la ventana,
// con los datos básicos del ave pegados.
type Reminder struct {
	Record
	BirdCode string
	BirdName string
}

// reminderWindow arma [hoy 00:00, hoy+7d fin de día]: una próxima fecha
// para hoy mismo también cuenta.
func (s *Service) reminderWindow() (from, to time.Time) {
	now := s.now()
	from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to = from.AddDate(0, 0, ReminderWindowDays).Add(24*time.Hour - time.Nanosecond)
	return from, to
}

func (s *Service) Reminders(ctx context.Context, ownerUserID string) ([]Reminder, error) {
	from, to := s.reminderWindow()
	items, err := s.repo.ListUpcoming(ctx, strings.TrimSpace(ownerUserID), from, to)
	if err != nil {
		return nil, err
	}

	out := make([]Reminder, 0, len(items))
	for _, rec := range items {
		rem := Reminder{Record: rec}
		if b, err := s.birds.GetByID(ctx, rec.BirdID, rec.OwnerUserID); err == nil {
			rem.BirdCode = b.Code
			rem.BirdName = b.Name
		}
		out = append(out, rem)
	}
	return out, nil
}

// CountReminders es Reminders sin el enriquecimiento, para el dashboard.
func (s *Service) CountReminders(ctx context.Context, ownerUserID string) (int, error) {
	from, to := s.reminderWindow()
	items, err := s.repo.ListUpcoming(ctx, strings.TrimSpace(ownerUserID), from, to)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
