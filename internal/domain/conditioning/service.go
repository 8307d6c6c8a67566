package conditioning

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
	ErrNotFound     = errors.New("conditioning record not found")
	ErrBirdNotFound = errors.New("bird not found")
	ErrNotRooster   = errors.New("conditioning is only for roosters")

	// ErrConflict: el gallo ya tiene un ciclo en curso (active o resting).
	ErrConflict = errors.New("bird already has an ongoing conditioning cycle")

	// ErrFinished: el ciclo ya se finalizó y no admite más transiciones.
	ErrFinished = errors.New("conditioning cycle already finished")
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
	BirdID    string
	StartDate *time.Time
	Notes     string
}

// Create abre un ciclo de cuido para un gallo. Falla con ErrConflict si
// el gallo ya tiene uno active o resting; uno finished no bloquea. Los
// cinco trabajos arrancan vacíos.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Record, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	birdID := strings.TrimSpace(in.BirdID)
	if ownerUserID == "" || birdID == "" {
		return Record{}, ErrInvalidInput
	}

	b, err := s.birds.GetByID(ctx, birdID, ownerUserID)
	if err != nil {
		return Record{}, ErrBirdNotFound
	}
	if b.Role != birds.RoleRooster {
		return Record{}, ErrNotRooster
	}

	if _, found, err := s.repo.FindCurrentByBird(ctx, ownerUserID, birdID); err != nil {
		return Record{}, err
	} else if found {
		return Record{}, ErrConflict
	}

	now := s.now()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}

	sessions := make([]Session, SessionSlots)
	for i := range sessions {
		sessions[i] = Session{Number: i + 1}
	}

	rec := Record{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		BirdID:      birdID,
		StartDate:   start,
		Status:      StatusActive,
		Sessions:    sessions,
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

// WithBird es un ciclo con los datos básicos del gallo pegados, para
// listados. Si el ave ya no existe los campos quedan vacíos.
type WithBird struct {
	Record
	BirdCode  string
	BirdName  string
	BirdPhoto string
	BirdColor string
	BirdLine  string
}

func (s *Service) enrich(ctx context.Context, rec Record) WithBird {
	out := WithBird{Record: rec}
	if b, err := s.birds.GetByID(ctx, rec.BirdID, rec.OwnerUserID); err == nil {
		out.BirdCode = b.Code
		out.BirdName = b.Name
		out.BirdPhoto = b.Photo
		out.BirdColor = b.Color
		out.BirdLine = b.Line
	}
	return out
}

func (s *Service) Get(ctx context.Context, id, ownerUserID string) (WithBird, error) {
	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return WithBird{}, err
	}
	return s.enrich(ctx, rec), nil
}

func (s *Service) List(ctx context.Context, ownerUserID string, status Status) ([]WithBird, error) {
	items, err := s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID), status)
	if err != nil {
		return nil, err
	}
	out := make([]WithBird, 0, len(items))
	for _, rec := range items {
		out = append(out, s.enrich(ctx, rec))
	}
	return out, nil
}

type UpdateInput struct {
	Status *Status
	Notes  *string

	// Sessions reemplaza la lista completa de trabajos.
	Sessions *[]Session
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) (Record, error) {
	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}

	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return Record{}, ErrInvalidInput
		}
		rec.Status = *in.Status
	}
	if in.Notes != nil {
		rec.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Sessions != nil {
		for _, sess := range *in.Sessions {
			if sess.Number < 1 || sess.Number > SessionSlots {
				return Record{}, ErrInvalidInput
			}
		}
		rec.Sessions = *in.Sessions
	}

	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// RecordMilestone marca el tope 1 o 2 como hecho con fecha de hoy.
// Repetir un tope lo re-estampa, no es error.
func (s *Service) RecordMilestone(ctx context.Context, id, ownerUserID string, number int, notes string) (Record, error) {
	if number != 1 && number != 2 {
		return Record{}, ErrInvalidInput
	}

	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}

	now := s.now()
	notes = strings.TrimSpace(notes)
	if number == 1 {
		rec.Milestone1Done = true
		rec.Milestone1Date = &now
		rec.Milestone1Notes = notes
	} else {
		rec.Milestone2Done = true
		rec.Milestone2Date = &now
		rec.Milestone2Notes = notes
	}

	rec.UpdatedAt = now
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// RecordSession completa el trabajo number (1 a 5) con sus minutos.
// Si el slot no está en la lista (datos viejos) la llamada no toca
// trabajos pero igual re-estampa UpdatedAt.
func (s *Service) RecordSession(ctx context.Context, id, ownerUserID string, number, minutes int, notes string) (Record, error) {
	if number < 1 || number > SessionSlots {
		return Record{}, ErrInvalidInput
	}

	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}

	now := s.now()
	for i := range rec.Sessions {
		if rec.Sessions[i].Number == number {
			rec.Sessions[i].Minutes = &minutes
			rec.Sessions[i].Done = true
			rec.Sessions[i].DoneAt = &now
			rec.Sessions[i].Notes = strings.TrimSpace(notes)
			break
		}
	}

	rec.UpdatedAt = now
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// BeginRest pone al gallo en descanso por days días (1 a 20). Iniciar
// descanso estando ya en descanso reinicia el período.
func (s *Service) BeginRest(ctx context.Context, id, ownerUserID string, days int) (Record, error) {
	if days < MinRestDays || days > MaxRestDays {
		return Record{}, ErrInvalidInput
	}

	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusFinished {
		return Record{}, ErrFinished
	}

	now := s.now()
	end := now.AddDate(0, 0, days)

	rec.InRest = true
	rec.RestDays = &days
	rec.RestStart = &now
	rec.RestEnd = &end
	rec.Status = StatusResting

	rec.UpdatedAt = now
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// EndRest devuelve el gallo a cuido activo. No valida que estuviera en
// descanso: llamarlo sobre un ciclo activo es inocuo. Un ciclo finished
// es terminal y no se revive por acá.
func (s *Service) EndRest(ctx context.Context, id, ownerUserID string) (Record, error) {
	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusFinished {
		return Record{}, ErrFinished
	}

	rec.InRest = false
	rec.Status = StatusActive

	rec.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Finalize cierra el ciclo. Es terminal: el gallo queda libre para un
// ciclo nuevo.
func (s *Service) Finalize(ctx context.Context, id, ownerUserID string) (Record, error) {
	rec, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Record{}, err
	}

	rec.Status = StatusFinished
	rec.InRest = false

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
