package breeding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"castador-pro/internal/domain/birds"
	"castador-pro/internal/domain/pedigree"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrPairNotFound   = errors.New("pair not found")
	ErrLitterNotFound = errors.New("litter not found")
	ErrBirdNotFound   = errors.New("bird not found")
	ErrFatherRole     = errors.New("father must be a rooster")
	ErrMotherRole     = errors.New("mother must be a hen")
)

// BirdSource es lo que este módulo necesita del registro de aves:
// resolver aves del owner y crear los pollitos de una camada.
// Lo implementa birds.Service.
type BirdSource interface {
	GetByID(ctx context.Context, id, ownerUserID string) (birds.Bird, error)
	Create(ctx context.Context, ownerUserID string, in birds.CreateInput) (birds.Bird, error)
}

// Estimator calcula la consanguinidad estimada de un cruce candidato.
// Lo implementa pedigree.Service.
type Estimator interface {
	Estimate(ctx context.Context, ownerUserID, fatherID, motherID string, generations int) (pedigree.Estimate, error)
}

type Service struct {
	pairs     PairRepository
	litters   LitterRepository
	birds     BirdSource
	estimator Estimator
	now       func() time.Time
}

func NewService(pairs PairRepository, litters LitterRepository, src BirdSource, est Estimator) *Service {
	return &Service{
		pairs:     pairs,
		litters:   litters,
		birds:     src,
		estimator: est,
		now:       time.Now,
	}
}

// ------------------------- Cruces -------------------------

type CreatePairInput struct {
	FatherID string
	MotherID string
	Date     time.Time
	Goal     string
	Notes    string
	Status   PairStatus
}

// CreatePair valida roles y existencia de ambos candidatos bajo el
// owner, estima la consanguinidad y la persiste como snapshot del cruce.
// Si la validación falla no se crea nada.
func (s *Service) CreatePair(ctx context.Context, ownerUserID string, in CreatePairInput) (Pair, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	fatherID := strings.TrimSpace(in.FatherID)
	motherID := strings.TrimSpace(in.MotherID)

	if ownerUserID == "" || fatherID == "" || motherID == "" {
		return Pair{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Pair{}, ErrInvalidInput
	}

	father, err := s.birds.GetByID(ctx, fatherID, ownerUserID)
	if err != nil {
		return Pair{}, ErrBirdNotFound
	}
	if father.Role != birds.RoleRooster {
		return Pair{}, ErrFatherRole
	}

	mother, err := s.birds.GetByID(ctx, motherID, ownerUserID)
	if err != nil {
		return Pair{}, ErrBirdNotFound
	}
	if mother.Role != birds.RoleHen {
		return Pair{}, ErrMotherRole
	}

	est, err := s.estimator.Estimate(ctx, ownerUserID, fatherID, motherID, 0)
	if err != nil {
		return Pair{}, err
	}

	status := in.Status
	if status == "" {
		status = PairPlanned
	}
	if !ValidPairStatus(status) {
		return Pair{}, ErrInvalidInput
	}

	now := s.now()
	p := Pair{
		ID:                     uuid.NewString(),
		OwnerUserID:            ownerUserID,
		FatherID:               fatherID,
		MotherID:               motherID,
		Date:                   in.Date,
		Goal:                   strings.TrimSpace(in.Goal),
		Notes:                  strings.TrimSpace(in.Notes),
		Status:                 status,
		EstimatedConsanguinity: est.Percentage,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := s.pairs.Create(ctx, p); err != nil {
		return Pair{}, err
	}
	return p, nil
}

func (s *Service) GetPair(ctx context.Context, id, ownerUserID string) (Pair, error) {
	p, err := s.pairs.GetByID(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID))
	if err != nil {
		return Pair{}, ErrPairNotFound
	}
	return p, nil
}

func (s *Service) ListPairs(ctx context.Context, ownerUserID string, status PairStatus) ([]Pair, error) {
	return s.pairs.ListByOwner(ctx, strings.TrimSpace(ownerUserID), status)
}

type UpdatePairInput struct {
	FatherID *string
	MotherID *string
	Date     *time.Time
	Goal     *string
	Notes    *string
	Status   *PairStatus
}

// UpdatePair es un PATCH: solo toca campos provistos. Si cambian los
// padres se revalidan los roles, pero el snapshot de consanguinidad NO
// se recalcula: es el valor al momento de crear el cruce.
func (s *Service) UpdatePair(ctx context.Context, id, ownerUserID string, in UpdatePairInput) (Pair, error) {
	p, err := s.GetPair(ctx, id, ownerUserID)
	if err != nil {
		return Pair{}, err
	}

	if in.FatherID != nil {
		fid := strings.TrimSpace(*in.FatherID)
		if fid == "" {
			return Pair{}, ErrInvalidInput
		}
		f, err := s.birds.GetByID(ctx, fid, p.OwnerUserID)
		if err != nil {
			return Pair{}, ErrBirdNotFound
		}
		if f.Role != birds.RoleRooster {
			return Pair{}, ErrFatherRole
		}
		p.FatherID = fid
	}
	if in.MotherID != nil {
		mid := strings.TrimSpace(*in.MotherID)
		if mid == "" {
			return Pair{}, ErrInvalidInput
		}
		m, err := s.birds.GetByID(ctx, mid, p.OwnerUserID)
		if err != nil {
			return Pair{}, ErrBirdNotFound
		}
		if m.Role != birds.RoleHen {
			return Pair{}, ErrMotherRole
		}
		p.MotherID = mid
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return Pair{}, ErrInvalidInput
		}
		p.Date = *in.Date
	}
	if in.Goal != nil {
		p.Goal = strings.TrimSpace(*in.Goal)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.Status != nil {
		if !ValidPairStatus(*in.Status) {
			return Pair{}, ErrInvalidInput
		}
		p.Status = *in.Status
	}

	p.UpdatedAt = s.now()
	if err := s.pairs.Update(ctx, p); err != nil {
		return Pair{}, err
	}
	return p, nil
}

func (s *Service) DeletePair(ctx context.Context, id, ownerUserID string) error {
	if err := s.pairs.Delete(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID)); err != nil {
		return ErrPairNotFound
	}
	return nil
}

func (s *Service) CountPairs(ctx context.Context, ownerUserID string, status PairStatus) (int, error) {
	return s.pairs.CountByOwner(ctx, strings.TrimSpace(ownerUserID), status)
}

// CountPairsByBird satisface birds.PairCounter (aviso al borrar un ave).
func (s *Service) CountPairsByBird(ctx context.Context, ownerUserID, birdID string) (int, error) {
	return s.pairs.CountByBird(ctx, strings.TrimSpace(ownerUserID), strings.TrimSpace(birdID))
}

// ------------------------- Camadas -------------------------

type CreateLitterInput struct {
	PairID          string
	LayingStart     *time.Time
	EggCount        *int
	IncubationStart *time.Time
	Method          HatchMethod
	HatchDate       *time.Time
	ChicksHatched   *int
	Notes           string
}

// CreateLitter registra la camada y marca el cruce como hecho.
func (s *Service) CreateLitter(ctx context.Context, ownerUserID string, in CreateLitterInput) (Litter, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	pairID := strings.TrimSpace(in.PairID)
	if ownerUserID == "" || pairID == "" {
		return Litter{}, ErrInvalidInput
	}

	pair, err := s.GetPair(ctx, pairID, ownerUserID)
	if err != nil {
		return Litter{}, err
	}

	method := in.Method
	if method == "" {
		method = MethodHen
	}

	now := s.now()
	l := Litter{
		ID:              uuid.NewString(),
		OwnerUserID:     ownerUserID,
		PairID:          pair.ID,
		LayingStart:     in.LayingStart,
		EggCount:        in.EggCount,
		IncubationStart: in.IncubationStart,
		Method:          method,
		HatchDate:       in.HatchDate,
		ChicksHatched:   in.ChicksHatched,
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.litters.Create(ctx, l); err != nil {
		return Litter{}, err
	}

	if pair.Status != PairDone {
		pair.Status = PairDone
		pair.UpdatedAt = now
		_ = s.pairs.Update(ctx, pair) // best-effort, la camada ya quedó
	}

	return l, nil
}

func (s *Service) GetLitter(ctx context.Context, id, ownerUserID string) (Litter, error) {
	l, err := s.litters.GetByID(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID))
	if err != nil {
		return Litter{}, ErrLitterNotFound
	}
	return l, nil
}

func (s *Service) ListLitters(ctx context.Context, ownerUserID string) ([]Litter, error) {
	return s.litters.ListByOwner(ctx, strings.TrimSpace(ownerUserID))
}

type UpdateLitterInput struct {
	LayingStart     *time.Time
	EggCount        *int
	IncubationStart *time.Time
	Method          *HatchMethod
	HatchDate       *time.Time
	ChicksHatched   *int
	Notes           *string
}

func (s *Service) UpdateLitter(ctx context.Context, id, ownerUserID string, in UpdateLitterInput) (Litter, error) {
	l, err := s.GetLitter(ctx, id, ownerUserID)
	if err != nil {
		return Litter{}, err
	}

	if in.LayingStart != nil {
		l.LayingStart = in.LayingStart
	}
	if in.EggCount != nil {
		l.EggCount = in.EggCount
	}
	if in.IncubationStart != nil {
		l.IncubationStart = in.IncubationStart
	}
	if in.Method != nil {
		l.Method = *in.Method
	}
	if in.HatchDate != nil {
		l.HatchDate = in.HatchDate
	}
	if in.ChicksHatched != nil {
		l.ChicksHatched = in.ChicksHatched
	}
	if in.Notes != nil {
		l.Notes = strings.TrimSpace(*in.Notes)
	}

	l.UpdatedAt = s.now()
	if err := s.litters.Update(ctx, l); err != nil {
		return Litter{}, err
	}
	return l, nil
}

func (s *Service) DeleteLitter(ctx context.Context, id, ownerUserID string) error {
	if err := s.litters.Delete(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID)); err != nil {
		return ErrLitterNotFound
	}
	return nil
}

func (s *Service) CountActiveLitters(ctx context.Context, ownerUserID string) (int, error) {
	return s.litters.CountActive(ctx, strings.TrimSpace(ownerUserID))
}

// RegisterChicks crea count pollitos a partir de la camada: heredan
// padre y madre del cruce y la fecha de nacimiento de la camada. Salen
// como gallos activos; el rol se corrige después cuando se sepa.
func (s *Service) RegisterChicks(ctx context.Context, litterID, ownerUserID string, count int) ([]birds.Bird, error) {
	if count < 1 {
		return nil, ErrInvalidInput
	}

	l, err := s.GetLitter(ctx, litterID, ownerUserID)
	if err != nil {
		return nil, err
	}
	pair, err := s.GetPair(ctx, l.PairID, ownerUserID)
	if err != nil {
		return nil, err
	}

	suffix := l.ID
	if len(suffix) > 4 {
		suffix = suffix[len(suffix)-4:]
	}

	created := make([]birds.Bird, 0, count)
	for i := 1; i <= count; i++ {
		b, err := s.birds.Create(ctx, ownerUserID, birds.CreateInput{
			Role:      birds.RoleRooster,
			Code:      fmt.Sprintf("P-%s-%d", suffix, i),
			BirthDate: l.HatchDate,
			Status:    birds.StatusActive,
			Notes:     fmt.Sprintf("hatched from litter %s", l.ID),
			FatherID:  pair.FatherID,
			MotherID:  pair.MotherID,
		})
		if err != nil {
			return created, err
		}
		created = append(created, b)
	}

	l.ChicksHatched = &count
	l.UpdatedAt = s.now()
	if err := s.litters.Update(ctx, l); err != nil {
		return created, err
	}

	return created, nil
}
