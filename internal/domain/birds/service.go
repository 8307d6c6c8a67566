package birds

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("bird not found")

	// ErrFatherRole / ErrMotherRole: la referencia apunta a un ave del rol
	// equivocado. Se valida al escribir, nunca al leer.
	ErrFatherRole = errors.New("father must be a rooster")
	ErrMotherRole = errors.New("mother must be a hen")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Role      Role
	Code      string
	Name      string
	Photo     string
	BirthDate *time.Time
	Color     string
	Line      string
	Status    Status
	Notes     string
	QRTag     string
	FatherID  string
	MotherID  string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Bird, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Bird{}, ErrInvalidInput
	}
	if !ValidRole(in.Role) {
		return Bird{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Code) == "" {
		return Bird{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = StatusActive
	}
	if !ValidStatus(status) {
		return Bird{}, ErrInvalidInput
	}

	if err := s.checkParents(ctx, ownerUserID, in.FatherID, in.MotherID); err != nil {
		return Bird{}, err
	}

	now := s.now()
	b := Bird{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Role:        in.Role,
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Photo:       in.Photo,
		BirthDate:   in.BirthDate,
		Color:       strings.TrimSpace(in.Color),
		Line:        strings.TrimSpace(in.Line),
		Status:      status,
		Notes:       strings.TrimSpace(in.Notes),
		QRTag:       strings.TrimSpace(in.QRTag),
		FatherID:    strings.TrimSpace(in.FatherID),
		MotherID:    strings.TrimSpace(in.MotherID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Bird{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id, ownerUserID string) (Bird, error) {
	b, err := s.repo.GetByID(ctx, strings.TrimSpace(id), strings.TrimSpace(ownerUserID))
	if err != nil {
		return Bird{}, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Bird, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerUserID), f)
}

func (s *Service) Count(ctx context.Context, ownerUserID string, f CountFilter) (int, error) {
	return s.repo.Count(ctx, strings.TrimSpace(ownerUserID), f)
}

// UpdateInput es un PATCH real: nil = no tocar ese campo.
// FatherID/MotherID con string vacío limpian la referencia.
type UpdateInput struct {
	Role     *Role
	Code     *string
	Name     *string
	Photo    *string
	Color    *string
	Line     *string
	Status   *Status
	Notes    *string
	QRTag    *string
	FatherID *string
	MotherID *string

	// BirthDate distingue "no enviado" de "enviar null para limpiar".
	BirthDate OptionalDate
}

// OptionalDate es un campo fecha de tres estados: ausente, null, valor.
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

func (s *Service) UpdateProfile(ctx context.Context, id, ownerUserID string, in UpdateInput) (Bird, error) {
	b, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return Bird{}, err
	}

	if in.Role != nil {
		if !ValidRole(*in.Role) {
			return Bird{}, ErrInvalidInput
		}
		b.Role = *in.Role
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return Bird{}, ErrInvalidInput
		}
		b.Code = code
	}
	if in.Name != nil {
		b.Name = strings.TrimSpace(*in.Name)
	}
	if in.Photo != nil {
		b.Photo = *in.Photo
	}
	if in.Color != nil {
		b.Color = strings.TrimSpace(*in.Color)
	}
	if in.Line != nil {
		b.Line = strings.TrimSpace(*in.Line)
	}
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return Bird{}, ErrInvalidInput
		}
		b.Status = *in.Status
	}
	if in.Notes != nil {
		b.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.QRTag != nil {
		b.QRTag = strings.TrimSpace(*in.QRTag)
	}
	if in.BirthDate.Set {
		b.BirthDate = in.BirthDate.Value
	}

	newFather := b.FatherID
	newMother := b.MotherID
	if in.FatherID != nil {
		newFather = strings.TrimSpace(*in.FatherID)
	}
	if in.MotherID != nil {
		newMother = strings.TrimSpace(*in.MotherID)
	}
	if newFather != b.FatherID || newMother != b.MotherID {
		if err := s.checkParents(ctx, ownerUserID, newFather, newMother); err != nil {
			return Bird{}, err
		}
		b.FatherID = newFather
		b.MotherID = newMother
	}

	b.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, b); err != nil {
		return Bird{}, err
	}
	return b, nil
}

// Delete borra el ave y devuelve cuántas aves la referencian como
// padre/madre (las referencias quedan colgando a propósito: el pedigrí
// las tolera). La limpieza de peleas/salud la orquesta el handler.
func (s *Service) Delete(ctx context.Context, id, ownerUserID string) (childrenRefs int, err error) {
	id = strings.TrimSpace(id)
	ownerUserID = strings.TrimSpace(ownerUserID)

	n, err := s.repo.CountChildren(ctx, ownerUserID, id)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id, ownerUserID); err != nil {
		return 0, ErrNotFound
	}
	return n, nil
}

// Children devuelve la descendencia directa: si el ave es gallo se busca
// por father_id, si es gallina por mother_id.
func (s *Service) Children(ctx context.Context, id, ownerUserID string) ([]Bird, error) {
	b, err := s.GetByID(ctx, id, ownerUserID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListChildren(ctx, b.OwnerUserID, b.ID, b.Role == RoleRooster)
}

// checkParents valida que las referencias existan bajo el owner y tengan
// el rol correcto. Referencia vacía = sin padre/madre, válido.
func (s *Service) checkParents(ctx context.Context, ownerUserID, fatherID, motherID string) error {
	if fatherID = strings.TrimSpace(fatherID); fatherID != "" {
		f, err := s.repo.GetByID(ctx, fatherID, ownerUserID)
		if err != nil {
			return ErrNotFound
		}
		if f.Role != RoleRooster {
			return ErrFatherRole
		}
	}
	if motherID = strings.TrimSpace(motherID); motherID != "" {
		m, err := s.repo.GetByID(ctx, motherID, ownerUserID)
		if err != nil {
			return ErrNotFound
		}
		if m.Role != RoleHen {
			return ErrMotherRole
		}
	}
	return nil
}
