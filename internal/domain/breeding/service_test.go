package breeding

import (
	"context"
	"errors"
	"testing"
	"time"

	"castador-pro/internal/domain/birds"
	"castador-pro/internal/domain/pedigree"

	"github.com/google/uuid"
)

// -------------------------
// Dobles de prueba
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testPairRepo struct {
	byID map[string]Pair
}

func newTestPairRepo() *testPairRepo {
	return &testPairRepo{byID: map[string]Pair{}}
}

func (r *testPairRepo) Create(ctx context.Context, p Pair) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testPairRepo) GetByID(ctx context.Context, id, ownerUserID string) (Pair, error) {
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return Pair{}, errRepoNotFound
	}
	return p, nil
}

func (r *testPairRepo) ListByOwner(ctx context.Context, ownerUserID string, status PairStatus) ([]Pair, error) {
	out := make([]Pair, 0)
	for _, p := range r.byID {
		if p.OwnerUserID != ownerUserID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *testPairRepo) Update(ctx context.Context, p Pair) error {
	if _, ok := r.byID[p.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testPairRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testPairRepo) CountByOwner(ctx context.Context, ownerUserID string, status PairStatus) (int, error) {
	items, _ := r.ListByOwner(ctx, ownerUserID, status)
	return len(items), nil
}

func (r *testPairRepo) CountByBird(ctx context.Context, ownerUserID, birdID string) (int, error) {
	n := 0
	for _, p := range r.byID {
		if p.OwnerUserID != ownerUserID {
			continue
		}
		if p.FatherID == birdID || p.MotherID == birdID {
			n++
		}
	}
	return n, nil
}

type testLitterRepo struct {
	byID map[string]Litter
}

func newTestLitterRepo() *testLitterRepo {
	return &testLitterRepo{byID: map[string]Litter{}}
}

func (r *testLitterRepo) Create(ctx context.Context, l Litter) error {
	r.byID[l.ID] = l
	return nil
}

func (r *testLitterRepo) GetByID(ctx context.Context, id, ownerUserID string) (Litter, error) {
	l, ok := r.byID[id]
	if !ok || l.OwnerUserID != ownerUserID {
		return Litter{}, errRepoNotFound
	}
	return l, nil
}

func (r *testLitterRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Litter, error) {
	out := make([]Litter, 0)
	for _, l := range r.byID {
		if l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *testLitterRepo) Update(ctx context.Context, l Litter) error {
	if _, ok := r.byID[l.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func (r *testLitterRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	l, ok := r.byID[id]
	if !ok || l.OwnerUserID != ownerUserID {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testLitterRepo) CountActive(ctx context.Context, ownerUserID string) (int, error) {
	n := 0
	for _, l := range r.byID {
		if l.OwnerUserID == ownerUserID && l.IncubationStart != nil && l.HatchDate == nil {
			n++
		}
	}
	return n, nil
}

type testBirdSource struct {
	byID map[string]birds.Bird
}

func newTestBirdSource() *testBirdSource {
	return &testBirdSource{byID: map[string]birds.Bird{}}
}

func (s *testBirdSource) add(role birds.Role) birds.Bird {
	b := birds.Bird{ID: uuid.NewString(), OwnerUserID: owner, Role: role, Code: "C-" + string(role)}
	s.byID[b.ID] = b
	return b
}

func (s *testBirdSource) GetByID(ctx context.Context, id, ownerUserID string) (birds.Bird, error) {
	b, ok := s.byID[id]
	if !ok || b.OwnerUserID != ownerUserID {
		return birds.Bird{}, errRepoNotFound
	}
	return b, nil
}

func (s *testBirdSource) Create(ctx context.Context, ownerUserID string, in birds.CreateInput) (birds.Bird, error) {
	b := birds.Bird{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Role:        in.Role,
		Code:        in.Code,
		BirthDate:   in.BirthDate,
		Status:      in.Status,
		FatherID:    in.FatherID,
		MotherID:    in.MotherID,
	}
	s.byID[b.ID] = b
	return b, nil
}

type testEstimator struct {
	percentage float64
	calls      int
}

func (e *testEstimator) Estimate(ctx context.Context, ownerUserID, fatherID, motherID string, generations int) (pedigree.Estimate, error) {
	e.calls++
	return pedigree.Estimate{Percentage: e.percentage, Level: pedigree.RiskLow}, nil
}

const owner = "user-1"

func newTestService(pct float64) (*Service, *testPairRepo, *testLitterRepo, *testBirdSource, *testEstimator) {
	pairs := newTestPairRepo()
	litters := newTestLitterRepo()
	src := newTestBirdSource()
	est := &testEstimator{percentage: pct}
	svc := NewService(pairs, litters, src, est)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, pairs, litters, src, est
}

func TestCreatePair_SnapshotsEstimate(t *testing.T) {
	svc, pairs, _, src, est := newTestService(12.5)
	father := src.add(birds.RoleRooster)
	mother := src.add(birds.RoleHen)

	p, err := svc.CreatePair(context.Background(), owner, CreatePairInput{
		FatherID: father.ID,
		MotherID: mother.ID,
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.EstimatedConsanguinity != 12.5 {
		t.Fatalf("expected snapshot 12.5, got %v", p.EstimatedConsanguinity)
	}
	if p.Status != PairPlanned {
		t.Fatalf("expected default status planned, got %s", p.Status)
	}
	if est.calls != 1 {
		t.Fatalf("expected exactly one estimate call, got %d", est.calls)
	}
	if len(pairs.byID) != 1 {
		t.Fatalf("expected pair persisted")
	}
}

func TestCreatePair_HenAsFatherRejected(t *testing.T) {
	svc, pairs, _, src, _ := newTestService(0)
	henA := src.add(birds.RoleHen)
	henB := src.add(birds.RoleHen)

	_, err := svc.CreatePair(context.Background(), owner, CreatePairInput{
		FatherID: henA.ID,
		MotherID: henB.ID,
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrFatherRole) {
		t.Fatalf("expected ErrFatherRole, got %v", err)
	}
	if len(pairs.byID) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestCreatePair_MissingBird(t *testing.T) {
	svc, _, _, src, _ := newTestService(0)
	mother := src.add(birds.RoleHen)

	_, err := svc.CreatePair(context.Background(), owner, CreatePairInput{
		FatherID: "ghost",
		MotherID: mother.ID,
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrBirdNotFound) {
		t.Fatalf("expected ErrBirdNotFound, got %v", err)
	}
}

func TestUpdatePair_KeepsEstimateSnapshot(t *testing.T) {
	svc, _, _, src, est := newTestService(25)
	father := src.add(birds.RoleRooster)
	mother := src.add(birds.RoleHen)
	other := src.add(birds.RoleHen)

	p, err := svc.CreatePair(context.Background(), owner, CreatePairInput{
		FatherID: father.ID,
		MotherID: mother.ID,
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.UpdatePair(context.Background(), p.ID, owner, UpdatePairInput{MotherID: &other.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MotherID != other.ID {
		t.Fatalf("expected mother updated")
	}
	if got.EstimatedConsanguinity != 25 {
		t.Fatalf("snapshot must survive updates, got %v", got.EstimatedConsanguinity)
	}
	if est.calls != 1 {
		t.Fatalf("update must not re-estimate, got %d calls", est.calls)
	}
}

func TestCreateLitter_MarksPairDone(t *testing.T) {
	svc, pairs, _, src, _ := newTestService(0)
	father := src.add(birds.RoleRooster)
	mother := src.add(birds.RoleHen)

	p, _ := svc.CreatePair(context.Background(), owner, CreatePairInput{
		FatherID: father.ID,
		MotherID: mother.ID,
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	l, err := svc.CreateLitter(context.Background(), owner, CreateLitterInput{PairID: p.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Method != MethodHen {
		t.Fatalf("expected default method hen, got %s", l.Method)
	}
	if pairs.byID[p.ID].Status != PairDone {
		t.Fatalf("litter must mark its pair as done")
	}
}

func TestCreateLitter_UnknownPair(t *testing.T) {
	svc, _, _, _, _ := newTestService(0)

	if _, err := svc.CreateLitter(context.Background(), owner, CreateLitterInput{PairID: "ghost"}); !errors.Is(err, ErrPairNotFound) {
		t.Fatalf("expected ErrPairNotFound, got %v", err)
	}
}

func TestRegisterChicks(t *testing.T) {
	svc, _, litters, src, _ := newTestService(0)
	father := src.add(birds.RoleRooster)
	mother := src.add(birds.RoleHen)

	p, _ := svc.CreatePair(context.Background(), owner, CreatePairInput{
		FatherID: father.ID,
		MotherID: mother.ID,
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})

	hatch := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	l, _ := svc.CreateLitter(context.Background(), owner, CreateLitterInput{PairID: p.ID, HatchDate: &hatch})

	chicks, err := svc.RegisterChicks(context.Background(), l.ID, owner, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chicks) != 3 {
		t.Fatalf("expected 3 chicks, got %d", len(chicks))
	}
	for _, c := range chicks {
		if c.FatherID != father.ID || c.MotherID != mother.ID {
			t.Fatalf("chicks must inherit the pair parents")
		}
		if c.BirthDate == nil || !c.BirthDate.Equal(hatch) {
			t.Fatalf("chicks must inherit the hatch date")
		}
	}
	if got := litters.byID[l.ID].ChicksHatched; got == nil || *got != 3 {
		t.Fatalf("litter must record chicks hatched")
	}
}

func TestRegisterChicks_CountValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService(0)

	if _, err := svc.RegisterChicks(context.Background(), "whatever", owner, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for count 0, got %v", err)
	}
}
