package conditioning

import (
	"context"
	"errors"
	"testing"
	"time"

	"castador-pro/internal/domain/birds"

	"github.com/google/uuid"
)

// -------------------------
// Dobles de prueba
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Record
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Record{}}
}

func (r *testRepo) Create(ctx context.Context, rec Record) error {
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id, ownerUserID string) (Record, error) {
	rec, ok := r.byID[id]
	if !ok || rec.OwnerUserID != ownerUserID {
		return Record{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string, status Status) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID {
			continue
		}
		if status != "" && rec.Status != status {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, rec Record) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	rec, ok := r.byID[id]
	if !ok || rec.OwnerUserID != ownerUserID {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) FindCurrentByBird(ctx context.Context, ownerUserID, birdID string) (Record, bool, error) {
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID || rec.BirdID != birdID {
			continue
		}
		if rec.Status == StatusActive || rec.Status == StatusResting {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
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

const owner = "user-1"

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo, *testBirdSource) {
	repo := newTestRepo()
	src := newTestBirdSource()
	svc := NewService(repo, src)
	svc.now = func() time.Time { return testNow }
	return svc, repo, src
}

func TestCreate_InitializesCycle(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)

	rec, err := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != StatusActive {
		t.Fatalf("expected active status, got %s", rec.Status)
	}
	if !rec.StartDate.Equal(testNow) {
		t.Fatalf("start date must default to today")
	}
	if len(rec.Sessions) != SessionSlots {
		t.Fatalf("expected %d session slots, got %d", SessionSlots, len(rec.Sessions))
	}
	for i, s := range rec.Sessions {
		if s.Number != i+1 || s.Done || s.Minutes != nil {
			t.Fatalf("slot %d must start empty", i+1)
		}
	}
}

func TestCreate_OnlyRoosters(t *testing.T) {
	svc, _, src := newTestService()
	h := src.add(birds.RoleHen)

	if _, err := svc.Create(context.Background(), owner, CreateInput{BirdID: h.ID}); !errors.Is(err, ErrNotRooster) {
		t.Fatalf("expected ErrNotRooster, got %v", err)
	}
}

func TestCreate_ConflictWithOngoingCycle(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)

	if _, err := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestCreate_AllowedAfterFinalize(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)

	first, err := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Finalize(context.Background(), first.ID, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID}); err != nil {
		t.Fatalf("finished cycle must not block a new one: %v", err)
	}
}

func TestRecordMilestone(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)
	rec, _ := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})

	got, err := svc.RecordMilestone(context.Background(), rec.ID, owner, 2, "buen tope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Milestone2Done || got.Milestone2Date == nil {
		t.Fatalf("expected milestone 2 stamped")
	}
	if got.Milestone1Done {
		t.Fatalf("milestone 1 must stay untouched")
	}

	if _, err := svc.RecordMilestone(context.Background(), rec.ID, owner, 3, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for milestone 3, got %v", err)
	}
}

func TestRecordSession(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)
	rec, _ := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})

	got, err := svc.RecordSession(context.Background(), rec.ID, owner, 3, 15, "suave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slot := got.Sessions[2]
	if !slot.Done || slot.Minutes == nil || *slot.Minutes != 15 {
		t.Fatalf("expected slot 3 completed with 15 minutes")
	}

	// Repetir el trabajo pisa los minutos.
	got, err = svc.RecordSession(context.Background(), rec.ID, owner, 3, 25, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *got.Sessions[2].Minutes != 25 {
		t.Fatalf("expected slot 3 overwritten with 25 minutes")
	}

	if _, err := svc.RecordSession(context.Background(), rec.ID, owner, 6, 10, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for slot 6, got %v", err)
	}
}

func TestBeginRest(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)
	rec, _ := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})

	if _, err := svc.BeginRest(context.Background(), rec.ID, owner, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 0 days, got %v", err)
	}
	if _, err := svc.BeginRest(context.Background(), rec.ID, owner, 21); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 21 days, got %v", err)
	}

	got, err := svc.BeginRest(context.Background(), rec.ID, owner, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusResting || !got.InRest {
		t.Fatalf("expected resting state")
	}
	wantEnd := testNow.AddDate(0, 0, 20)
	if got.RestEnd == nil || !got.RestEnd.Equal(wantEnd) {
		t.Fatalf("expected rest end %v, got %v", wantEnd, got.RestEnd)
	}

	// Reiniciar el descanso arranca el período de nuevo.
	got, err = svc.BeginRest(context.Background(), rec.ID, owner, 5)
	if err != nil {
		t.Fatalf("restart must be allowed: %v", err)
	}
	if got.RestDays == nil || *got.RestDays != 5 {
		t.Fatalf("expected rest days reset to 5")
	}
}

func TestEndRest(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)
	rec, _ := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})

	if _, err := svc.BeginRest(context.Background(), rec.ID, owner, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.EndRest(context.Background(), rec.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusActive || got.InRest {
		t.Fatalf("expected back to active")
	}
}

func TestFinalize_ClearsRest(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)
	rec, _ := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})

	if _, err := svc.BeginRest(context.Background(), rec.ID, owner, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.Finalize(context.Background(), rec.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusFinished || got.InRest {
		t.Fatalf("expected finished with rest cleared")
	}
}

func TestFinalize_IsTerminal(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)
	rec, _ := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID})

	if _, err := svc.Finalize(context.Background(), rec.ID, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.EndRest(context.Background(), rec.ID, owner); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished on end rest, got %v", err)
	}
	if _, err := svc.BeginRest(context.Background(), rec.ID, owner, 5); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished on begin rest, got %v", err)
	}

	got, err := svc.GetByID(context.Background(), rec.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusFinished {
		t.Fatalf("finished cycle must stay finished, got %s", got.Status)
	}
}

func TestList_EnrichesWithBird(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add(birds.RoleRooster)
	if _, err := svc.Create(context.Background(), owner, CreateInput{BirdID: g.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := svc.List(context.Background(), owner, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 record, got %d", len(items))
	}
	if items[0].BirdCode != g.Code {
		t.Fatalf("expected bird code attached, got %q", items[0].BirdCode)
	}
}
