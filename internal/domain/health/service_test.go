package health

import (
	"context"
	"errors"
	"sort"
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

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID {
			continue
		}
		if f.BirdID != "" && rec.BirdID != f.BirdID {
			continue
		}
		if f.Type != "" && rec.Type != f.Type {
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

func (r *testRepo) ListUpcoming(ctx context.Context, ownerUserID string, from, to time.Time) ([]Record, error) {
	out := make([]Record, 0)
	for _, rec := range r.byID {
		if rec.OwnerUserID != ownerUserID || rec.NextDate == nil {
			continue
		}
		if rec.NextDate.Before(from) || rec.NextDate.After(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextDate.Before(*out[j].NextDate) })
	return out, nil
}

func (r *testRepo) DeleteByBird(ctx context.Context, ownerUserID, birdID string) error {
	for id, rec := range r.byID {
		if rec.OwnerUserID == ownerUserID && rec.BirdID == birdID {
			delete(r.byID, id)
		}
	}
	return nil
}

type testBirdSource struct {
	byID map[string]birds.Bird
}

func newTestBirdSource() *testBirdSource {
	return &testBirdSource{byID: map[string]birds.Bird{}}
}

func (s *testBirdSource) add(code string) birds.Bird {
	b := birds.Bird{ID: uuid.NewString(), OwnerUserID: owner, Role: birds.RoleRooster, Code: code, Name: "Canelo"}
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

var testNow = time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo, *testBirdSource) {
	repo := newTestRepo()
	src := newTestBirdSource()
	svc := NewService(repo, src)
	svc.now = func() time.Time { return testNow }
	return svc, repo, src
}

func addRecord(t *testing.T, svc *Service, birdID string, next *time.Time) Record {
	t.Helper()
	rec, err := svc.Create(context.Background(), owner, CreateInput{
		BirdID:   birdID,
		Type:     TypeVitamin,
		Product:  "Complejo B",
		Date:     time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
		NextDate: next,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func dateAt(offsetDays int) *time.Time {
	d := time.Date(2025, 6, 1+offsetDays, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestCreate_Validation(t *testing.T) {
	svc, repo, src := newTestService()
	g := src.add("G-001")

	if _, err := svc.Create(context.Background(), owner, CreateInput{
		BirdID:  g.ID,
		Type:    Type("surgery"),
		Product: "x",
		Date:    testNow,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad type, got %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, CreateInput{
		BirdID: g.ID,
		Type:   TypeVaccine,
		Date:   testNow,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without product, got %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, CreateInput{
		BirdID:  "ghost",
		Type:    TypeVaccine,
		Product: "x",
		Date:    testNow,
	}); !errors.Is(err, ErrBirdNotFound) {
		t.Fatalf("expected ErrBirdNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestReminders_Window(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add("G-001")

	today := addRecord(t, svc, g.ID, dateAt(0))
	edge := addRecord(t, svc, g.ID, dateAt(7))
	addRecord(t, svc, g.ID, dateAt(8))
	addRecord(t, svc, g.ID, dateAt(-1))
	addRecord(t, svc, g.ID, nil)

	items, err := svc.Reminders(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 reminders in window, got %d", len(items))
	}
	// Hoy cuenta, el día 7 también; pasado y día 8 no.
	if items[0].ID != today.ID || items[1].ID != edge.ID {
		t.Fatalf("expected today first then day 7, got %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].BirdCode != "G-001" || items[0].BirdName != "Canelo" {
		t.Fatalf("expected bird data attached, got %q/%q", items[0].BirdCode, items[0].BirdName)
	}
}

func TestCountReminders(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add("G-001")

	addRecord(t, svc, g.ID, dateAt(3))
	addRecord(t, svc, g.ID, dateAt(10))

	n, err := svc.CountReminders(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 reminder, got %d", n)
	}
}

func TestUpdate_ClearNextDate(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add("G-001")
	rec := addRecord(t, svc, g.ID, dateAt(3))

	// Sin ClearNextDate y sin valor, la fecha no se toca.
	got, err := svc.Update(context.Background(), rec.ID, owner, UpdateInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NextDate == nil {
		t.Fatalf("absent next_date must stay untouched")
	}

	got, err = svc.Update(context.Background(), rec.ID, owner, UpdateInput{ClearNextDate: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NextDate != nil {
		t.Fatalf("expected cleared next_date")
	}
}

func TestUpdate_PatchSemantics(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add("G-001")
	rec := addRecord(t, svc, g.ID, nil)

	product := "Ivermectina"
	typ := TypeDewormer
	got, err := svc.Update(context.Background(), rec.ID, owner, UpdateInput{
		Product: &product,
		Type:    &typ,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Product != "Ivermectina" || got.Type != TypeDewormer {
		t.Fatalf("expected patched fields, got %q/%s", got.Product, got.Type)
	}
	if got.Dose != rec.Dose || !got.Date.Equal(rec.Date) {
		t.Fatalf("untouched fields must survive the patch")
	}

	empty := ""
	if _, err := svc.Update(context.Background(), rec.ID, owner, UpdateInput{Product: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty product, got %v", err)
	}
}

func TestDelete_OtherOwnerNotFound(t *testing.T) {
	svc, _, src := newTestService()
	g := src.add("G-001")
	rec := addRecord(t, svc, g.ID, nil)

	if err := svc.Delete(context.Background(), rec.ID, "other-user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner, got %v", err)
	}
}
