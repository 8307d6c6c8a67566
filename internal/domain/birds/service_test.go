package birds

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Repo de prueba (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Bird
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Bird{}}
}

func (r *testRepo) Create(ctx context.Context, b Bird) error {
	if b.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[b.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id, ownerUserID string) (Bird, error) {
	b, ok := r.byID[id]
	if !ok || b.OwnerUserID != ownerUserID {
		return Bird{}, errRepoNotFound
	}
	return b, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string, f ListFilter) ([]Bird, error) {
	out := make([]Bird, 0)
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if f.Role != "" && b.Role != f.Role {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, b Bird) error {
	if _, ok := r.byID[b.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	b, ok := r.byID[id]
	if !ok || b.OwnerUserID != ownerUserID {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) ListChildren(ctx context.Context, ownerUserID, parentID string, viaFather bool) ([]Bird, error) {
	out := make([]Bird, 0)
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if viaFather && b.FatherID == parentID {
			out = append(out, b)
		}
		if !viaFather && b.MotherID == parentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *testRepo) CountChildren(ctx context.Context, ownerUserID, birdID string) (int, error) {
	n := 0
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if b.FatherID == birdID || b.MotherID == birdID {
			n++
		}
	}
	return n, nil
}

func (r *testRepo) Count(ctx context.Context, ownerUserID string, f CountFilter) (int, error) {
	n := 0
	for _, b := range r.byID {
		if b.OwnerUserID != ownerUserID {
			continue
		}
		if f.Role != "" && b.Role != f.Role {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		n++
	}
	return n, nil
}

const owner = "user-1"

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), owner, CreateInput{
		Role: RoleRooster,
		Code: "G-001",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != StatusActive {
		t.Fatalf("expected default status active, got %s", b.Status)
	}
	if b.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestCreate_RequiresRoleAndCode(t *testing.T) {
	svc, repo := newTestService()

	if _, err := svc.Create(context.Background(), owner, CreateInput{Code: "G-001"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without role, got %v", err)
	}
	if _, err := svc.Create(context.Background(), owner, CreateInput{Role: RoleHen}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without code, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestCreate_ParentRoleChecks(t *testing.T) {
	svc, _ := newTestService()

	henB, err := svc.Create(context.Background(), owner, CreateInput{Role: RoleHen, Code: "H-001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Una gallina como padre no va.
	if _, err := svc.Create(context.Background(), owner, CreateInput{
		Role:     RoleRooster,
		Code:     "G-002",
		FatherID: henB.ID,
	}); !errors.Is(err, ErrFatherRole) {
		t.Fatalf("expected ErrFatherRole, got %v", err)
	}

	// Padre inexistente tampoco.
	if _, err := svc.Create(context.Background(), owner, CreateInput{
		Role:     RoleRooster,
		Code:     "G-003",
		FatherID: "ghost",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile_PatchSemantics(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), owner, CreateInput{
		Role:  RoleRooster,
		Code:  "G-001",
		Name:  "Canelo",
		Color: "colorado",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Canelo II"
	got, err := svc.UpdateProfile(context.Background(), b.ID, owner, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Canelo II" {
		t.Fatalf("expected patched name, got %q", got.Name)
	}
	if got.Color != "colorado" {
		t.Fatalf("untouched fields must survive the patch")
	}
}

func TestUpdateProfile_BirthDateClear(t *testing.T) {
	svc, _ := newTestService()

	bd := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b, err := svc.Create(context.Background(), owner, CreateInput{
		Role:      RoleRooster,
		Code:      "G-001",
		BirthDate: &bd,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.UpdateProfile(context.Background(), b.ID, owner, UpdateInput{
		BirthDate: OptionalDate{Set: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BirthDate != nil {
		t.Fatalf("expected cleared birth date")
	}

	// Sin Set, la fecha no se toca.
	got, err = svc.UpdateProfile(context.Background(), b.ID, owner, UpdateInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BirthDate != nil {
		t.Fatalf("absent birth_date must stay untouched")
	}
}

func TestDelete_ReportsDanglingChildren(t *testing.T) {
	svc, repo := newTestService()

	father, _ := svc.Create(context.Background(), owner, CreateInput{Role: RoleRooster, Code: "G-001"})
	mother, _ := svc.Create(context.Background(), owner, CreateInput{Role: RoleHen, Code: "H-001"})
	if _, err := svc.Create(context.Background(), owner, CreateInput{
		Role:     RoleRooster,
		Code:     "G-002",
		FatherID: father.ID,
		MotherID: mother.ID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n, err := svc.Delete(context.Background(), father.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 dangling child reference, got %d", n)
	}
	if _, ok := repo.byID[father.ID]; ok {
		t.Fatalf("expected bird removed")
	}
}

func TestDelete_OtherOwnerNotFound(t *testing.T) {
	svc, _ := newTestService()

	b, _ := svc.Create(context.Background(), owner, CreateInput{Role: RoleRooster, Code: "G-001"})

	if _, err := svc.Delete(context.Background(), b.ID, "other-user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another owner, got %v", err)
	}
}

func TestChildren_RoleSelectsParentSide(t *testing.T) {
	svc, _ := newTestService()

	father, _ := svc.Create(context.Background(), owner, CreateInput{Role: RoleRooster, Code: "G-001"})
	mother, _ := svc.Create(context.Background(), owner, CreateInput{Role: RoleHen, Code: "H-001"})
	child, _ := svc.Create(context.Background(), owner, CreateInput{
		Role:     RoleHen,
		Code:     "H-002",
		FatherID: father.ID,
		MotherID: mother.ID,
	})

	viaFather, err := svc.Children(context.Background(), father.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(viaFather) != 1 || viaFather[0].ID != child.ID {
		t.Fatalf("expected child found via father_id")
	}

	viaMother, err := svc.Children(context.Background(), mother.ID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(viaMother) != 1 || viaMother[0].ID != child.ID {
		t.Fatalf("expected child found via mother_id")
	}
}
