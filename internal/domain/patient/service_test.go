package patient

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
	"github.com/clinrec/clinrec/internal/platform/ref"
)

type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type setChecker map[uuid.UUID]bool

func (s setChecker) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return s[id], nil
}

type mockPatientRepo struct {
	store     map[uuid.UUID]*Patient
	deleteErr error
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{store: make(map[uuid.UUID]*Patient)}
}
func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.store[p.ID] = p
	return nil
}
func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, apperror.NotFound("patient", id)
	}
	return p, nil
}
func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.store[p.ID]; !ok {
		return apperror.NotFound("patient", p.ID)
	}
	m.store[p.ID] = p
	return nil
}
func (m *mockPatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.store[id]; !ok {
		return apperror.NotFound("patient", id)
	}
	delete(m.store, id)
	return nil
}
func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var r []*Patient
	for _, p := range m.store {
		r = append(r, p)
	}
	return r, len(r), nil
}
func (m *mockPatientRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.store[id]
	return ok, nil
}
func (m *mockPatientRepo) ExistsByNationalID(_ context.Context, nationalID string) (bool, error) {
	for _, p := range m.store {
		if p.NationalID != nil && *p.NationalID == nationalID {
			return true, nil
		}
	}
	return false, nil
}

// recDeleter records cascade calls in a shared log.
type recDeleter struct {
	name  string
	log   *[]string
	count int64
	err   error
}

func (d *recDeleter) DeleteByPatient(_ context.Context, _ uuid.UUID) (int64, error) {
	*d.log = append(*d.log, d.name)
	if d.err != nil {
		return 0, d.err
	}
	return d.count, nil
}

type testEnv struct {
	svc           *Service
	repo          *mockPatientRepo
	doctorID      uuid.UUID
	deptID        uuid.UUID
	cascadeLog    []string
	prescriptions *recDeleter
	visits        *recDeleter
	records       *recDeleter
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:     newMockPatientRepo(),
		doctorID: uuid.New(),
		deptID:   uuid.New(),
	}
	env.prescriptions = &recDeleter{name: "prescriptions", log: &env.cascadeLog, count: 2}
	env.visits = &recDeleter{name: "visits", log: &env.cascadeLog, count: 3}
	env.records = &recDeleter{name: "records", log: &env.cascadeLog, count: 1}
	env.svc = NewService(env.repo,
		ref.NewResolver("doctor", setChecker{env.doctorID: true}),
		ref.NewResolver("department", setChecker{env.deptID: true}),
		fakeTxRunner{},
		env.prescriptions, env.visits, env.records)
	return env
}

func TestCreate_Success(t *testing.T) {
	env := newTestEnv()
	p := &Patient{FirstName: "Maya", LastName: "Lindgren"}
	if err := env.svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected an id to be assigned")
	}
}

func TestCreate_OptionalReferencesStayNil(t *testing.T) {
	env := newTestEnv()
	p := &Patient{FirstName: "Maya", LastName: "Lindgren"}
	if err := env.svc.Create(context.Background(), p); err != nil {
		t.Fatalf("nil references should resolve: %v", err)
	}
	if p.PrimaryDoctorID != nil || p.DepartmentID != nil {
		t.Error("nil references must stay nil")
	}
}

func TestCreate_UnknownDoctor(t *testing.T) {
	env := newTestEnv()
	ghost := uuid.New()
	p := &Patient{FirstName: "Maya", LastName: "Lindgren", PrimaryDoctorID: &ghost}
	err := env.svc.Create(context.Background(), p)
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("kind = %v, want NotFound", apperror.KindOf(err))
	}
}

func TestCreate_DuplicateNationalID(t *testing.T) {
	env := newTestEnv()
	nid := "19900101-1234"
	if err := env.svc.Create(context.Background(), &Patient{FirstName: "Maya", LastName: "Lindgren", NationalID: &nid}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := env.svc.Create(context.Background(), &Patient{FirstName: "Erik", LastName: "Berg", NationalID: &nid})
	if apperror.KindOf(err) != apperror.KindInvalidArgument {
		t.Errorf("kind = %v, want InvalidArgument", apperror.KindOf(err))
	}
}

func TestUpdate_KeepOwnNationalID(t *testing.T) {
	env := newTestEnv()
	nid := "19900101-1234"
	p := &Patient{FirstName: "Maya", LastName: "Lindgren", NationalID: &nid}
	env.svc.Create(context.Background(), p)

	p.FirstName = "Maia"
	if err := env.svc.Update(context.Background(), p); err != nil {
		t.Fatalf("keeping own national id should pass: %v", err)
	}
}

func TestDelete_CascadeOrder(t *testing.T) {
	env := newTestEnv()
	p := &Patient{FirstName: "Maya", LastName: "Lindgren"}
	env.svc.Create(context.Background(), p)

	if err := env.svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"prescriptions", "visits", "records"}
	if len(env.cascadeLog) != len(want) {
		t.Fatalf("cascade log = %v, want %v", env.cascadeLog, want)
	}
	for i, name := range want {
		if env.cascadeLog[i] != name {
			t.Errorf("cascade step %d = %q, want %q", i, env.cascadeLog[i], name)
		}
	}
	if _, ok := env.repo.store[p.ID]; ok {
		t.Error("patient row should be gone after cascade")
	}
}

func TestDelete_NotFound(t *testing.T) {
	env := newTestEnv()
	err := env.svc.Delete(context.Background(), uuid.New())
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("kind = %v, want NotFound", apperror.KindOf(err))
	}
	if len(env.cascadeLog) != 0 {
		t.Errorf("no dependent deletions should run for a missing patient, got %v", env.cascadeLog)
	}
}

func TestDelete_DependentFailureStopsCascade(t *testing.T) {
	env := newTestEnv()
	p := &Patient{FirstName: "Maya", LastName: "Lindgren"}
	env.svc.Create(context.Background(), p)

	env.visits.err = apperror.Unexpected(context.DeadlineExceeded)
	if err := env.svc.Delete(context.Background(), p.ID); err == nil {
		t.Fatal("expected error")
	}

	for _, step := range env.cascadeLog {
		if step == "records" {
			t.Error("cascade must stop at the failing step")
		}
	}
	if _, ok := env.repo.store[p.ID]; !ok {
		t.Error("patient row must survive a failed cascade")
	}
}

func TestDelete_AppointmentBlocksWithConflict(t *testing.T) {
	env := newTestEnv()
	p := &Patient{FirstName: "Maya", LastName: "Lindgren"}
	env.svc.Create(context.Background(), p)

	// The appointment FK has no cascade; the storage layer raises 23503 on
	// the final patient delete, translated to Conflict.
	env.repo.deleteErr = apperror.Conflict("record is referenced by other records")
	err := env.svc.Delete(context.Background(), p.ID)
	if apperror.KindOf(err) != apperror.KindConflict {
		t.Errorf("kind = %v, want Conflict", apperror.KindOf(err))
	}
}
