package ref

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
)

type fakeChecker struct {
	ids map[uuid.UUID]bool
	err error
}

func (f *fakeChecker) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.ids[id], nil
}

func TestRequire_Exists(t *testing.T) {
	id := uuid.New()
	r := NewResolver("Doctor", &fakeChecker{ids: map[uuid.UUID]bool{id: true}})
	if err := r.Require(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequire_Missing(t *testing.T) {
	id := uuid.New()
	r := NewResolver("Doctor", &fakeChecker{ids: map[uuid.UUID]bool{}})

	err := r.Require(context.Background(), id)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("kind = %v, want NotFound", apperror.KindOf(err))
	}
	if !strings.Contains(err.Error(), "Doctor") || !strings.Contains(err.Error(), id.String()) {
		t.Errorf("error %q should name the entity kind and id", err)
	}
}

func TestRequire_CheckerFailure(t *testing.T) {
	r := NewResolver("Patient", &fakeChecker{err: errors.New("connection reset")})
	err := r.Require(context.Background(), uuid.New())
	if apperror.KindOf(err) != apperror.KindUnexpected {
		t.Errorf("kind = %v, want Unexpected", apperror.KindOf(err))
	}
}

func TestRequireOptional(t *testing.T) {
	known := uuid.New()
	r := NewResolver("Department", &fakeChecker{ids: map[uuid.UUID]bool{known: true}})

	if err := r.RequireOptional(context.Background(), nil); err != nil {
		t.Errorf("nil reference should resolve: %v", err)
	}
	if err := r.RequireOptional(context.Background(), &known); err != nil {
		t.Errorf("known reference should resolve: %v", err)
	}
	missing := uuid.New()
	if err := r.RequireOptional(context.Background(), &missing); apperror.KindOf(err) != apperror.KindNotFound {
		t.Errorf("missing reference: kind = %v, want NotFound", apperror.KindOf(err))
	}
}
