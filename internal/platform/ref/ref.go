// Package ref implements the require pattern: every foreign key accepted by
// a mutating operation is resolved against its repository before any write
// happens, so a dangling reference surfaces as a typed not-found error
// instead of a raw constraint violation.
package ref

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinrec/clinrec/internal/platform/apperror"
)

// Checker reports whether an entity with the given id exists. Every entity
// repository implements it.
type Checker interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// Resolver resolves references to one entity kind.
type Resolver struct {
	kind    string
	checker Checker
}

func NewResolver(kind string, checker Checker) *Resolver {
	return &Resolver{kind: kind, checker: checker}
}

// Kind returns the entity kind this resolver guards.
func (r *Resolver) Kind() string { return r.kind }

// Require fails with a not-found error naming the entity kind and id when no
// such entity exists.
func (r *Resolver) Require(ctx context.Context, id uuid.UUID) error {
	ok, err := r.checker.ExistsByID(ctx, id)
	if err != nil {
		return apperror.Unexpected(err)
	}
	if !ok {
		return apperror.NotFound(r.kind, id)
	}
	return nil
}

// RequireOptional resolves id only when it is non-nil; a nil reference is
// left nil.
func (r *Resolver) RequireOptional(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	return r.Require(ctx, *id)
}
