package authz

import (
	"context"
	"errors"
	"fmt"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
)

// Gate decides whether a principal may act on a resource. It owns the
// 403-vs-404 standardization: a missing resource is NotFound, an
// existing resource with a different owner is Forbidden, always in
// that order, for every resource type.
type Gate struct {
	resolver OwnerResolver
}

// NewGate creates a gate backed by the given owner resolver.
func NewGate(resolver OwnerResolver) *Gate {
	return &Gate{resolver: resolver}
}

// Authorize checks whether the principal may perform action on the
// identified resource.
//
// For ActionAdminOnly the resource is not consulted at all; the
// verdict depends only on the principal's role.
//
// For read and write actions the resolver follows the resource's
// ownership edge: a row that does not exist yields ErrNotFound, a row
// owned by someone else yields ErrForbidden. Admins get no special
// treatment here - ownership of pets and their subresources is never
// bypassed by role.
func (g *Gate) Authorize(ctx context.Context, p models.Principal, res Resource, id string, action Action) error {
	if action == ActionAdminOnly {
		if !p.IsAdmin() {
			return fmt.Errorf("%s requires admin role: %w", res, domain.ErrForbidden)
		}
		return nil
	}

	owner, err := g.resolver.Owner(ctx, res, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s %s: %w", res, id, domain.ErrNotFound)
		}
		return fmt.Errorf("resolve %s owner: %w", res, err)
	}
	if owner != p.ID {
		return fmt.Errorf("%s %s: %w", res, id, domain.ErrForbidden)
	}
	return nil
}

// AuthorizeParent authorizes creating a child resource under the given
// parent row, e.g. a new vaccination under a pet. The parent must
// exist (otherwise NotFound) and be owned by the principal (otherwise
// Forbidden). Calling this for a directly-owned resource type is a
// programming error.
func (g *Gate) AuthorizeParent(ctx context.Context, p models.Principal, child Resource, parentID string) error {
	edge, ok := Edges[child]
	if !ok || edge.Direct() {
		return fmt.Errorf("resource %s has no parent edge", child)
	}

	owner, err := g.resolver.Owner(ctx, edge.Parent, parentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s %s: %w", edge.Parent, parentID, domain.ErrNotFound)
		}
		return fmt.Errorf("resolve %s owner: %w", edge.Parent, err)
	}
	if owner != p.ID {
		return fmt.Errorf("%s %s: %w", edge.Parent, parentID, domain.ErrForbidden)
	}
	return nil
}

// Classify explains a zero-row outcome from an owner-scoped query or
// conditional mutation. Repositories mutate with a single statement
// scoped to both id and owner, so a zero-row result is ambiguous
// between "not found" and "not yours"; Classify probes once and
// returns the standardized verdict. The returned error is always
// ErrNotFound or ErrForbidden (or a store failure) - never success:
// if the probe finds the row owned by the caller, the scoped
// statement raced a concurrent change and NotFound is reported.
func (g *Gate) Classify(ctx context.Context, p models.Principal, res Resource, id string) error {
	owner, err := g.resolver.Owner(ctx, res, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%s %s: %w", res, id, domain.ErrNotFound)
		}
		return fmt.Errorf("resolve %s owner: %w", res, err)
	}
	if owner != p.ID {
		return fmt.Errorf("%s %s: %w", res, id, domain.ErrForbidden)
	}
	return fmt.Errorf("%s %s: %w", res, id, domain.ErrNotFound)
}
