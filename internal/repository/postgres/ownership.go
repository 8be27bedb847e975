package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
)

// OwnershipResolver implements authz.OwnerResolver on Postgres. It is
// driven entirely by the declarative edge table: a direct edge is one
// point lookup, a transitive edge is one join through the parent. No
// resource needs more than one hop.
type OwnershipResolver struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewOwnershipResolver creates a resolver over the shared pool.
func NewOwnershipResolver(config *RepositoryConfig) *OwnershipResolver {
	return &OwnershipResolver{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Owner returns the owning principal id for the resource row,
// ErrNotFound if the row does not exist.
func (r *OwnershipResolver) Owner(ctx context.Context, res authz.Resource, id string) (string, error) {
	edge, ok := authz.Edges[res]
	if !ok {
		return "", fmt.Errorf("unknown resource type %q", res)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var query string
	if edge.Direct() {
		query = fmt.Sprintf(`
			SELECT %s FROM %s WHERE id = $1
		`, edge.OwnerColumn, r.tables.For(edge.Table))
	} else {
		parent, ok := authz.Edges[edge.Parent]
		if !ok || !parent.Direct() {
			return "", fmt.Errorf("resource %q has a non-direct parent edge", res)
		}
		query = fmt.Sprintf(`
			SELECT p.%s
			FROM %s c
			JOIN %s p ON c.%s = p.id
			WHERE c.id = $1
		`, parent.OwnerColumn, r.tables.For(edge.Table), r.tables.For(parent.Table), edge.ParentColumn)
	}

	var owner string
	err := r.pool.QueryRow(ctx, query, id).Scan(&owner)
	if err != nil {
		if IsPgNoRowsError(err) {
			return "", fmt.Errorf("%s %s: %w", res, id, domain.ErrNotFound)
		}
		return "", storeErr(fmt.Sprintf("resolve %s owner", res), err)
	}

	return owner, nil
}
