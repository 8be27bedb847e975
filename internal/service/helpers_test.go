package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
)

// testLogger discards output so test runs stay quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeResolver maps resource ids to owner ids; unknown ids are absent.
type fakeResolver struct {
	owners map[string]string
}

func (f *fakeResolver) Owner(_ context.Context, res authz.Resource, id string) (string, error) {
	owner, ok := f.owners[id]
	if !ok {
		return "", fmt.Errorf("%s %s: %w", res, id, domain.ErrNotFound)
	}
	return owner, nil
}

// newTestGate builds a gate over a fixed id -> owner map.
func newTestGate(owners map[string]string) *authz.Gate {
	return authz.NewGate(&fakeResolver{owners: owners})
}
