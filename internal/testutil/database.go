package testutil

import (
	"testing"

	"recwatch/internal/repository"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T, opts ...repository.Option) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:", opts...)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})

	return repo
}
