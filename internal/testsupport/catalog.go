package testsupport

import (
	"testing"

	"trec/internal/config"
	"trec/internal/library"
)

// MustOpenCatalog opens a library.Catalog for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *library.Catalog {
	t.Helper()

	catalog, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		catalog.Close()
	})
	return catalog
}
