package testsupport

import (
	"context"
	"testing"

	"chaptersplit/internal/catalog"
	"chaptersplit/internal/config"
)

// MustOpenCatalog opens the catalog for cfg and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(context.Background(), cfg.CatalogPath())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
