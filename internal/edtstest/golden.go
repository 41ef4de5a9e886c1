package edtstest

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/evenl/zephyr/internal/edts"
)

// AssertGolden compares the store's canonical export against a golden
// file under testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./... -update
//
// Canonical encoding makes the comparison deterministic: equal stores
// always serialize to identical bytes.
func AssertGolden(t *testing.T, name string, store *edts.Store) {
	t.Helper()

	data, err := edts.EncodeJSON(store)
	if err != nil {
		t.Fatalf("encode store: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}
