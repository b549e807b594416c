package proptest

import (
	"assetcat/internal/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func assertEntriesEqual(t *rapid.T, expected, actual []catalog.Entry) {
	t.Helper()
	opts := cmp.Options{
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(expected, actual, opts...); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func assertConfigEqual(t *rapid.T, expected, actual map[string]any) {
	t.Helper()
	if diff := cmp.Diff(expected, actual, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("asset configuration mismatch (-want +got):\n%s", diff)
	}
}

func entryNames(entries []catalog.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
