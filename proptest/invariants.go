package proptest

import (
	"assetcat/internal/catalog"
	"slices"
	"strings"

	"pgregory.net/rapid"
)

const (
	InvListSortedByName     = "list-sorted-by-name"
	InvEntryHasType         = "entry-has-type"
	InvVersionsUnique       = "versions-unique"
	InvLatestIsMax          = "latest-is-max"
	InvRegisteredConsistent = "registered-consistent"
	InvOwnTypeValidates     = "own-type-validates"
	InvModelConsistent      = "model-consistent"
	InvSaveLoadRoundTrip    = "save-load-round-trip"
)

func verifyStructuralInvariants(t *rapid.T, cat catalog.Catalog) {
	list, err := cat.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if !slices.IsSortedFunc(list, func(a, b catalog.Entry) int { return strings.Compare(a.Name, b.Name) }) {
		t.Fatalf("[%s] violated: List() is not ordered by name", InvListSortedByName)
	}

	for _, e := range list {
		if e.Type == "" || e.Type != catalog.NormalizeType(e.Type) {
			t.Fatalf("[%s] violated: entry %s has type %q", InvEntryHasType, e.Name, e.Type)
		}

		seen := make(map[int]bool, len(e.Versions))
		maxNumber := 0
		for _, v := range e.Versions {
			if seen[v.Number] {
				t.Fatalf("[%s] violated: entry %s repeats version %d", InvVersionsUnique, e.Name, v.Number)
			}
			seen[v.Number] = true
			maxNumber = max(maxNumber, v.Number)
		}

		if len(e.Versions) > 0 {
			latest, err := cat.LatestVersion(e.Name)
			if err != nil || latest != maxNumber {
				t.Fatalf("[%s] violated: LatestVersion(%s)=%d, %v; want %d", InvLatestIsMax, e.Name, latest, err, maxNumber)
			}
		}

		ok, err := cat.IsRegistered(e.Name)
		if err != nil || !ok {
			t.Fatalf("[%s] violated: %s listed but IsRegistered=%v, %v", InvRegisteredConsistent, e.Name, ok, err)
		}

		ok, err = cat.ValidateEntryType(e.Name, strings.ToUpper(e.Type))
		if err != nil || !ok {
			t.Fatalf("[%s] violated: %s rejects its own type %q", InvOwnTypeValidates, e.Name, e.Type)
		}
	}
}
