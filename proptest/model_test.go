package proptest

import (
	"assetcat/internal/catalog"
	"errors"
	"maps"
	"slices"
	"strings"

	"pgregory.net/rapid"
)

type modelEntry struct {
	assetType string
	versions  map[int]map[string]any
}

// StateTracker is an in-memory reference for the register and lookup rules.
type StateTracker struct {
	entries map[string]*modelEntry
}

func newStateTracker() *StateTracker {
	return &StateTracker{entries: make(map[string]*modelEntry)}
}

func (s *StateTracker) Register(name string, opts catalog.RegisterOptions) error {
	if strings.TrimSpace(name) == "" {
		return catalog.ErrEmptyName
	}
	if opts.VersionNumber < 0 {
		return catalog.ErrInvalidVersion
	}

	e, ok := s.entries[name]
	if !ok {
		typ := catalog.NormalizeType(opts.Type)
		if typ == "" {
			return catalog.ErrMissingType
		}
		number := opts.VersionNumber
		if number == 0 {
			number = catalog.DefaultVersion
		}
		s.entries[name] = &modelEntry{
			assetType: typ,
			versions:  map[int]map[string]any{number: opts.AssetConfiguration},
		}
		return nil
	}

	number := opts.VersionNumber
	if number == 0 {
		number = s.latest(e) + 1
	}
	if _, exists := e.versions[number]; exists {
		return catalog.ErrDuplicateVersion
	}
	e.versions[number] = opts.AssetConfiguration
	return nil
}

func (s *StateTracker) latest(e *modelEntry) int {
	return slices.Max(slices.Collect(maps.Keys(e.versions)))
}

func (s *StateTracker) Latest(name string) (int, bool) {
	e, ok := s.entries[name]
	if !ok {
		return 0, false
	}
	return s.latest(e), true
}

func (s *StateTracker) Config(name string, version int) (map[string]any, bool) {
	e, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	cfg, ok := e.versions[version]
	return cfg, ok
}

func (s *StateTracker) Accepts(name, assetType string) bool {
	e, ok := s.entries[name]
	if !ok {
		return true
	}
	return e.assetType == catalog.NormalizeType(assetType)
}

func (s *StateTracker) Names() []string {
	return slices.Sorted(maps.Keys(s.entries))
}

func (s *StateTracker) Versions(name string) []int {
	e, ok := s.entries[name]
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(e.versions))
}

type CheckedCatalog struct {
	real  catalog.Catalog
	model *StateTracker
	t     *rapid.T
}

func NewCheckedCatalog(t *rapid.T, cat catalog.Catalog) *CheckedCatalog {
	return &CheckedCatalog{
		real:  cat,
		model: newStateTracker(),
		t:     t,
	}
}

func (c *CheckedCatalog) Model() *StateTracker {
	return c.model
}

func (c *CheckedCatalog) Register(name string, opts catalog.RegisterOptions) error {
	realErr := c.real.Register(name, opts)
	modelErr := c.model.Register(name, opts)
	if (realErr == nil) != (modelErr == nil) {
		c.t.Fatalf("[%s] Register divergence: real=%v model=%v", InvModelConsistent, realErr, modelErr)
	}
	if modelErr != nil && !errors.Is(realErr, modelErr) {
		c.t.Fatalf("[%s] Register error mismatch: real=%v model=%v", InvModelConsistent, realErr, modelErr)
	}
	verifyStructuralInvariants(c.t, c.real)
	return realErr
}

func (c *CheckedCatalog) ReadAssetConfiguration(name string, version int) (map[string]any, error) {
	realCfg, realErr := c.real.ReadAssetConfiguration(name, version)
	modelCfg, modelOK := c.model.Config(name, version)
	if (realErr == nil) != modelOK {
		c.t.Fatalf("[%s] ReadAssetConfiguration divergence: real err=%v model found=%v", InvModelConsistent, realErr, modelOK)
	}
	if realErr != nil && !errors.Is(realErr, catalog.ErrLookup) {
		c.t.Fatalf("ReadAssetConfiguration(%s, %d) error %v does not match ErrLookup", name, version, realErr)
	}
	if modelOK {
		assertConfigEqual(c.t, modelCfg, realCfg)
	}
	return realCfg, realErr
}

func (c *CheckedCatalog) LatestVersion(name string) (int, error) {
	realLatest, realErr := c.real.LatestVersion(name)
	modelLatest, modelOK := c.model.Latest(name)
	if (realErr == nil) != modelOK {
		c.t.Fatalf("[%s] LatestVersion divergence: real err=%v model found=%v", InvModelConsistent, realErr, modelOK)
	}
	if modelOK && realLatest != modelLatest {
		c.t.Fatalf("[%s] LatestVersion(%s)=%d, model says %d", InvLatestIsMax, name, realLatest, modelLatest)
	}
	return realLatest, realErr
}

func (c *CheckedCatalog) ValidateEntryType(name, assetType string) bool {
	ok, err := c.real.ValidateEntryType(name, assetType)
	if err != nil {
		c.t.Fatalf("ValidateEntryType failed: %v", err)
	}
	if want := c.model.Accepts(name, assetType); ok != want {
		c.t.Fatalf("[%s] ValidateEntryType(%s, %q)=%v, model says %v", InvModelConsistent, name, assetType, ok, want)
	}
	return ok
}

func (c *CheckedCatalog) List() []catalog.Entry {
	entries, err := c.real.List()
	if err != nil {
		c.t.Fatalf("List failed: %v", err)
	}
	if got, want := entryNames(entries), c.model.Names(); !slices.Equal(got, want) {
		c.t.Fatalf("[%s] List names %v, model has %v", InvModelConsistent, got, want)
	}
	for _, e := range entries {
		got := make([]int, len(e.Versions))
		for i, v := range e.Versions {
			got[i] = v.Number
		}
		if want := c.model.Versions(e.Name); !slices.Equal(got, want) {
			c.t.Fatalf("[%s] %s versions %v, model has %v", InvModelConsistent, e.Name, got, want)
		}
	}
	return entries
}
