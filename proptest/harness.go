package proptest

import (
	"assetcat/internal/catalog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

const (
	minEntries         = 0
	maxEntries         = 12
	typicalMinEntries  = 1
	typicalMaxEntries  = 6
	maxVersionsPerStep = 4
	catalogFileName    = "catalog.yaml"
)

var baseTime = time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

type RegisterGenOpt func(*registerGenConfig)

type registerGenConfig struct {
	assetType *string
	version   *int
}

func WithType(t string) RegisterGenOpt {
	return func(c *registerGenConfig) {
		c.assetType = &t
	}
}

func WithVersion(v int) RegisterGenOpt {
	return func(c *registerGenConfig) {
		c.version = &v
	}
}

func GenRegisterOptions(t *rapid.T, opts ...RegisterGenOpt) catalog.RegisterOptions {
	cfg := &registerGenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ro := catalog.RegisterOptions{
		AssetConfiguration: configGen().Draw(t, "config"),
	}
	if cfg.assetType != nil {
		ro.Type = *cfg.assetType
	} else {
		ro.Type = assetTypeGen().Draw(t, "type")
	}
	if cfg.version != nil {
		ro.VersionNumber = *cfg.version
	}
	return ro
}

type Harness struct {
	T   *rapid.T
	Dir string
}

// NewCatalog opens the catalog file in the iteration directory with a
// clock that advances one second per call.
func (h *Harness) NewCatalog() *catalog.YAMLCatalog {
	tick := 0
	return catalog.NewYAMLCatalog(h.Dir, catalogFileName,
		catalog.WithLogger(catalog.NopLogger()),
		catalog.WithClock(func() time.Time {
			tick++
			return baseTime.Add(time.Duration(tick) * time.Second)
		}),
	)
}

func (h *Harness) WriteCatalogFile(content string) {
	if err := os.WriteFile(filepath.Join(h.Dir, catalogFileName), []byte(content), 0o644); err != nil {
		h.T.Fatalf("failed to write catalog file: %v", err)
	}
}

type CatalogHarness struct {
	Harness
	Catalog *catalog.YAMLCatalog
}

func (h *CatalogHarness) MustRegister(entry string, opts ...RegisterGenOpt) catalog.RegisterOptions {
	ro := GenRegisterOptions(h.T, opts...)
	if err := h.Catalog.Register(entry, ro); err != nil {
		h.T.Fatalf("failed to register %s: %v", entry, err)
	}
	return ro
}

// RegisterEntries registers a random number of distinct entries, each with
// one or more auto-numbered versions, and returns the versions per entry.
func (h *CatalogHarness) RegisterEntries(minCount, maxCount int) map[string][]catalog.RegisterOptions {
	registered := make(map[string][]catalog.RegisterOptions)
	names := rapid.SliceOfNDistinct(entryNameGen(), minCount, maxCount, rapid.ID[string]).Draw(h.T, "names")
	for _, name := range names {
		n := rapid.IntRange(1, maxVersionsPerStep).Draw(h.T, "numVersions")
		for range n {
			registered[name] = append(registered[name], h.MustRegister(name))
		}
	}
	return registered
}

func RunWithCatalog(t *testing.T, fn func(h *CatalogHarness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		iterDir := newIterDir(rt, tempDir)

		harness := &CatalogHarness{Harness: Harness{T: rt, Dir: iterDir}}
		harness.Catalog = harness.NewCatalog()
		if err := harness.Catalog.Init(); err != nil {
			rt.Fatalf("failed to init catalog: %v", err)
		}

		fn(harness)
	})
}

func RunBasic(t *testing.T, fn func(h *Harness)) {
	tempDir := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		fn(&Harness{T: rt, Dir: newIterDir(rt, tempDir)})
	})
}

func newIterDir(rt *rapid.T, root string) string {
	iterDir, err := os.MkdirTemp(root, iterDirGen.Draw(rt, "iterDir"))
	if err != nil {
		rt.Fatalf("failed to create iter dir: %v", err)
	}
	return iterDir
}
