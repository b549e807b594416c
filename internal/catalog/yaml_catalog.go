package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const yamlIndent = 2

// catalogState is nil until the backing file has been parsed once.
type catalogState struct {
	entries map[string]*Entry
}

type YAMLCatalog struct {
	location string
	name     string
	logger   Logger
	now      func() time.Time

	mu    sync.Mutex
	state *catalogState
}

var (
	_ Catalog     = (*YAMLCatalog)(nil)
	_ Initializer = (*YAMLCatalog)(nil)
)

type Option func(*YAMLCatalog)

func WithLogger(l Logger) Option {
	return func(c *YAMLCatalog) {
		c.logger = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *YAMLCatalog) {
		c.now = now
	}
}

// NewYAMLCatalog binds a catalog to the file name inside location.
// Nothing is read until the first operation needs the catalog.
func NewYAMLCatalog(location, name string, opts ...Option) *YAMLCatalog {
	c := &YAMLCatalog{
		location: location,
		name:     name,
		logger:   glogLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the location of the backing file.
func (c *YAMLCatalog) Path() string {
	return filepath.Join(c.location, c.name)
}

func (c *YAMLCatalog) ReadAssetConfiguration(entry string, version int) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.loadLocked()
	if err != nil {
		return nil, err
	}

	e, ok := st.entries[entry]
	if !ok {
		return nil, c.lookupFailed(entry, version, ErrEntryNotFound)
	}
	v, ok := e.Version(version)
	if !ok {
		return nil, c.lookupFailed(entry, version, ErrVersionNotFound)
	}
	return cloneConfig(v.AssetConfiguration), nil
}

func (c *YAMLCatalog) LatestVersion(entry string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.loadLocked()
	if err != nil {
		return 0, err
	}

	e, ok := st.entries[entry]
	if !ok {
		return 0, c.lookupFailed(entry, 0, ErrEntryNotFound)
	}
	latest, ok := e.LatestVersion()
	if !ok {
		return 0, c.lookupFailed(entry, 0, ErrNoVersions)
	}
	return latest, nil
}

func (c *YAMLCatalog) Register(entry string, opts RegisterOptions) error {
	if strings.TrimSpace(entry) == "" {
		return ErrEmptyName
	}
	if opts.VersionNumber < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidVersion, opts.VersionNumber)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.loadLocked()
	if err != nil {
		return err
	}

	now := c.now()
	e, ok := st.entries[entry]
	if !ok {
		typ := NormalizeType(opts.Type)
		if typ == "" {
			return fmt.Errorf("%w: %q", ErrMissingType, entry)
		}
		number := opts.VersionNumber
		if number == 0 {
			number = DefaultVersion
		}
		st.entries[entry] = &Entry{
			Name:     entry,
			Type:     typ,
			Versions: VersionList{NewVersion(number, opts.AssetConfiguration, now)},
		}
		c.logger.Infof("Registered new entry %s (type %s, version %d)", entry, typ, number)
		return nil
	}

	number := opts.VersionNumber
	if number == 0 {
		if number, err = e.nextVersion(); err != nil {
			return fmt.Errorf("%q: %w", entry, err)
		}
	}
	if _, exists := e.Version(number); exists {
		return fmt.Errorf("%w: %q version %d", ErrDuplicateVersion, entry, number)
	}

	c.logger.Infof("Entry %s already exists. Creating version %d of the entry.", entry, number)
	e.Versions = append(e.Versions, NewVersion(number, opts.AssetConfiguration, now))
	return nil
}

func (c *YAMLCatalog) ValidateEntryType(entry, assetType string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.loadLocked()
	if err != nil {
		return false, err
	}

	e, ok := st.entries[entry]
	if !ok {
		return true, nil
	}
	return e.HasType(assetType), nil
}

func (c *YAMLCatalog) IsRegistered(entry string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.loadLocked()
	if err != nil {
		return false, err
	}
	_, ok := st.entries[entry]
	return ok, nil
}

func (c *YAMLCatalog) Entry(name string) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.loadLocked()
	if err != nil {
		return Entry{}, err
	}
	e, ok := st.entries[name]
	if !ok {
		return Entry{}, c.lookupFailed(name, 0, ErrEntryNotFound)
	}
	return e.clone(), nil
}

func (c *YAMLCatalog) List() ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, err := c.loadLocked()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(st.entries))
	for _, e := range st.entries {
		entries = append(entries, e.clone())
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// Init creates an empty catalog file and marks the catalog as loaded.
func (c *YAMLCatalog) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := c.resolvePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access catalog file %q: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	c.state = &catalogState{entries: make(map[string]*Entry)}
	return c.writeLocked(path)
}

// Save writes the in-memory catalog back to its file. Register never calls it.
func (c *YAMLCatalog) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.loadLocked(); err != nil {
		return err
	}
	path, err := c.resolvePath()
	if err != nil {
		return err
	}
	return c.writeLocked(path)
}

func (c *YAMLCatalog) writeLocked(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c.state.entries); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to close encoder: %w", err)
	}

	tmpPath := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// loadLocked parses the backing file on first use. A failed load is not
// remembered, so the next operation tries again.
func (c *YAMLCatalog) loadLocked() (*catalogState, error) {
	if c.state != nil {
		return c.state, nil
	}

	path, err := c.resolvePath()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	entries, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrLoad, path, err)
	}

	c.state = &catalogState{entries: entries}
	c.logger.Infof("Loaded catalog %s with %d entries", path, len(entries))
	return c.state, nil
}

func parseCatalog(data []byte) (map[string]*Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw map[string]*Entry
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	entries := make(map[string]*Entry, len(raw))
	for name, e := range raw {
		if e == nil {
			return nil, fmt.Errorf("entry %q has no type or versions", name)
		}
		e.Name = name
		entries[name] = e
	}
	return entries, nil
}

func (c *YAMLCatalog) lookupFailed(entry string, version int, cause error) error {
	err := &LookupError{Entry: entry, Version: version, Err: cause}
	c.logger.Errorf("when attempting to read from catalog %s: %v", c.name, err)
	return err
}

func (c *YAMLCatalog) resolvePath() (string, error) {
	return resolveRelPath(c.location, c.name)
}

func resolveRelPath(root, subpath string) (string, error) {
	fullPath := filepath.Join(root, subpath)

	rel, err := filepath.Rel(root, fullPath)
	if err != nil {
		return "", fmt.Errorf("not a relative path: %v", err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("catalog name %q escapes location %q", subpath, root)
	}
	return fullPath, nil
}
