package catalog

import (
	"errors"
	"fmt"
)

// DefaultVersion is the version read when a caller has no specific one in mind.
const DefaultVersion = 1

var (
	ErrLoad   = errors.New("failed to load catalog")
	ErrLookup = errors.New("catalog lookup failed")

	ErrEntryNotFound   = errors.New("entry not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrNoVersions      = errors.New("entry has no versions")

	ErrEmptyName        = errors.New("entry name cannot be empty")
	ErrMissingType      = errors.New("type is required when registering a new entry")
	ErrDuplicateVersion = errors.New("version already registered")
	ErrInvalidVersion   = errors.New("version number must not be negative")
	ErrTypeMismatch     = errors.New("entry is registered with a different type")
	ErrAlreadyExists    = errors.New("catalog file already exists")
)

// Catalog is the capability contract every backing store satisfies.
// Type checks ignore case and surrounding blanks on both sides.
type Catalog interface {
	ReadAssetConfiguration(entry string, version int) (map[string]any, error)
	LatestVersion(entry string) (int, error)
	Register(entry string, opts RegisterOptions) error
	ValidateEntryType(entry, assetType string) (bool, error)
	IsRegistered(entry string) (bool, error)
	Entry(name string) (Entry, error)
	List() ([]Entry, error)
	Save() error
}

// Initializer is implemented by stores that can create an empty backing file.
type Initializer interface {
	Init() error
	Path() string
}

type RegisterOptions struct {
	// Type is required for the first registration of an entry and ignored afterwards.
	Type string
	// VersionNumber of zero assigns the next free number.
	VersionNumber      int
	AssetConfiguration map[string]any
}

// LookupError reports an entry or version that does not resolve.
// It matches both ErrLookup and its cause with errors.Is.
type LookupError struct {
	Entry   string
	Version int // zero when no specific version was requested
	Err     error
}

func (e *LookupError) Error() string {
	if e.Version == 0 {
		return fmt.Sprintf("catalog lookup for %q: %v", e.Entry, e.Err)
	}
	return fmt.Sprintf("catalog lookup for %q version %d: %v", e.Entry, e.Version, e.Err)
}

func (e *LookupError) Unwrap() []error {
	return []error{ErrLookup, e.Err}
}
