package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Version struct {
	Number             int            `yaml:"number"`
	AssetConfiguration map[string]any `yaml:"asset_configuration"`
	CreateTimestamp    float64        `yaml:"create_timestamp"`
}

func NewVersion(number int, config map[string]any, now time.Time) Version {
	return Version{
		Number:             number,
		AssetConfiguration: cloneConfig(config),
		CreateTimestamp:    Timestamp(now),
	}
}

// CreatedAt converts the stored Unix timestamp back to a UTC time.
func (v Version) CreatedAt() time.Time {
	sec := int64(v.CreateTimestamp)
	nsec := int64((v.CreateTimestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}

// Timestamp returns t as UTC Unix seconds.
func Timestamp(t time.Time) float64 {
	return float64(t.UTC().UnixNano()) / 1e9
}

// VersionList is always a sequence in memory. On disk a single version may
// also appear as a bare mapping, which older writers produced for new entries.
type VersionList []Version

func (l *VersionList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var v Version
		if err := node.Decode(&v); err != nil {
			return err
		}
		*l = VersionList{v}
		return nil
	case yaml.SequenceNode:
		var vs []Version
		if err := node.Decode(&vs); err != nil {
			return err
		}
		*l = vs
		return nil
	}
	return fmt.Errorf("line %d: versions must be a mapping or a list", node.Line)
}

type Entry struct {
	Name     string      `yaml:"-"`
	Type     string      `yaml:"type"`
	Versions VersionList `yaml:"versions"`
}

func NormalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func (e *Entry) HasType(t string) bool {
	return NormalizeType(e.Type) == NormalizeType(t)
}

func (e *Entry) Version(number int) (Version, bool) {
	for _, v := range e.Versions {
		if v.Number == number {
			return v, true
		}
	}
	return Version{}, false
}

func (e *Entry) LatestVersion() (int, bool) {
	if len(e.Versions) == 0 {
		return 0, false
	}
	latest := e.Versions[0].Number
	for _, v := range e.Versions[1:] {
		latest = max(latest, v.Number)
	}
	return latest, true
}

// LastRegistered is the newest create timestamp across all versions.
func (e *Entry) LastRegistered() time.Time {
	var newest Version
	for _, v := range e.Versions {
		if v.CreateTimestamp > newest.CreateTimestamp {
			newest = v
		}
	}
	if newest.CreateTimestamp == 0 {
		return time.Time{}
	}
	return newest.CreatedAt()
}

func (e *Entry) nextVersion() (int, error) {
	latest, _ := e.LatestVersion()
	if latest == math.MaxInt {
		return 0, fmt.Errorf("%w: no version number left after %d", ErrInvalidVersion, latest)
	}
	return latest + 1, nil
}

// clone copies the entry with its versions sorted by number.
func (e *Entry) clone() Entry {
	c := Entry{
		Name:     e.Name,
		Type:     e.Type,
		Versions: make(VersionList, len(e.Versions)),
	}
	for i, v := range e.Versions {
		v.AssetConfiguration = cloneConfig(v.AssetConfiguration)
		c.Versions[i] = v
	}
	slices.SortStableFunc(c.Versions, func(a, b Version) int {
		return cmp.Compare(a.Number, b.Number)
	})
	return c
}

// cloneConfig copies a configuration down through nested maps and lists so
// stored versions never share memory with callers.
func cloneConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneConfig(v)
	case map[any]any:
		out := make(map[any]any, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
