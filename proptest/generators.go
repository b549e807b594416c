package proptest

import (
	"fmt"
	"strings"

	"pgregory.net/rapid"
)

var (
	iterDirGen   = rapid.StringMatching(`[a-z]{8}`)
	configKeyGen = rapid.StringMatching(`[a-z][a-z_]{0,8}`)
	knownTypes   = []string{"table", "file", "view", "model"}
)

func entryNameGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z][a-z0-9_-]{0,20}`)
}

// assetTypeGen draws a known type in random letter case with optional
// surrounding blanks.
func assetTypeGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		base := rapid.SampledFrom(knownTypes).Draw(t, "baseType")
		var b strings.Builder
		for _, r := range base {
			if rapid.Bool().Draw(t, "upper") {
				b.WriteString(strings.ToUpper(string(r)))
			} else {
				b.WriteRune(r)
			}
		}
		pad := rapid.SampledFrom([]string{"", " ", "\t"}).Draw(t, "pad")
		return pad + b.String() + pad
	})
}

func configValueGen() *rapid.Generator[any] {
	return rapid.OneOf(
		rapid.Map(rapid.IntRange(-1000, 1000), func(n int) any { return n }),
		rapid.Map(rapid.Bool(), func(b bool) any { return b }),
		rapid.Map(rapid.StringMatching(`[a-z][a-z0-9_/]{0,12}`), func(s string) any { return s }),
	)
}

func configGen() *rapid.Generator[map[string]any] {
	return rapid.MapOfN(configKeyGen, configValueGen(), 0, 5)
}

func malformedYAMLGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("{{{{"),
		rapid.Just("}}}}"),
		rapid.Just(":::"),
		rapid.Just("[\n["),
		rapid.Just("sales: [unclosed"),
		rapid.Just("sales: {unclosed"),
		rapid.Just("- item\n  bad indent"),
		rapid.Just("\t\ttabs: everywhere"),
		rapid.Just("sales:\n  type: \"unmatched quote"),
		rapid.StringMatching(`[^a-zA-Z0-9\s]{10,50}`),
		rapid.Custom(func(t *rapid.T) string {
			size := rapid.IntRange(10, 100).Draw(t, "size")
			bytes := make([]byte, size)
			for i := range bytes {
				bytes[i] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			return string(bytes)
		}),
	)
}

// invalidShapeGen yields well-formed YAML that does not describe a catalog.
func invalidShapeGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.Just("- sales\n- customers\n"),
		rapid.Just("just a string\n"),
		rapid.Just("sales:\n"),
		rapid.Just("sales: table\n"),
		rapid.Just("sales:\n  type: table\n  versions: 3\n"),
		rapid.Just("sales:\n  type: [not, a, string]\n"),
		rapid.Just("sales:\n  type: table\n  versions:\n    - number: one\n"),
		rapid.Just("sales:\n  type: table\n  versions:\n    - number: 1\n      create_timestamp: yesterday\n"),
		rapid.Custom(func(t *rapid.T) string {
			field := rapid.SampledFrom([]string{"owner", "extra", "foo", "bar_baz"}).Draw(t, "fieldName")
			return fmt.Sprintf("sales:\n  type: table\n  %s: x\n  versions: []\n", field)
		}),
	)
}

// legacyEntryGen renders an entry whose single version is a bare mapping.
func legacyEntryGen() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		name := entryNameGen().Draw(t, "name")
		typ := rapid.SampledFrom(knownTypes).Draw(t, "type")
		number := rapid.IntRange(1, 50).Draw(t, "number")
		return fmt.Sprintf("%q:\n  type: %s\n  versions:\n    number: %d\n    asset_configuration:\n      path: /data/%s\n    create_timestamp: 1767787200\n",
			name, typ, number, name)
	})
}
