// Package properties implements the `key = value` metadata format that
// accompanies every data file in a pipeline directory.
package properties

import (
	"fmt"
	"sort"
	"strings"

	"minnow/internal/common/errors"
)

const (
	// Extension is the conventional suffix of a properties file.
	Extension = ".properties"

	// TypeKey names the property identifying the semantic kind of the paired data.
	TypeKey = "type"
)

// Properties is a flat string-to-string mapping. Values are never coerced here.
type Properties map[string]string

// Type returns the `type` property, or "" when absent.
func (p Properties) Type() string {
	return p[TypeKey]
}

// Clone returns an independent copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Contains reports whether every entry of subset is present in p with an
// equal value. An empty subset is contained in anything.
func (p Properties) Contains(subset Properties) bool {
	for k, v := range subset {
		if got, ok := p[k]; !ok || got != v {
			return false
		}
	}
	return true
}

// Decode parses properties text. Blank lines are skipped, the first `=` on a
// line separates key from value and both sides are trimmed. Any line without
// `=` fails the whole decode. An empty key is kept like any other.
func Decode(input []byte) (Properties, error) {
	properties := make(Properties)
	var invalid []string

	for _, line := range strings.Split(string(input), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, value, found := strings.Cut(line, "=")
		name = strings.TrimSpace(name)
		if !found {
			invalid = append(invalid, fmt.Sprintf("Invalid property: %s", line))
			continue
		}
		properties[name] = strings.TrimSpace(value)
	}

	if len(invalid) > 0 {
		return nil, errors.NewInvalidPropertiesError(invalid)
	}
	return properties, nil
}

// DecodeString is Decode for string input.
func DecodeString(input string) (Properties, error) {
	return Decode([]byte(input))
}

// Encode renders one `key = value` line per entry, joined by newline with no
// trailing newline. `type` comes first and the rest follow in key order.
func Encode(p Properties) []byte {
	lines := make([]string, 0, len(p))
	if v, ok := p[TypeKey]; ok {
		lines = append(lines, TypeKey+" = "+v)
	}
	for _, k := range sortedKeys(p) {
		if k == TypeKey {
			continue
		}
		lines = append(lines, k+" = "+p[k])
	}
	return []byte(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer using the on-disk encoding.
func (p Properties) String() string {
	return string(Encode(p))
}

func sortedKeys(p Properties) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
