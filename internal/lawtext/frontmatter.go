package lawtext

import (
	"regexp"
	"sort"
	"strings"
)

// Field is one front-matter value. A key written with an empty value
// followed by dash lines becomes a list; anything else is a scalar.
type Field struct {
	Value  string
	Items  []string
	IsList bool
}

// Metadata maps front-matter keys to their values. Unknown keys are kept.
type Metadata map[string]Field

var fieldPattern = regexp.MustCompile(`^(\w+):\s*(.*)$`)

// ParseFrontmatter parses the lines found between the two `---` delimiters.
// Lines that are not `key: value` pairs are ignored.
func ParseFrontmatter(lines []string) Metadata {
	meta := Metadata{}

	for i := 0; i < len(lines); i++ {
		m := fieldPattern.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		key := m[1]
		value := strings.TrimSpace(m[2])

		if value != "" {
			meta[key] = Field{Value: value}
			continue
		}

		// YAML-style list: every following line starting with a dash.
		items := []string{}
		for i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if !strings.HasPrefix(next, "-") {
				break
			}
			items = append(items, strings.TrimSpace(strings.TrimPrefix(next, "-")))
			i++
		}
		meta[key] = Field{Items: items, IsList: true}
	}

	return meta
}

// String returns the scalar value of key, or "" when it is missing or a list.
func (m Metadata) String(key string) string {
	f, ok := m[key]
	if !ok || f.IsList {
		return ""
	}
	return f.Value
}

// List returns the items of a list field. ok is false when the key is
// missing or holds a scalar.
func (m Metadata) List(key string) (items []string, ok bool) {
	f, found := m[key]
	if !found || !f.IsList {
		return nil, false
	}
	return f.Items, true
}

func (m Metadata) Title() string { return m.String("titleFull") }

// Abandoned reports whether the regulation has been repealed.
func (m Metadata) Abandoned() bool { return m.String("status") == StatusAbandoned }

// Keys returns the field names in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map converts the metadata into plain values (string or []string) for
// encoders.
func (m Metadata) Map() map[string]any {
	out := make(map[string]any, len(m))
	for k, f := range m {
		if f.IsList {
			out[k] = append([]string(nil), f.Items...)
			continue
		}
		out[k] = f.Value
	}
	return out
}
