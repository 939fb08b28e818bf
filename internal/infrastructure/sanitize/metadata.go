// Package sanitize cleans client supplied data before it reaches storage.
package sanitize

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultMaxKeys     = 32
	DefaultMaxValueLen = 512
	maxKeyLen          = 64
	maxDepth           = 3
)

// MetadataSanitizer strips markup from token client metadata and bounds its
// size. Values other than strings, numbers, booleans and nested objects are
// dropped.
type MetadataSanitizer struct {
	policy      *bluemonday.Policy
	maxKeys     int
	maxValueLen int
}

func NewMetadataSanitizer() *MetadataSanitizer {
	return &MetadataSanitizer{
		policy:      bluemonday.StrictPolicy(),
		maxKeys:     DefaultMaxKeys,
		maxValueLen: DefaultMaxValueLen,
	}
}

// Sanitize returns a cleaned copy. Keys are kept in sorted order up to the
// key limit so the result does not depend on map iteration.
func (s *MetadataSanitizer) Sanitize(meta map[string]any) map[string]any {
	return s.object(meta, 1)
}

func (s *MetadataSanitizer) object(in map[string]any, depth int) map[string]any {
	out := make(map[string]any, len(in))
	if len(in) == 0 {
		return out
	}

	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if len(out) >= s.maxKeys {
			break
		}
		key := s.truncate(s.text(k), maxKeyLen)
		if key == "" {
			continue
		}
		if v, ok := s.value(in[k], depth); ok {
			out[key] = v
		}
	}
	return out
}

func (s *MetadataSanitizer) value(v any, depth int) (any, bool) {
	switch val := v.(type) {
	case string:
		return s.truncate(s.text(val), s.maxValueLen), true
	case bool, float64, float32, int, int64, int32, uint, uint64, uint32:
		return val, true
	case map[string]any:
		if depth >= maxDepth {
			return nil, false
		}
		return s.object(val, depth+1), true
	case []any:
		if depth >= maxDepth {
			return nil, false
		}
		items := make([]any, 0, len(val))
		for _, item := range val {
			if len(items) >= s.maxKeys {
				break
			}
			if cleaned, ok := s.value(item, depth+1); ok {
				items = append(items, cleaned)
			}
		}
		return items, true
	case fmt.Stringer:
		return s.truncate(s.text(val.String()), s.maxValueLen), true
	default:
		return nil, false
	}
}

func (s *MetadataSanitizer) text(v string) string {
	return strings.TrimSpace(s.policy.Sanitize(v))
}

// truncate cuts at a rune boundary
func (s *MetadataSanitizer) truncate(v string, limit int) string {
	if len(v) <= limit {
		return v
	}
	for limit > 0 && !utf8.RuneStart(v[limit]) {
		limit--
	}
	return v[:limit]
}
