package knowledge

import (
	"fmt"
	"strconv"
	"strings"
)

// Collection names recognized by the knowledge store.
const (
	CollectionCompanyInfo = "company_info"
	CollectionServices    = "services"
	CollectionContacts    = "contacts"
	CollectionAwards      = "awards"
	CollectionBrands      = "brands"
	CollectionProducts    = "products"
)

// Collections lists the known collections in render order.
var Collections = []string{
	CollectionCompanyInfo,
	CollectionServices,
	CollectionContacts,
	CollectionAwards,
	CollectionBrands,
	CollectionProducts,
}

// Record is one loosely-typed knowledge document: string keys mapped to
// string, number, list, or nested map values.
type Record map[string]any

// Str returns the value under key rendered as a trimmed string, or ""
// when the key is absent or not representable as text.
func (r Record) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// StrOr returns Str(key), or fallback when that is empty.
func (r Record) StrOr(key, fallback string) string {
	if s := r.Str(key); s != "" {
		return s
	}
	return fallback
}

// Nested returns the map value under key as a Record, or an empty Record.
func (r Record) Nested(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return Record{}
}

// Normalize converts an arbitrary decoded value into a Record. Maps pass
// through; scalars become a record with a single "name" field, so seed
// files may list awards and brands as plain strings.
func Normalize(v any) Record {
	switch val := v.(type) {
	case map[string]any:
		return Record(val)
	case Record:
		return val
	case nil:
		return Record{}
	default:
		return Record{"name": strings.TrimSpace(fmt.Sprint(val))}
	}
}

// NormalizeAll applies Normalize to a decoded sequence.
func NormalizeAll(items []any) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, Normalize(item))
	}
	return records
}

// Snapshot is a point-in-time read of all knowledge collections, treated
// as immutable during one request.
type Snapshot struct {
	collections map[string][]Record
}

// NewSnapshot builds a Snapshot from named collections.
func NewSnapshot(collections map[string][]Record) Snapshot {
	if collections == nil {
		collections = map[string][]Record{}
	}
	return Snapshot{collections: collections}
}

// Collection returns the named collection, or an empty sequence.
func (s Snapshot) Collection(name string) []Record {
	return s.collections[name]
}

// Sources returns the names of non-empty collections in render order.
func (s Snapshot) Sources() []string {
	var names []string
	for _, name := range Collections {
		if len(s.collections[name]) > 0 {
			names = append(names, name)
		}
	}
	return names
}
