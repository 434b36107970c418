package filter

import (
	"strings"
	"time"
)

// Recognized filter keys.
const (
	KeyType                  = "type"
	KeyCreator               = "creator"
	KeyChallengeType         = "challengeType"
	KeyChallengeStatus       = "challengeStatus"
	KeyChallengeTechnologies = "challengeTechnologies"
	KeyChallengePlatforms    = "challengePlatforms"
	KeyDirectProjectID       = "directProjectId"
	KeyDirectProjectName     = "directProjectName"
	KeyClientID              = "clientId"
	KeyBillingID             = "billingId"
	KeyStartDateFrom         = "startDateFrom"
	KeyStartDateTo           = "startDateTo"
	KeyEndDateFrom           = "endDateFrom"
	KeyEndDateTo             = "endDateTo"
)

type entry struct {
	key    string
	values []string
}

// FilterSet is an insertion-ordered mapping of filter key to raw values.
// Keys are matched case-insensitively. The zero value is ready to use.
type FilterSet struct {
	entries []entry
	index   map[string]int
}

// NewFilterSet builds a FilterSet from alternating key/value pairs, mostly useful in tests.
func NewFilterSet(pairs ...string) *FilterSet {
	fs := &FilterSet{}
	for i := 0; i+1 < len(pairs); i += 2 {
		fs.Add(pairs[i], pairs[i+1])
	}
	return fs
}

// Add appends values to key, creating it if needed.
func (f *FilterSet) Add(key string, values ...string) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	norm := strings.ToLower(key)
	if i, ok := f.index[norm]; ok {
		f.entries[i].values = append(f.entries[i].values, values...)
		return
	}
	f.index[norm] = len(f.entries)
	f.entries = append(f.entries, entry{key: key, values: append([]string(nil), values...)})
}

// Has reports whether key is present, even with no values.
func (f *FilterSet) Has(key string) bool {
	if f == nil || f.index == nil {
		return false
	}
	_, ok := f.index[strings.ToLower(key)]
	return ok
}

// Get returns the values stored for key.
func (f *FilterSet) Get(key string) ([]string, bool) {
	if !f.Has(key) {
		return nil, false
	}
	return f.entries[f.index[strings.ToLower(key)]].values, true
}

// First returns the first value of key. Multi-valued keys that take a single value use this.
func (f *FilterSet) First(key string) (string, bool) {
	values, ok := f.Get(key)
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Keys returns the keys in insertion order, as originally spelled.
func (f *FilterSet) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		keys = append(keys, e.key)
	}
	return keys
}

func (f *FilterSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

// SortOrder is the requested direction of the listing.
type SortOrder string

const (
	SortAscNullsFirst  SortOrder = "asc_nulls_first"
	SortAscNullsLast   SortOrder = "asc_nulls_last"
	SortDescNullsFirst SortOrder = "desc_nulls_first"
	SortDescNullsLast  SortOrder = "desc_nulls_last"
)

// ParseSortOrder maps the short "asc"/"desc" forms onto their null-ordering defaults.
// Anything else is returned lower-cased so the order compiler can reject it by name.
func ParseSortOrder(raw string) SortOrder {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "asc":
		return SortAscNullsFirst
	case "desc":
		return SortDescNullsLast
	default:
		return SortOrder(v)
	}
}

// OrderSpec names the listing sort field and an optional direction.
type OrderSpec struct {
	Field     string
	Direction *SortOrder
}

// Pagination is an optional limit/offset pair. A limit of -1 means no limit.
type Pagination struct {
	Limit  *int
	Offset *int
}

// Query is everything a caller supplies for a listing or count.
type Query struct {
	Filters    *FilterSet
	Order      OrderSpec
	Pagination Pagination
}

// CompiledQuery is the ordered list of AND predicates plus the named parameters they reference.
type CompiledQuery struct {
	Fragments []string
	Params    map[string]interface{}
}

func newCompiledQuery() *CompiledQuery {
	return &CompiledQuery{Params: make(map[string]interface{})}
}

func (q *CompiledQuery) add(fragment string, params map[string]interface{}) {
	q.Fragments = append(q.Fragments, fragment)
	for k, v := range params {
		q.Params[k] = v
	}
}

// MissingParams returns the named parameters referenced by a fragment but absent from Params.
func (q *CompiledQuery) MissingParams() []string {
	var missing []string
	seen := make(map[string]bool)
	for _, fragment := range q.Fragments {
		for _, name := range paramNames(fragment) {
			if _, ok := q.Params[name]; !ok && !seen[name] {
				seen[name] = true
				missing = append(missing, name)
			}
		}
	}
	return missing
}

func paramNames(fragment string) []string {
	var names []string
	for i := 0; i < len(fragment); i++ {
		if fragment[i] != ':' {
			continue
		}
		j := i + 1
		for j < len(fragment) && isParamChar(fragment[j]) {
			j++
		}
		if j > i+1 {
			names = append(names, fragment[i+1:j])
		}
		i = j - 1
	}
	return names
}

func isParamChar(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// DateRange is a resolved, inclusive [From, To] window.
type DateRange struct {
	From time.Time
	To   time.Time
}
