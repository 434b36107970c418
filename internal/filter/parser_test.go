package filter

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func TestParseFromQuery_PlainParams(t *testing.T) {
	params := url.Values{
		"type":                  {"active"},
		"challengeTechnologies": {"java, .net"},
		"orderBy":               {"challengeName"},
		"orderType":             {"desc"},
		"limit":                 {"10"},
		"offset":                {"20"},
		"includeCount":          {"true"},
	}

	result := ParseFromQuery(params, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	fs := result.Query.Filters
	if got := fs.Keys(); !reflect.DeepEqual(got, []string{"challengeTechnologies", "type"}) {
		t.Errorf("Keys() = %v", got)
	}
	if got, _ := fs.Get(KeyChallengeTechnologies); !reflect.DeepEqual(got, []string{"java", ".net"}) {
		t.Errorf("technologies = %v", got)
	}
	if result.Query.Order.Field != "challengeName" {
		t.Errorf("order field = %q", result.Query.Order.Field)
	}
	if d := result.Query.Order.Direction; d == nil || *d != SortDescNullsLast {
		t.Errorf("order direction = %v", d)
	}
	if l := result.Query.Pagination.Limit; l == nil || *l != 10 {
		t.Errorf("limit = %v", l)
	}
	if o := result.Query.Pagination.Offset; o == nil || *o != 20 {
		t.Errorf("offset = %v", o)
	}
}

func TestParseFromQuery_PackedFilter(t *testing.T) {
	params := url.Values{
		"filter": {"type=past&creator=tonyj&directProjectId=in(1,2)"},
	}

	result := ParseFromQuery(params, nil)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}

	fs := result.Query.Filters
	if v, _ := fs.First(KeyCreator); v != "tonyj" {
		t.Errorf("creator = %q", v)
	}
	if v, _ := fs.Get(KeyDirectProjectID); !reflect.DeepEqual(v, []string{"1", "2"}) {
		t.Errorf("directProjectId = %v", v)
	}
	if !fs.Has("TYPE") {
		t.Error("expected keys to match case-insensitively")
	}
}

func TestParseFromQuery_NoPaginationWhenAbsent(t *testing.T) {
	result := ParseFromQuery(url.Values{}, nil)
	if result.Query.Pagination.Limit != nil || result.Query.Pagination.Offset != nil {
		t.Error("expected nil pagination")
	}
	if result.Query.Order.Direction != nil {
		t.Error("expected nil direction")
	}
	if result.Query.Filters == nil || result.Query.Filters.Len() != 0 {
		t.Error("expected an empty, non-nil filter set")
	}
}

func TestParseFromQuery_Errors(t *testing.T) {
	tests := []struct {
		name      string
		params    url.Values
		opts      *ParseOptions
		wantParam string
		wantMsg   string
	}{
		{
			name:      "non integer limit",
			params:    url.Values{"limit": {"ten"}},
			wantParam: "limit",
			wantMsg:   "must be an integer",
		},
		{
			name:      "non integer offset",
			params:    url.Values{"offset": {"1.5"}},
			wantParam: "offset",
			wantMsg:   "must be an integer",
		},
		{
			name:      "too many filters",
			params:    url.Values{"a": {"1"}, "b": {"2"}},
			opts:      &ParseOptions{MaxFilters: 1},
			wantParam: "b",
			wantMsg:   "maximum number of filters",
		},
		{
			name:      "too many values",
			params:    url.Values{"clientId": {"1,2,3"}},
			opts:      &ParseOptions{MaxInValues: 2},
			wantParam: "clientId",
			wantMsg:   "maximum values",
		},
		{
			name:      "value too long",
			params:    url.Values{"directProjectName": {strings.Repeat("x", 11)}},
			opts:      &ParseOptions{MaxCharLen: 10},
			wantParam: "directProjectName",
			wantMsg:   "maximum length",
		},
		{
			name:      "malformed packed filter",
			params:    url.Values{"filter": {"type=%zz"}},
			wantParam: "filter",
			wantMsg:   "url encoded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseFromQuery(tt.params, tt.opts)
			if len(result.Errors) != 1 {
				t.Fatalf("expected 1 error, got %v", result.Errors)
			}
			if result.Errors[0].Param != tt.wantParam {
				t.Errorf("param = %q, want %q", result.Errors[0].Param, tt.wantParam)
			}
			if !strings.Contains(result.Errors[0].Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", result.Errors[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestSplitValues(t *testing.T) {
	cases := map[string][]string{
		"java":          {"java"},
		"java,.net":     {"java", ".net"},
		" a , ,b ":      {"a", "b"},
		"in(Code,F2F)":  {"Code", "F2F"},
		"IN( 1 , 2 )":   {"1", "2"},
		"":              {},
		"in()":          {},
		"contains(foo)": {"contains(foo)"},
	}
	for raw, want := range cases {
		if got := splitValues(raw); !reflect.DeepEqual(got, want) {
			t.Errorf("splitValues(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestFilterSetZeroValue(t *testing.T) {
	var fs FilterSet
	if fs.Has(KeyType) {
		t.Error("zero FilterSet should be empty")
	}
	fs.Add("Type", "active")
	fs.Add("type", "draft")
	if fs.Len() != 1 {
		t.Errorf("Len() = %d, want 1", fs.Len())
	}
	if got, _ := fs.Get(KeyType); !reflect.DeepEqual(got, []string{"active", "draft"}) {
		t.Errorf("Get() = %v", got)
	}
	if got := fs.Keys(); !reflect.DeepEqual(got, []string{"Type"}) {
		t.Errorf("Keys() = %v", got)
	}
}
