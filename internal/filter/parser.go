package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultMaxFilters  = 20
	defaultMaxInValues = 100
	defaultMaxCharLen  = 1000
)

type ParseOptions struct {
	MaxFilters  int // default 20
	MaxInValues int // default 100
	MaxCharLen  int // default 1000
}

type ParseError struct {
	Param   string `json:"param"`
	Message string `json:"message"`
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Message)
}

type ParseResult struct {
	Query  Query
	Errors []ParseError
}

// ParseFromQuery reads a listing request from URL query parameters.
//
// Filters may be given as plain parameters (type=active&challengeTechnologies=java,.net)
// or packed into a single url-encoded "filter" parameter (filter=type%3Dactive%26creator%3Dme).
// A value of the form in(a,b) is unwrapped to a,b. orderBy, orderType, limit and offset are
// reserved. Invalid parameters are reported rather than silently dropped.
func ParseFromQuery(queryParams url.Values, opts *ParseOptions) *ParseResult {
	maxFilters := defaultMaxFilters
	maxInValues := defaultMaxInValues
	maxCharLen := defaultMaxCharLen
	if opts != nil {
		if opts.MaxFilters > 0 {
			maxFilters = opts.MaxFilters
		}
		if opts.MaxInValues > 0 {
			maxInValues = opts.MaxInValues
		}
		if opts.MaxCharLen > 0 {
			maxCharLen = opts.MaxCharLen
		}
	}

	result := &ParseResult{
		Query:  Query{Filters: &FilterSet{}},
		Errors: make([]ParseError, 0),
	}

	pairs, errs := filterPairs(queryParams)
	result.Errors = append(result.Errors, errs...)

	for _, p := range pairs {
		if result.Query.Filters.Len() >= maxFilters && !result.Query.Filters.Has(p.key) {
			result.Errors = append(result.Errors, ParseError{
				Param:   p.key,
				Message: fmt.Sprintf("exceeded maximum number of filters (%d)", maxFilters),
			})
			continue
		}

		if len(p.value) > maxCharLen {
			result.Errors = append(result.Errors, ParseError{
				Param:   p.key,
				Message: fmt.Sprintf("value exceeds maximum length (%d chars)", maxCharLen),
			})
			continue
		}

		values := splitValues(p.value)
		if len(values) > maxInValues {
			result.Errors = append(result.Errors, ParseError{
				Param:   p.key,
				Message: fmt.Sprintf("filter exceeds maximum values (%d)", maxInValues),
			})
			continue
		}

		result.Query.Filters.Add(p.key, values...)
	}

	if v := queryParams.Get(paramOrderBy); v != "" {
		result.Query.Order.Field = v
	}
	if v := queryParams.Get(paramOrderType); v != "" {
		order := ParseSortOrder(v)
		result.Query.Order.Direction = &order
	}

	if limit, ok, err := intParam(queryParams, paramLimit); err != nil {
		result.Errors = append(result.Errors, *err)
	} else if ok {
		result.Query.Pagination.Limit = &limit
	}
	if offset, ok, err := intParam(queryParams, paramOffset); err != nil {
		result.Errors = append(result.Errors, *err)
	} else if ok {
		result.Query.Pagination.Offset = &offset
	}

	return result
}

type pair struct {
	key   string
	value string
}

// filterPairs flattens plain parameters and the packed "filter" parameter into ordered pairs.
// url.Values has no order, so plain keys are visited sorted for deterministic output.
func filterPairs(queryParams url.Values) ([]pair, []ParseError) {
	var pairs []pair
	var errs []ParseError

	for _, packed := range queryParams[paramFilter] {
		inner, err := url.ParseQuery(packed)
		if err != nil {
			errs = append(errs, ParseError{Param: paramFilter, Message: "filter must be url encoded key=value pairs joined by &"})
			continue
		}
		for _, key := range sortedKeys(inner) {
			for _, v := range inner[key] {
				pairs = append(pairs, pair{key: key, value: v})
			}
		}
	}

	for _, key := range sortedKeys(queryParams) {
		if isReservedParam(key) {
			continue
		}
		for _, v := range queryParams[key] {
			pairs = append(pairs, pair{key: key, value: v})
		}
	}
	return pairs, errs
}

// splitValues unwraps in(...) and splits on commas, dropping blanks.
func splitValues(raw string) []string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "in(") && strings.HasSuffix(raw, ")") {
		raw = raw[3 : len(raw)-1]
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

func intParam(queryParams url.Values, name string) (int, bool, *ParseError) {
	raw := strings.TrimSpace(queryParams.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, &ParseError{Param: name, Message: fmt.Sprintf("%s must be an integer", name)}
	}
	return v, true, nil
}
