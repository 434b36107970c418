package filter

import (
	"sort"
	"strings"
)

const (
	paramFilter    = "filter"
	paramOrderBy   = "orderBy"
	paramOrderType = "orderType"
	paramLimit     = "limit"
	paramOffset    = "offset"
)

var reservedParams = map[string]bool{
	"filter":       true,
	"orderby":      true,
	"ordertype":    true,
	"limit":        true,
	"offset":       true,
	"fields":       true,
	"includecount": true,
}

func isReservedParam(param string) bool {
	return reservedParams[strings.ToLower(param)]
}

func sortedKeys(values map[string][]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
