package filter

import (
	"strings"

	"github.com/tcdirect/direct/internal/apierror"
)

const (
	MsgUnsupportedSortField = "Sorting is not supported for requested field."
	MsgUnsupportedSortOrder = "Specified sort order is not supported. "
)

// CompileOrder builds the ORDER BY clause for the listing from the whitelist only.
// Every field except the id gets a descending id tie-break so pages stay stable.
func (c *Compiler) CompileOrder(spec OrderSpec) (string, error) {
	field := strings.TrimSpace(spec.Field)
	if field == "" {
		field = c.settings.DefaultSortField
	}
	field = strings.ToLower(field)

	column, ok := c.settings.OrderByFields[field]
	if !ok {
		return "", apierror.BadRequest(MsgUnsupportedSortField)
	}

	var b strings.Builder
	b.WriteString(" ORDER BY ")
	b.WriteString(column)

	if spec.Direction != nil {
		switch *spec.Direction {
		case SortAscNullsFirst:
			b.WriteString(" ASC")
		case SortDescNullsLast:
			b.WriteString(" DESC")
		default:
			return "", apierror.BadRequest(MsgUnsupportedSortOrder + string(*spec.Direction))
		}
	}

	if field != c.settings.IDSortField {
		b.WriteString(", ")
		b.WriteString(c.settings.TieBreakColumn)
		b.WriteString(" DESC")
	}

	return b.String(), nil
}
