package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tcdirect/direct/internal/apierror"
	"github.com/tcdirect/direct/internal/lookup"
)

// lookupTable describes where a lookup category lives. Only these tables are ever queried.
type lookupTable struct {
	table    string
	idColumn string
	name     string
	foldCase bool   // compare lower-cased names; callers pass lower-cased values
	scope    string // extra predicate limiting the category
}

var lookupTables = map[lookup.Category]lookupTable{
	lookup.CategoryChallengeType: {
		table: "project_category_lu", idColumn: "project_category_id", name: "name",
	},
	lookup.CategoryTechnology: {
		table: "technology_types", idColumn: "technology_type_id", name: "technology_name", foldCase: true,
	},
	lookup.CategoryPlatform: {
		table: "project_platform_lu", idColumn: "project_platform_id", name: "name", foldCase: true,
	},
	lookup.CategoryDraftProjectStatus: {
		table: "project_status_lu", idColumn: "project_status_id", name: "name", foldCase: true,
		scope: "project_status_id NOT IN (1, 2)",
	},
}

func (t lookupTable) query(withNames bool) string {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE 1 = 1", t.idColumn, t.table)
	if t.scope != "" {
		q += " AND " + t.scope
	}
	if withNames {
		if t.foldCase {
			q += fmt.Sprintf(" AND LOWER(%s) IN (?)", t.name)
		} else {
			q += fmt.Sprintf(" AND %s IN (?)", t.name)
		}
	}
	return q + " ORDER BY " + t.idColumn
}

func (d Datasource) GetIDs(ctx context.Context, category lookup.Category, names []string) ([]int64, error) {
	t, ok := lookupTables[category]
	if !ok {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Unknown lookup category", fmt.Errorf("lookup category %q", category))
	}

	ids := []int64{}
	if names != nil && len(names) == 0 {
		return ids, nil
	}

	query := t.query(names != nil)
	var args []interface{}
	if names != nil {
		var err error
		query, args, err = sqlx.In(query, names)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to prepare lookup query", err)
		}
	}

	if err := d.Conn.SelectContext(ctx, &ids, d.Conn.Rebind(query), args...); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve lookup ids", err)
	}
	return ids, nil
}
