package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcdirect/direct/internal/apierror"
	"github.com/tcdirect/direct/internal/lookup"
)

func TestGetIDs(t *testing.T) {
	tests := []struct {
		name     string
		category lookup.Category
		names    []string
		query    string
		args     []driver.Value
		ids      []int64
	}{
		{
			name:     "case sensitive challenge type",
			category: lookup.CategoryChallengeType,
			names:    []string{"Code", "First2Finish"},
			query:    "SELECT project_category_id FROM project_category_lu WHERE 1 = 1 AND name IN ($1, $2) ORDER BY project_category_id",
			args:     []driver.Value{"Code", "First2Finish"},
			ids:      []int64{39, 38},
		},
		{
			name:     "technology folds case",
			category: lookup.CategoryTechnology,
			names:    []string{"java"},
			query:    "SELECT technology_type_id FROM technology_types WHERE 1 = 1 AND LOWER(technology_name) IN ($1) ORDER BY technology_type_id",
			args:     []driver.Value{"java"},
			ids:      []int64{3},
		},
		{
			name:     "every past status",
			category: lookup.CategoryDraftProjectStatus,
			query:    "SELECT project_status_id FROM project_status_lu WHERE 1 = 1 AND project_status_id NOT IN (1, 2) ORDER BY project_status_id",
			ids:      []int64{3, 4, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, mock := newTestDatasource(t)

			rows := sqlmock.NewRows([]string{"id"})
			for _, id := range tt.ids {
				rows.AddRow(id)
			}
			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.query))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(rows)

			ids, err := ds.GetIDs(context.Background(), tt.category, tt.names)
			require.NoError(t, err)
			assert.Equal(t, tt.ids, ids)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetIDsNoMatches(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery("FROM project_platform_lu").
		WithArgs("mainframe").
		WillReturnRows(sqlmock.NewRows([]string{"project_platform_id"}))

	ids, err := ds.GetIDs(context.Background(), lookup.CategoryPlatform, []string{"mainframe"})
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestGetIDsEmptyNamesSkipsQuery(t *testing.T) {
	ds, mock := newTestDatasource(t)

	ids, err := ds.GetIDs(context.Background(), lookup.CategoryPlatform, []string{})
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetIDsUnknownCategory(t *testing.T) {
	ds, _ := newTestDatasource(t)

	_, err := ds.GetIDs(context.Background(), lookup.Category("users; DROP TABLE project"), nil)
	assert.True(t, apierror.IsCode(err, apierror.ErrInternalServer))
}

func TestGetIDsQueryError(t *testing.T) {
	ds, mock := newTestDatasource(t)

	mock.ExpectQuery("FROM technology_types").WillReturnError(sql.ErrConnDone)

	_, err := ds.GetIDs(context.Background(), lookup.CategoryTechnology, []string{"java"})
	assert.True(t, apierror.IsCode(err, apierror.ErrInternalServer))
}
