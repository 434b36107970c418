package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tcdirect/direct/internal/apierror"
)

func (d Datasource) GetUserHandle(ctx context.Context, userID int64) (string, error) {
	var handle string
	err := d.Conn.GetContext(ctx, &handle, d.Conn.Rebind(`SELECT handle FROM "user" WHERE user_id = ?`), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apierror.NewAPIError(apierror.ErrNotFound, "User not found", nil)
		}
		return "", apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve user", err)
	}
	return handle, nil
}
