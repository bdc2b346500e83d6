package storeerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorPassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewNotFoundError("unknown userId", true, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorPostgresUniqueViolation(t *testing.T) {
	err := fmt.Errorf("inserting user: %w", &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "users",
		ConstraintName: "users_username_key",
	})

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Username already exists", httpErr.Message)
}

func TestHandleErrorPostgresNotNull(t *testing.T) {
	err := &pgconn.PgError{Code: "23502", TableName: "exerciselog", ColumnName: "description"}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "description", httpErr.Errors[0].Field)
	assert.Equal(t, "EXERCISELOG_REQUIRED", httpErr.Code)
}

func TestHandleErrorPostgresUnknownCodeHidesDetails(t *testing.T) {
	err := &pgconn.PgError{Code: "XX000", Message: "internal detail"}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestHandleErrorMongoDuplicateKey(t *testing.T) {
	err := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: tracker.users index: username_1 dup key: { username: \"alice\" }",
		}},
	}

	httpErr := asHTTPError(t, HandleError(err))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Username already exists", httpErr.Message)
}

func TestHandleErrorNotFound(t *testing.T) {
	for _, err := range []error{pgx.ErrNoRows, fmt.Errorf("find: %w", mongo.ErrNoDocuments)} {
		httpErr := asHTTPError(t, HandleError(err))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "not found", httpErr.Message)
	}
}

func TestHandleErrorFallback(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("socket closed")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestErrCode(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", ConvertPgError(&pgconn.PgError{Code: "23503"}))
	assert.Equal(t, ForeignKeyViolation, ErrCode(wrapped))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestMapSeverityDefaultsToError(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("???"))
}
