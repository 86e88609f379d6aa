package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, MetadataFor(CodeUnauthorized).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, MetadataFor(CodeStateConflict).HTTPStatus)
	assert.Equal(t, http.StatusServiceUnavailable, MetadataFor(CodeDependency).HTTPStatus)
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeDependency, cause, "calling upstream")

	require.NotNil(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: calling upstream", err.Error())
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "missing field")
	require.NotNil(t, err)
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, CodeValidation, err.Code())
}

func TestAsUnwrapsNestedTypedError(t *testing.T) {
	inner := New(CodeNotFound, "order not found")
	wrapped := Wrap(CodeDependency, inner, "load order")

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeDependency, typed.Code())

	assert.Nil(t, As(errors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "bad input").WithDetails(map[string]string{"quantity": "must be at least 1"})
	details, ok := err.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 1", details["quantity"])
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDependency, cause, "stripe call")

	dump := Dump(err)
	assert.Equal(t, CodeDependency, dump.Code)
	require.Len(t, dump.Chain, 2)
	assert.Contains(t, dump.Chain[1], "connection refused")
	assert.Nil(t, dump.Postgres)
}

func TestDumpExtractsPostgresDetail(t *testing.T) {
	cause := &pgconn.PgError{
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint",
		ConstraintName: "idx_cart_buyer_listing",
		TableName:      "cart_items",
	}
	err := Wrap(CodeConflict, cause, "adding cart line")

	dump := Dump(err)
	require.NotNil(t, dump.Postgres)
	assert.Equal(t, "23505", dump.Postgres.Code)
	assert.Equal(t, "idx_cart_buyer_listing", dump.Postgres.Constraint)
	assert.Equal(t, "cart_items", dump.Postgres.Table)
}

func TestDumpExtractsPqDetail(t *testing.T) {
	cause := &pq.Error{Code: "23514", Constraint: "listings_quantity_check", Table: "listings"}
	err := Wrap(CodeInternal, cause, "decrementing stock")

	dump := Dump(err)
	require.NotNil(t, dump.Postgres)
	assert.Equal(t, "23514", dump.Postgres.Code)
	assert.Equal(t, "listings_quantity_check", dump.Postgres.Constraint)
}

func TestDumpOfPlainErrorHasNoCode(t *testing.T) {
	dump := Dump(errors.New("plain"))
	assert.Empty(t, dump.Code)
	assert.Equal(t, "plain", dump.Message)
}
