package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/calebwray/flock-api/internal/platform/postgres"
	"github.com/calebwray/flock-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, postgres.MapError(nil))
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		t.Parallel()

		err := postgres.MapError(sql.ErrNoRows)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("wrapped no rows maps to not found", func(t *testing.T) {
		t.Parallel()

		err := postgres.MapError(fmt.Errorf("scan: %w", sql.ErrNoRows))
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("foreign key violation maps to invalid entity", func(t *testing.T) {
		t.Parallel()

		pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "offerings_member_id_fkey"}
		err := postgres.MapError(pgErr)

		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), "offerings_member_id_fkey")
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		t.Parallel()

		pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "offerings_amount_check"}
		assert.ErrorIs(t, postgres.MapError(pgErr), store.ErrInvalidEntity)
	})

	t.Run("unique violation maps to invalid entity", func(t *testing.T) {
		t.Parallel()

		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "membership_levels_code_key"}
		assert.ErrorIs(t, postgres.MapError(pgErr), store.ErrInvalidEntity)
	})

	t.Run("unrelated errors pass through unmodified", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("connection refused")
		assert.Same(t, sentinel, postgres.MapError(sentinel))
	})
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, postgres.IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("other")))
}

func TestIsCheckConstraintViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsCheckConstraintViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, postgres.IsCheckConstraintViolation(errors.New("other")))
}
