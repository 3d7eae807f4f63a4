package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := NewPostgresWithConn(mock)
	ctx := context.Background()
	query := regexp.QuoteMeta(postgresSelect)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("prayer_settings").
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"method":4}`))

		got, ok, err := p.Get(ctx, "prayer_settings")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `{"method":4}`, got)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("nope").
			WillReturnError(pgx.ErrNoRows)

		_, ok, err := p.Get(ctx, "nope")
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("driver error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("boom").
			WillReturnError(errors.New("connection reset"))

		_, ok, err := p.Get(ctx, "boom")
		assert.ErrorContains(t, err, "connection reset")
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Set(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	p := NewPostgresWithConn(mock)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(postgresUpsert)).
		WithArgs("scheduling_rules", "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, p.Set(ctx, "scheduling_rules", "[]"))

	mock.ExpectExec(regexp.QuoteMeta(postgresUpsert)).
		WithArgs("scheduling_rules", "[]").
		WillReturnError(errors.New("read-only transaction"))
	assert.ErrorContains(t, p.Set(ctx, "scheduling_rules", "[]"), "read-only")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_EnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(postgresSchema)).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	p := NewPostgresWithConn(mock)
	assert.NoError(t, p.EnsureSchema(context.Background()))
	assert.NoError(t, p.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
