package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orion/internal/model"
)

var refreshCols = []string{"id", "token", "expiry_date", "user_id"}

func TestRefreshTokenPostgres_Replace(t *testing.T) {
	expiry := time.Now().Add(168 * time.Hour).UTC()
	tok := &model.RefreshToken{Token: "new-token", ExpiryDate: expiry, UserID: 1}

	t.Run("deletes previous tokens and inserts in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM refresh_tokens WHERE user_id = ").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO refresh_tokens").
			WithArgs("new-token", expiry, 1).
			WillReturnRows(sqlmock.NewRows(refreshCols).AddRow(2, "new-token", expiry, 1))
		mock.ExpectCommit()

		got, err := NewRefreshTokenPostgres(db).Replace(context.Background(), tok)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
		assert.Equal(t, "new-token", got.Token)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when insert fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM refresh_tokens WHERE user_id = ").
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO refresh_tokens").
			WillReturnError(errors.New("insert failed"))
		mock.ExpectRollback()

		got, err := NewRefreshTokenPostgres(db).Replace(context.Background(), tok)

		assert.Error(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRefreshTokenPostgres_Consume(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRefreshTokenPostgres(db)
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	mock.ExpectQuery("DELETE FROM refresh_tokens WHERE token = (.+) RETURNING").
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(refreshCols).AddRow(1, "tok", expiry, 3))
	got, err := repo.Consume(ctx, "tok")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), got.UserID)

	mock.ExpectQuery("DELETE FROM refresh_tokens WHERE token = (.+) RETURNING").
		WithArgs("tok").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Consume(ctx, "tok")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenPostgres_DeleteByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE user_id = ").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, NewRefreshTokenPostgres(db).DeleteByUser(context.Background(), 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}
