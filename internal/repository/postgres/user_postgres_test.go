package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orion/internal/model"
	"orion/internal/repository"
)

var userCols = []string{"id", "username", "email", "password_hash", "avatar_key", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()
	u := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "alice@example.com", "hash").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(1, "alice", "alice@example.com", "hash", "", time.Now()))

		got, err := repo.Create(ctx, u)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("duplicate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", "alice@example.com", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		got, err := repo.Create(ctx, u)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Find(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("by email", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ").
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(1, "alice", "alice@example.com", "hash", "avatars/1/x.png", time.Now()))

		u, err := repo.FindByEmail(ctx, "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "avatars/1/x.png", u.AvatarKey)
	})

	t.Run("by username not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByUsername(ctx, "ghost")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, u)
	})

	t.Run("by id", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ").
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(7, "bob", "bob@example.com", "hash", "", time.Now()))

		u, err := repo.FindByID(ctx, 7)

		assert.NoError(t, err)
		assert.Equal(t, "bob", u.Username)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users ORDER BY id").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "alice", "a@example.com", "h", "", time.Now()).
			AddRow(2, "bob", "b@example.com", "h", "", time.Now()))

	users, err := NewUserPostgres(db).List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	u := &model.User{ID: 1, Username: "alice2", Email: "a2@example.com", PasswordHash: "h2"}

	mock.ExpectQuery("UPDATE users SET username").
		WithArgs(1, "alice2", "a2@example.com", "h2").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Update(context.Background(), u)

	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_UpdateAvatarAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE users SET avatar_key").
		WithArgs(1, "avatars/1/a.png").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateAvatar(ctx, 1, "avatars/1/a.png"))

	mock.ExpectExec("DELETE FROM users WHERE id = ").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, 1))

	mock.ExpectExec("DELETE FROM users WHERE id = ").
		WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 2), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
