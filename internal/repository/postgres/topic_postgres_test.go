package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orion/internal/model"
	"orion/internal/repository"
)

var topicCols = []string{"id", "name", "description", "created_at"}

func TestTopicPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTopicPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO topics").
		WithArgs("Go", "All things Go").
		WillReturnRows(sqlmock.NewRows(topicCols).AddRow(3, "Go", "All things Go", time.Now()))

	topic, err := repo.Create(ctx, &model.Topic{Name: "Go", Description: "All things Go"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), topic.ID)

	mock.ExpectQuery("INSERT INTO topics").
		WithArgs("Go", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Create(ctx, &model.Topic{Name: "Go"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopicPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM topics ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows(topicCols).
			AddRow(2, "Angular", "", time.Now()).
			AddRow(1, "Java", "", time.Now()))

	topics, err := NewTopicPostgres(db).List(context.Background())

	assert.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "Angular", topics[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
