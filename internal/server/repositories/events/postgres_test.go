package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertQ = `(?s)^INSERT INTO analytics_events \(id, user_id, name, attributes, occurred_at\)\s+VALUES \(\$1, NULLIF\(\$2, ''\)::uuid, \$3, \$4, \$5\)$`

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)
	at := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(insertQ).
		WithArgs("e1", "u1", "sign_in", []byte(`{"success":true}`), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), &models.Event{
		ID: "e1", UserID: "u1", Name: "sign_in", Attributes: []byte(`{"success":true}`), OccurredAt: at,
	}))

	mock.ExpectExec(insertQ).
		WithArgs("e2", "", "sign_in", []byte("{}"), at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(context.Background(), &models.Event{ID: "e2", Name: "sign_in", OccurredAt: at}))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO analytics_events`).WillReturnError(errors.New("boom"))

	err = NewPostgresRepository(db).Create(context.Background(), &models.Event{ID: "e1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
