package postgres

import (
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/lib/pq"

	"citybeat/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePersister_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	users := map[string]*domain.UserRecord{
		"alice": {Name: "Alice", Favorites: []int{5}, NotificationsEnabled: true},
	}
	wantDoc, err := json.Marshal(users)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO store_documents`).
		WithArgs(documentName, wantDoc).
		WillReturnResult(sqlmock.NewResult(0, 1))

	persister := NewStorePersister(db)
	require.NoError(t, persister.Save(users))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePersister_Save_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO store_documents`).
		WithArgs(documentName, sqlmock.AnyArg()).
		WillReturnError(assert.AnError)

	persister := NewStorePersister(db)
	assert.Error(t, persister.Save(map[string]*domain.UserRecord{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePersister_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	users := map[string]*domain.UserRecord{
		"alice": {Name: "Alice", Reserved: []int{2}, NotificationsEnabled: true},
	}
	doc, err := json.Marshal(users)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT document`).
		WithArgs(documentName).
		WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(doc))

	got, err := NewStorePersister(db).Load()
	require.NoError(t, err)
	assert.Equal(t, users, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePersister_Load_NoDocumentIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT document`).
		WithArgs(documentName).
		WillReturnRows(sqlmock.NewRows([]string{"document"}))

	got, err := NewStorePersister(db).Load()
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}
