package sqlite

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordtrainer/internal/store"
	"wordtrainer/internal/testutil"
)

func TestRepo_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db, testutil.NewTestLogger())

	st := store.New()
	french, err := st.CreateFolder(st.RootID(), "french")
	require.NoError(t, err)
	list, err := st.ImportTSV(french.ID, "animals", "chat\tcat\nchien\tdog\n")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM terms").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM lists").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM folders").WillReturnResult(sqlmock.NewResult(0, 0))

	mock.ExpectExec("INSERT INTO folders").
		WithArgs(st.RootID().String(), nil, "", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO folders").
		WithArgs(french.ID.String(), st.RootID().String(), "french", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectExec("INSERT INTO lists").
		WithArgs(list.ID.String(), french.ID.String(), "animals", 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO terms").
		WithArgs(list.Terms[0].ID.String(), list.ID.String(), "chat", "cat", 0, 0, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO terms").
		WithArgs(list.Terms[1].ID.String(), list.ID.String(), "chien", "dog", 0, 0, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()

	require.NoError(t, repo.Save(st))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db, testutil.NewTestLogger())
	st := store.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM terms").WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	err = repo.Save(st)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db, testutil.NewTestLogger())

	rootID := uuid.New()
	frenchID := uuid.New()
	listID := uuid.New()
	chatID := uuid.New()
	chienID := uuid.New()

	mock.ExpectQuery("SELECT id, parent_id, name FROM folders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "name"}).
			AddRow(rootID.String(), nil, "").
			AddRow(frenchID.String(), rootID.String(), "french"))
	mock.ExpectQuery("SELECT id, folder_id, name FROM lists").
		WillReturnRows(sqlmock.NewRows([]string{"id", "folder_id", "name"}).
			AddRow(listID.String(), frenchID.String(), "animals"))
	mock.ExpectQuery("SELECT id, list_id, question, answer, correct_streak, seen_count FROM terms").
		WillReturnRows(sqlmock.NewRows([]string{"id", "list_id", "question", "answer", "correct_streak", "seen_count"}).
			AddRow(chatID.String(), listID.String(), "chat", "cat", 2, 5).
			AddRow(chienID.String(), listID.String(), "chien", "dog", 0, 1))

	st, err := repo.Load()
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, rootID, st.RootID())

	id, kind, err := st.Resolve("french/animals")
	require.NoError(t, err)
	assert.Equal(t, store.PathList, kind)
	assert.Equal(t, listID, id)

	chat, err := st.FindTerm(chatID)
	require.NoError(t, err)
	assert.Equal(t, "chat", chat.Question)
	assert.Equal(t, "cat", chat.Answer)
	assert.Equal(t, 2, chat.CorrectStreak)
	assert.Equal(t, 5, chat.SeenCount)

	list, err := st.FindList(listID)
	require.NoError(t, err)
	require.Len(t, list.Terms, 2)
	assert.Equal(t, chatID, list.Terms[0].ID)
	assert.Equal(t, chienID, list.Terms[1].ID)
}

func TestRepo_Load_EmptyDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewWithDB(db, testutil.NewTestLogger())

	mock.ExpectQuery("SELECT id, parent_id, name FROM folders").
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "name"}))

	st, err := repo.Load()
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// a fresh store with a usable root
	terms, err := st.CollectTerms(st.RootID())
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestRepo_Load_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "folder query fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, parent_id, name FROM folders").
					WillReturnError(fmt.Errorf("corrupt file"))
			},
		},
		{
			name: "bad folder id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, parent_id, name FROM folders").
					WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "name"}).
						AddRow("not-a-uuid", nil, ""))
			},
		},
		{
			name: "list references unknown folder",
			setup: func(mock sqlmock.Sqlmock) {
				root := uuid.New()
				mock.ExpectQuery("SELECT id, parent_id, name FROM folders").
					WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id", "name"}).
						AddRow(root.String(), nil, ""))
				mock.ExpectQuery("SELECT id, folder_id, name FROM lists").
					WillReturnRows(sqlmock.NewRows([]string{"id", "folder_id", "name"}).
						AddRow(uuid.New().String(), uuid.New().String(), "lost"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setup(mock)

			repo := NewWithDB(db, testutil.NewTestLogger())
			_, err = repo.Load()
			assert.Error(t, err)
		})
	}
}
