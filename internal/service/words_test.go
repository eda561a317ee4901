package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wordtrainer/internal/store"
	"wordtrainer/internal/testutil"
)

func newTestWordsService(t *testing.T) (*WordsService, *testutil.MockStoreRepository) {
	t.Helper()
	mockRepo := new(testutil.MockStoreRepository)
	mockRepo.On("Load").Return(testutil.NewTestStore(), nil)

	svc := NewWordsService(mockRepo, testutil.NewTestLogger())
	require.NoError(t, svc.Open())
	return svc, mockRepo
}

func TestWordsService_Open(t *testing.T) {
	t.Run("load succeeds", func(t *testing.T) {
		svc, mockRepo := newTestWordsService(t)
		assert.NotNil(t, svc.Store())
		mockRepo.AssertExpectations(t)
	})

	t.Run("load fails", func(t *testing.T) {
		mockRepo := new(testutil.MockStoreRepository)
		mockRepo.On("Load").Return(nil, fmt.Errorf("corrupt database"))

		svc := NewWordsService(mockRepo, testutil.NewTestLogger())
		assert.Error(t, svc.Open())
	})
}

func TestWordsService_CreateFolder(t *testing.T) {
	tests := []struct {
		name       string
		parentPath string
		folderName string
		saveError  error
		wantErr    bool
		wantSave   bool
	}{
		{name: "in root", parentPath: "", folderName: "dutch", wantSave: true},
		{name: "nested", parentPath: "french", folderName: "verbs", wantSave: true},
		{name: "duplicate sibling", parentPath: "", folderName: "french", wantErr: true},
		{name: "parent is a list", parentPath: "french/animals", folderName: "x", wantErr: true},
		{name: "missing parent", parentPath: "nope", folderName: "x", wantErr: true},
		{name: "save fails", parentPath: "", folderName: "dutch", saveError: fmt.Errorf("disk full"), wantSave: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo := newTestWordsService(t)
			if tt.wantSave {
				mockRepo.On("Save", mock.Anything).Return(tt.saveError)
			}

			_, err := svc.CreateFolder(tt.parentPath, tt.folderName)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestWordsService_ImportExport(t *testing.T) {
	svc, mockRepo := newTestWordsService(t)
	mockRepo.On("Save", mock.Anything).Return(nil)

	l, err := svc.ImportTSV("french", "colors", "rouge\tred\nbleu\tblue\n")
	require.NoError(t, err)
	assert.Len(t, l.Terms, 2)

	out, err := svc.ExportTSV("french/colors")
	require.NoError(t, err)
	assert.Equal(t, "rouge\tred\nbleu\tblue\n", out)

	t.Run("export round-trips import", func(t *testing.T) {
		raw, err := svc.ExportTSV("french/animals")
		require.NoError(t, err)
		assert.Equal(t, "chat\tcat\nchien\tdog\n", raw)
	})

	t.Run("import into list path fails", func(t *testing.T) {
		_, err := svc.ImportTSV("french/animals", "x", "a\tb\n")
		assert.Error(t, err)
	})

	t.Run("malformed import saves nothing", func(t *testing.T) {
		saves := len(mockRepo.Calls)
		_, err := svc.ImportTSV("french", "bad", "no tab\n")
		assert.Error(t, err)
		assert.Len(t, mockRepo.Calls, saves)
	})
}

func TestWordsService_Terms(t *testing.T) {
	svc, mockRepo := newTestWordsService(t)
	mockRepo.On("Save", mock.Anything).Return(nil)

	_, err := svc.AddTerm("french/animals", "cheval", "horse")
	require.NoError(t, err)

	l, err := svc.ShowList("french/animals")
	require.NoError(t, err)
	assert.Len(t, l.Terms, 3)

	require.NoError(t, svc.RemoveTerm("french/animals", "cheval"))
	l, err = svc.ShowList("french/animals")
	require.NoError(t, err)
	assert.Len(t, l.Terms, 2)

	err = svc.RemoveTerm("french/animals", "cheval")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWordsService_DeleteMoveRename(t *testing.T) {
	svc, mockRepo := newTestWordsService(t)
	mockRepo.On("Save", mock.Anything).Return(nil)

	_, err := svc.CreateFolder("", "archive")
	require.NoError(t, err)

	require.NoError(t, svc.Move("french/animals", "archive"))
	_, err = svc.ShowList("archive/animals")
	require.NoError(t, err)

	require.NoError(t, svc.Rename("archive/animals", "beasts"))
	_, err = svc.ShowList("archive/beasts")
	require.NoError(t, err)

	require.NoError(t, svc.Delete("archive"))
	_, _, err = svc.ListFolder("archive")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWordsService_ListFolder(t *testing.T) {
	svc, _ := newTestWordsService(t)

	folders, lists, err := svc.ListFolder("")
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "french", folders[0].Name)
	assert.Empty(t, lists)

	folders, lists, err = svc.ListFolder("french")
	require.NoError(t, err)
	assert.Empty(t, folders)
	require.Len(t, lists, 1)
	assert.Equal(t, "animals", lists[0].Name)
}
