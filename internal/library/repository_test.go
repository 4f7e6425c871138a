package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/lunaword/internal/database"
)

var libraryColumns = []string{
	"id", "word", "phonetic", "meaning", "category", "mnemonic", "roots",
	"collocations", "sentences", "created_at", "updated_at",
}

func TestDBRepository_FindAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDBRepository(sqlx.NewDb(db, "mysql"))
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(libraryColumns).
		AddRow(2, "cat", "kæt", "n. 猫", "动物", "", "", []byte(`[]`), []byte(`[]`), now, now).
		AddRow(1, "apple", "ˈæp.əl", "n. 苹果", "水果", "一天一苹果", "古英语", []byte(`["apple pie"]`),
			[]byte(`[{"text":"I eat an apple.","translation":"我吃一个苹果。"}]`), now, now)
	mock.ExpectQuery("SELECT \\* FROM library_words ORDER BY id").WillReturnRows(rows)

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "cat", got[0].Word)
	assert.Empty(t, got[0].Collocations)
	assert.Equal(t, "apple", got[1].Word)
	assert.Equal(t, Strings{"apple pie"}, got[1].Collocations)
	assert.Equal(t, Sentences{{Text: "I eat an apple.", Translation: "我吃一个苹果。"}}, got[1].Sentences)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindAll_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM library_words").WillReturnError(errors.New("connection reset"))

	_, err = NewDBRepository(sqlx.NewDb(db, "mysql")).FindAll(context.Background())
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
}

func TestDBRepository_FindByWord(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		driver    string
		word      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *WordCard
		wantErr   bool
	}{
		{
			name:   "found",
			driver: "mysql",
			word:   "apple",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM library_words WHERE word = \\?").
					WithArgs("apple").
					WillReturnRows(sqlmock.NewRows(libraryColumns).
						AddRow(1, "apple", "ˈæp.əl", "n. 苹果", "水果", "", "", "[]", "[]", now, now))
			},
			want: &WordCard{
				ID:           1,
				Word:         "apple",
				Phonetic:     "ˈæp.əl",
				Meaning:      "n. 苹果",
				Category:     "水果",
				Collocations: Strings{},
				Sentences:    Sentences{},
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		{
			name:   "postgres placeholders",
			driver: "postgres",
			word:   "apple",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM library_words WHERE word = \\$1").
					WithArgs("apple").
					WillReturnRows(sqlmock.NewRows(libraryColumns))
			},
			want: nil,
		},
		{
			name:   "not found",
			driver: "mysql",
			word:   "nonexistent",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM library_words WHERE word = \\?").
					WithArgs("nonexistent").
					WillReturnRows(sqlmock.NewRows(libraryColumns))
			},
			want: nil,
		},
		{
			name:   "database error",
			driver: "mysql",
			word:   "apple",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM library_words WHERE word = \\?").
					WithArgs("apple").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.setupMock(mock)
			got, err := NewDBRepository(sqlx.NewDb(db, tt.driver)).FindByWord(context.Background(), tt.word)
			if tt.wantErr {
				assert.ErrorIs(t, err, database.ErrStoreUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Upsert(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	card := completeCard()
	card.CreatedAt = now
	card.UpdatedAt = now

	tests := []struct {
		name      string
		driver    string
		wantQuery string
	}{
		{
			name:      "mysql",
			driver:    "mysql",
			wantQuery: "INSERT INTO library_words .* VALUES \\(\\?, \\?, \\?, \\?, \\?, \\?, \\?, \\?, \\?, \\?\\) ON DUPLICATE KEY UPDATE phonetic = VALUES\\(phonetic\\)",
		},
		{
			name:      "sqlite",
			driver:    "sqlite",
			wantQuery: "INSERT INTO library_words .* ON CONFLICT \\(word\\) DO UPDATE SET phonetic = excluded.phonetic",
		},
		{
			name:      "postgres",
			driver:    "postgres",
			wantQuery: "INSERT INTO library_words .* VALUES \\(\\$1, \\$2, .*\\$10\\) ON CONFLICT \\(word\\)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(tt.wantQuery).
				WithArgs("apple", "ˈæp.əl", "n. 苹果", "水果", "", "古英语 æppel",
					`["apple pie"]`, `[{"text":"I eat an apple.","translation":"我吃一个苹果。"}]`, now, now).
				WillReturnResult(sqlmock.NewResult(1, 1))

			err = NewDBRepository(sqlx.NewDb(db, tt.driver)).Upsert(context.Background(), &card)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Upsert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO library_words").
		WillReturnError(errors.New("deadlock"))

	card := completeCard()
	err = NewDBRepository(sqlx.NewDb(db, "mysql")).Upsert(context.Background(), &card)
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
}
