package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestProbeRepo_TableExists(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		ident    string
		exists   bool
		mockErr  error
		expected bool
		wantErr  bool
	}{
		{name: "table present", table: "cache_movie_most_popular", ident: `"cache_movie_most_popular"`, exists: true, expected: true},
		{name: "table missing", table: "cache_movie_most_popular", ident: `"cache_movie_most_popular"`, exists: false, expected: false},
		{name: "mixed case keeps case", table: "MyTable", ident: `"MyTable"`, exists: true, expected: true},
		{name: "schema qualified", table: "public.MyTable", ident: `"public"."MyTable"`, exists: true, expected: true},
		{name: "database error", table: "cache_movie_most_popular", ident: `"cache_movie_most_popular"`, mockErr: fmt.Errorf("db error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewProbeRepo(db)

			expect := mock.ExpectQuery("SELECT to_regclass\\(\\$1\\) IS NOT NULL").WithArgs(tt.ident)
			if tt.mockErr != nil {
				expect.WillReturnError(tt.mockErr)
			} else {
				expect.WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))
			}

			exists, err := repo.TableExists(context.Background(), tt.table)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, exists)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProbeRepo_TableExists_InvalidName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProbeRepo(db)

	for _, table := range []string{"", "a.b.c", ".terms"} {
		_, err := repo.TableExists(context.Background(), table)
		assert.Error(t, err, table)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbeRepo_CountRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProbeRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "public"\."cache_movie_most_popular"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(20))

	count, err := repo.CountRows(context.Background(), "public.cache_movie_most_popular")

	assert.NoError(t, err)
	assert.Equal(t, 20, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbeRepo_CountRows_InvalidName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProbeRepo(db)

	for _, table := range []string{"", "a.b.c", "schema."} {
		_, err := repo.CountRows(context.Background(), table)
		assert.Error(t, err, table)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		expected string
	}{
		{name: "plain", table: "movies", expected: `"movies"`},
		{name: "schema qualified", table: "public.movies", expected: `"public"."movies"`},
		{name: "embedded quote", table: `mo"vies`, expected: `"mo""vies"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoted, err := quoteTable(tt.table)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, quoted)
		})
	}
}
