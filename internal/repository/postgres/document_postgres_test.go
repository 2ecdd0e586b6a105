package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
	"docvault/internal/repository"
)

var docCols = []string{"id", "title", "category", "upload_date", "file_name", "file_size", "uploaded_by", "storage_path", "content_type"}

func sampleDoc() *model.Document {
	return &model.Document{
		ID:          "doc-1",
		Title:       "Report",
		Category:    "Finance",
		UploadDate:  "2024-01-15",
		FileName:    "r.pdf",
		FileSize:    "1.0 MB",
		UploadedBy:  "Jane",
		StoragePath: "documents/doc-1.pdf",
		ContentType: "application/pdf",
	}
}

func docRow(d *model.Document) *sqlmock.Rows {
	return sqlmock.NewRows(docCols).
		AddRow(d.ID, d.Title, d.Category, d.UploadDate, d.FileName, d.FileSize, d.UploadedBy, d.StoragePath, d.ContentType)
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	doc := sampleDoc()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO documents").
			WithArgs(doc.ID, doc.Title, doc.Category, doc.UploadDate, doc.FileName, doc.FileSize, doc.UploadedBy, doc.StoragePath, doc.ContentType).
			WillReturnRows(docRow(doc))

		result, err := repo.Create(ctx, doc)

		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, *doc, *result)
	})

	t.Run("duplicate id", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO documents").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		result, err := repo.Create(ctx, doc)

		assert.ErrorIs(t, err, repository.ErrDuplicateID)
		assert.Nil(t, result)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnRows(docRow(sampleDoc()))

		doc, err := repo.FindByID(ctx, "doc-1")

		assert.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "doc-1", doc.ID)
		assert.Equal(t, "2024-01-15", doc.UploadDate)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, doc)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("boom").
			WillReturnError(errors.New("conn reset"))

		_, err := repo.FindByID(ctx, "boom")

		assert.EqualError(t, err, "conn reset")
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("insertion order", func(t *testing.T) {
		rows := sqlmock.NewRows(docCols).
			AddRow("a", "A", "HR", "2024-01-10", "a.pdf", "0.1 MB", "x", "", "").
			AddRow("b", "B", "IT", "2024-01-11", "b.pdf", "0.2 MB", "y", "", "")
		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY seq ASC").WillReturnRows(rows)

		docs, err := repo.List(ctx)

		assert.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "a", docs[0].ID)
		assert.Equal(t, "b", docs[1].ID)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY").WillReturnRows(sqlmock.NewRows(docCols))

		docs, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents ORDER BY").WillReturnError(errors.New("db down"))

		_, err := repo.List(ctx)

		assert.Error(t, err)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(ctx, "doc-1"))
	assert.NoError(t, repo.Delete(ctx, "missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
