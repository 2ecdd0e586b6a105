package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvault/internal/model"
	"docvault/internal/repository"
)

func TestDocumentStore_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(SeedDocuments()...)

	_, err := s.Create(ctx, &model.Document{ID: "a", Title: "A"})
	require.NoError(t, err)
	_, err = s.Create(ctx, &model.Document{ID: "b", Title: "B"})
	require.NoError(t, err)

	docs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	assert.Equal(t, "Financial Report Q4 2024", docs[0].Title)
	assert.Equal(t, "a", docs[2].ID)
	assert.Equal(t, "b", docs[3].ID)
}

func TestDocumentStore_ListIsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(model.Document{ID: "1", Title: "one"})

	snap, err := s.List(ctx)
	require.NoError(t, err)

	snap[0].Title = "mutated"
	require.NoError(t, s.Delete(ctx, "1"))
	_, err = s.Create(ctx, &model.Document{ID: "2"})
	require.NoError(t, err)

	assert.Len(t, snap, 1)
	assert.Equal(t, "1", snap[0].ID)

	docs, _ := s.List(ctx)
	require.Len(t, docs, 1)
	assert.Equal(t, "2", docs[0].ID)
}

func TestDocumentStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(model.Document{ID: "1"}, model.Document{ID: "2"})

	t.Run("existing", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "1"))
		_, err := s.FindByID(ctx, "1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("missing is a no-op", func(t *testing.T) {
		before, _ := s.List(ctx)
		assert.NoError(t, s.Delete(ctx, "nope"))
		after, _ := s.List(ctx)
		assert.Equal(t, len(before), len(after))
	})
}

func TestDocumentStore_DuplicateID(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	_, err := s.Create(ctx, &model.Document{ID: "x"})
	require.NoError(t, err)
	_, err = s.Create(ctx, &model.Document{ID: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(SeedUsers()...)

	admin, err := s.FindByEmail(ctx, "admin@vault.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	_, err = s.FindByEmail(ctx, "ADMIN@vault.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	jane := &model.User{ID: "j", Name: "Jane", Email: "jane@x.com", Role: model.RoleUser}
	_, err = s.Create(ctx, jane)
	require.NoError(t, err)

	got, err := s.FindByID(ctx, "j")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.Name)

	_, err = s.Create(ctx, &model.User{ID: "k", Email: "jane@x.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestSeeds(t *testing.T) {
	a, b := SeedUsers(), SeedUsers()
	assert.NotEqual(t, a[0].ID, b[0].ID)

	docs := SeedDocuments()
	require.Len(t, docs, 2)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
	assert.Equal(t, "HR", docs[1].Category)
}
