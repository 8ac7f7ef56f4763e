package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securevista/securevista/internal/blobstore"
	"github.com/securevista/securevista/internal/cache"
	"github.com/securevista/securevista/internal/domain"
)

func newMessageRepo(store blobstore.Store) (*MessageRepository, cache.CollectionCache) {
	cc := cache.NewMemoryCache()
	return NewMessageRepository(store, cc, nil), cc
}

func writeMessageDoc(t *testing.T, store *blobstore.MemoryStore, id, createdAt string) {
	t.Helper()
	doc := fmt.Sprintf(`{"id":%q,"name":"Tester","email":"t@example.com","message":"hi","createdAt":%q}`, id, createdAt)
	_, err := store.Write(context.Background(), blobstore.MessageKey(id), []byte(doc))
	require.NoError(t, err)
}

func TestMessagesCreate(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newMessageRepo(store)

	msg, err := repo.Create(context.Background(), MessageInput{
		Name:    "  Asha  ",
		Email:   "asha@example.com",
		Message: "Need a quote for 8 cameras",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(msg.ID, "msg-"))
	assert.Equal(t, "Asha", msg.Name)
	assert.Equal(t, domain.DefaultSubject, msg.Subject)
	assert.False(t, msg.Read)
	assert.False(t, msg.Replied)

	created, err := time.Parse(time.RFC3339, msg.CreatedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), created, 5*time.Second)

	objects, err := store.List(context.Background(), blobstore.MessagePrefix)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, blobstore.MessageKey(msg.ID), objects[0].Key)
}

func TestMessagesCreateValidation(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newMessageRepo(store)
	ctx := context.Background()

	tests := []struct {
		name  string
		input MessageInput
	}{
		{"missing name", MessageInput{Email: "a@b.c", Message: "hi"}},
		{"missing email", MessageInput{Name: "A", Message: "hi"}},
		{"missing message", MessageInput{Name: "A", Email: "a@b.c"}},
		{"whitespace only", MessageInput{Name: "  ", Email: "a@b.c", Message: "hi"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tc.input)
			assert.True(t, errors.Is(err, ErrValidationFailed))
		})
	}

	// validation failures never reach the store
	objects, err := store.List(ctx, blobstore.MessagePrefix)
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestMessagesListAllNewestFirst(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newMessageRepo(store)

	writeMessageDoc(t, store, "msg-1-a", "2025-01-01T10:00:00Z")
	writeMessageDoc(t, store, "msg-2-b", "2025-03-01T10:00:00Z")
	writeMessageDoc(t, store, "msg-3-c", "2025-02-01T10:00:00Z")

	messages := repo.ListAll(context.Background())
	require.Len(t, messages, 3)
	assert.Equal(t, "msg-2-b", messages[0].ID)
	assert.Equal(t, "msg-3-c", messages[1].ID)
	assert.Equal(t, "msg-1-a", messages[2].ID)
}

func TestMessagesListAllSkipsMalformedDocuments(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newMessageRepo(store)
	ctx := context.Background()

	writeMessageDoc(t, store, "msg-good", "2025-01-01T10:00:00Z")
	_, err := store.Write(ctx, blobstore.MessageKey("msg-bad"), []byte(`{broken`))
	require.NoError(t, err)

	messages := repo.ListAll(ctx)
	require.Len(t, messages, 1)
	assert.Equal(t, "msg-good", messages[0].ID)
}

func TestMessagesListAllStoreUnavailableFallsBackToCache(t *testing.T) {
	repo, cc := newMessageRepo(failingStore{})
	require.NoError(t, cc.Set("messages",
		[]byte(`[{"id":"msg-cached","name":"C","email":"c@d.e","message":"hi","createdAt":"2025-01-01T10:00:00Z"}]`)))

	messages := repo.ListAll(context.Background())
	require.Len(t, messages, 1)
	assert.Equal(t, "msg-cached", messages[0].ID)
}

func TestMessagesListAllStoreUnavailableWithoutCacheIsEmpty(t *testing.T) {
	repo, _ := newMessageRepo(failingStore{})
	messages := repo.ListAll(context.Background())
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestMessagesSetField(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newMessageRepo(store)
	ctx := context.Background()

	writeMessageDoc(t, store, "msg-1", "2025-01-01T10:00:00Z")

	updated, err := repo.SetField(ctx, "msg-1", map[string]interface{}{
		"read":      true,
		"id":        "msg-hijack",
		"createdAt": "1999-01-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.True(t, updated.Read)
	assert.False(t, updated.Replied)
	assert.Equal(t, "msg-1", updated.ID)
	assert.Equal(t, "2025-01-01T10:00:00Z", updated.CreatedAt)

	// change persisted to the document
	stored, err := repo.GetByID(ctx, "msg-1")
	require.NoError(t, err)
	assert.True(t, stored.Read)
}

func TestMessagesSetFieldNotFound(t *testing.T) {
	repo, _ := newMessageRepo(blobstore.NewMemoryStore())
	_, err := repo.SetField(context.Background(), "msg-missing", map[string]interface{}{"read": true})
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}

func TestMessagesDeleteIdempotent(t *testing.T) {
	store := blobstore.NewMemoryStore()
	repo, _ := newMessageRepo(store)
	ctx := context.Background()

	writeMessageDoc(t, store, "msg-1", "2025-01-01T10:00:00Z")

	require.NoError(t, repo.Delete(ctx, "msg-1"))
	require.NoError(t, repo.Delete(ctx, "msg-1"))

	assert.Empty(t, repo.ListAll(ctx))
}
