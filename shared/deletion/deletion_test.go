package deletion_test

import (
	"context"
	"errors"
	"net/http"
	"rkhub/shared/deletion"
	"rkhub/shared/dto"
	"rkhub/shared/failure"
	"rkhub/shared/listing"
	"rkhub/shared/notification"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var messages = deletion.Messages{
	SuccessTitle: "Update deleted successfully!",
	FailureTitle: "Error deleting update",
}

// memoryStore is an in-memory table of ids, newest first.
type memoryStore struct {
	mu      sync.Mutex
	ids     []string
	deletes []string
	err     error
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, id)
	if s.err != nil {
		return s.err
	}

	s.ids = slices.DeleteFunc(s.ids, func(existing string) bool { return existing == id })

	return nil
}

func (s *memoryStore) list(context.Context, dto.QueryParams) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.ids), nil
}

func TestController_DeleteThenLoadOmitsID(t *testing.T) {
	store := &memoryStore{ids: []string{"c", "b", "a"}}
	collection := listing.NewCollection("updates", store.list, 0)
	require.NoError(t, collection.Load(context.Background()))

	sink := notification.NewQueue()
	ctrl := deletion.New(store, sink, collection.Load, messages)

	err := ctrl.DeleteByID(context.Background(), "b")

	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, store.deletes)
	assert.NotContains(t, collection.Items(), "b")
	assert.Equal(t, []string{"c", "a"}, collection.Items())
	assert.Equal(t, []notification.Notification{
		{Kind: notification.KindSuccess, Title: messages.SuccessTitle},
	}, sink.Drain())
}

func TestController_DeleteFailure(t *testing.T) {
	store := &memoryStore{ids: []string{"a"}, err: failure.RequestError(errors.New("connection reset"))}
	refreshed := false
	sink := notification.NewQueue()

	ctrl := deletion.New(store, sink, func(context.Context) error {
		refreshed = true

		return nil
	}, messages)

	err := ctrl.DeleteByID(context.Background(), "a")

	assert.ErrorIs(t, err, deletion.ErrDeleteFailed)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.False(t, refreshed)
	assert.Equal(t, []string{"a"}, store.ids)
	assert.Equal(t, []notification.Notification{
		{Kind: notification.KindError, Title: messages.FailureTitle},
	}, sink.Drain())
}

func TestController_MissingID(t *testing.T) {
	store := &memoryStore{}
	sink := notification.NewQueue()
	ctrl := deletion.New(store, sink, nil, messages)

	for _, id := range []string{"", "   "} {
		assert.ErrorIs(t, ctrl.DeleteByID(context.Background(), id), deletion.ErrMissingID)
	}

	assert.Empty(t, store.deletes)
	assert.Equal(t, 0, sink.Len())
}

func TestController_RefreshFailureStillSucceeds(t *testing.T) {
	ctrl := deletion.New(deletion.DeleterFunc(func(context.Context, string) error { return nil }), nil,
		func(context.Context) error { return errors.New("reload failed") }, messages)

	assert.NoError(t, ctrl.DeleteByID(context.Background(), "a"))
}
