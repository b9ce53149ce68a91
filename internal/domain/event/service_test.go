package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/event/eventtest"
	"github.com/Sonder9999/Daily-Web/internal/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, change events.ChangeEvent) {
	m.Called(ctx, change)
}

func actionIs(action string) interface{} {
	return mock.MatchedBy(func(c events.ChangeEvent) bool { return c.Action == action })
}

func TestCreateEvent(t *testing.T) {
	repo := eventtest.NewMemoryRepository()
	notifier := new(mockNotifier)
	notifier.On("Notify", mock.Anything, actionIs(events.ActionCreated)).Once()
	svc := event.NewService(repo, notifier, zap.NewNop())

	created, err := svc.CreateEvent(context.Background(), event.Input{
		Date:      "2024-01-15",
		StartTime: "08:00",
		EndTime:   "09:00",
		EventName: "跑步",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)
	assert.Equal(t, "08:00:00", created.StartTime)
	notifier.AssertExpectations(t)

	list, err := svc.ListByDate(context.Background(), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "跑步", list[0].EventName)
}

func TestCreateEventValidationSkipsStore(t *testing.T) {
	repo := eventtest.NewMemoryRepository()
	notifier := new(mockNotifier)
	svc := event.NewService(repo, notifier, zap.NewNop())

	_, err := svc.CreateEvent(context.Background(), event.Input{Date: "15/01/2024", StartTime: "08:00", EndTime: "09:00", EventName: "x"})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, repo.Calls)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestCreateEventStoreFailure(t *testing.T) {
	repo := eventtest.NewMemoryRepository()
	repo.Err = apperror.NewStore("create event", errors.New("db down"))
	notifier := new(mockNotifier)
	svc := event.NewService(repo, notifier, zap.NewNop())

	_, err := svc.CreateEvent(context.Background(), event.Input{Date: "2024-01-15", StartTime: "08:00", EndTime: "09:00", EventName: "x"})
	assert.True(t, apperror.IsStore(err))
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestUpdateAndDeleteMissingIDSucceed(t *testing.T) {
	repo := eventtest.NewMemoryRepository()
	notifier := new(mockNotifier)
	notifier.On("Notify", mock.Anything, actionIs(events.ActionUpdated)).Once()
	notifier.On("Notify", mock.Anything, actionIs(events.ActionDeleted)).Once()
	svc := event.NewService(repo, notifier, zap.NewNop())

	err := svc.UpdateEvent(context.Background(), 99, event.Input{Date: "2024-01-15", StartTime: "08:00", EndTime: "09:00", EventName: "x"})
	assert.NoError(t, err)
	assert.NoError(t, svc.DeleteEvent(context.Background(), 99))
	notifier.AssertExpectations(t)
}

func TestUpdateEventReplacesFields(t *testing.T) {
	repo := eventtest.NewMemoryRepository(event.Event{Date: "2024-01-15", StartTime: "08:00:00", EndTime: "09:00:00", EventName: "old", Notes: "n"})
	notifier := new(mockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything)
	svc := event.NewService(repo, notifier, zap.NewNop())

	err := svc.UpdateEvent(context.Background(), 1, event.Input{Date: "2024-01-16", StartTime: "10:00", EndTime: "11:00", EventName: "new"})
	require.NoError(t, err)

	got, err := svc.GetEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-16", got.Date)
	assert.Equal(t, "new", got.EventName)
	assert.Equal(t, "", got.Notes)
}

func TestListByDateRejectsMalformedDate(t *testing.T) {
	repo := eventtest.NewMemoryRepository()
	svc := event.NewService(repo, new(mockNotifier), zap.NewNop())

	_, err := svc.ListByDate(context.Background(), "yesterday")
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, 0, repo.Calls)
}

func TestGetEventNotFound(t *testing.T) {
	svc := event.NewService(eventtest.NewMemoryRepository(), new(mockNotifier), zap.NewNop())
	_, err := svc.GetEvent(context.Background(), 5)
	assert.True(t, apperror.IsNotFound(err))
}
