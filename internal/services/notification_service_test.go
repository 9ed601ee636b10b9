package services

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *mockNotificationRepo) GetByRecipientID(ctx context.Context, recipientID string, page, limit int) ([]models.Notification, int64, error) {
	args := m.Called(ctx, recipientID, page, limit)
	return args.Get(0).([]models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *mockNotificationRepo) GetUnreadCount(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	return m.Called(ctx, recipientID, notificationID).Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return m.Called(ctx, recipientID).Error(0)
}

func TestNotifySwallowsFailures(t *testing.T) {
	repo := new(mockNotificationRepo)
	repo.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	svc := NewNotificationService(repo)
	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), models.Notification{Type: models.NotificationLike, RecipientID: "u1"})
	})
	repo.AssertExpectations(t)
}

func TestNotificationInbox(t *testing.T) {
	repo := new(mockNotificationRepo)
	ctx := context.Background()
	items := []models.Notification{{Type: models.NotificationComment, RecipientID: "u1"}}
	repo.On("GetByRecipientID", ctx, "u1", 2, 10).Return(items, int64(11), nil)
	repo.On("GetUnreadCount", ctx, "u1").Return(int64(3), nil)
	repo.On("MarkAsRead", ctx, "u1", "abc").Return(apperrors.NotFoundf("notification not found"))
	repo.On("MarkAllAsRead", ctx, "u1").Return(nil)

	svc := NewNotificationService(repo)

	page, err := svc.List(ctx, u1, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(11), page.Total)
	assert.Len(t, page.Items, 1)

	count, err := svc.UnreadCount(ctx, u1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	assert.ErrorIs(t, svc.MarkRead(ctx, u1, "abc"), apperrors.NotFound)
	assert.NoError(t, svc.MarkAllRead(ctx, u1))

	_, err = svc.List(ctx, anon, 1, 10)
	assert.ErrorIs(t, err, apperrors.AuthRequired)

	repo.AssertExpectations(t)
}
