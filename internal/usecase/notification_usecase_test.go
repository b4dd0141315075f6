package usecase

import (
	"context"
	"testing"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyNotifications(t *testing.T) {
	e := newEnv()
	uc := NewNotificationUsecase(testLogger(), e.notifications)
	userID := uuid.New()
	other := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, e.notifications.Create(context.Background(), &entity.Notification{
			UserID: userID,
			Title:  "New Offer Received",
			Type:   entity.NotificationNewOffer,
		}))
	}
	require.NoError(t, e.notifications.Create(context.Background(), &entity.Notification{
		UserID: other,
		Title:  "New Offer Received",
		Type:   entity.NotificationNewOffer,
	}))

	resp, err := uc.GetMyNotifications(asUser(userID))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, int64(3), resp.UnreadCount)
}

func TestMarkRead(t *testing.T) {
	e := newEnv()
	uc := NewNotificationUsecase(testLogger(), e.notifications)
	userID := uuid.New()

	n := &entity.Notification{UserID: userID, Title: "Payment Successful", Type: entity.NotificationPaymentSuccess}
	require.NoError(t, e.notifications.Create(context.Background(), n))

	require.NoError(t, uc.MarkRead(asUser(userID), n.ID))

	unread, _ := e.notifications.CountUnread(context.Background(), userID)
	assert.Equal(t, int64(0), unread)
}

func TestMarkReadForeignNotification(t *testing.T) {
	e := newEnv()
	uc := NewNotificationUsecase(testLogger(), e.notifications)
	owner := uuid.New()
	intruder := uuid.New()

	n := &entity.Notification{UserID: owner, Title: "Payment Successful", Type: entity.NotificationPaymentSuccess}
	require.NoError(t, e.notifications.Create(context.Background(), n))

	err := uc.MarkRead(asUser(intruder), n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
