package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Capacity of the outbound intent queue. Enqueue never blocks; when the
	// queue is full the intent is dropped and logged.
	notifyQueueSize = 1024

	// Budget for one delivery (DB row + push relay call).
	notifyDeliverTimeout = 5 * time.Second
)

// NotificationIntent is emitted by a usecase after its state change has
// committed. Delivery is best effort and never affects the triggering
// operation.
type NotificationIntent struct {
	UserID            uuid.UUID
	Title             string
	Message           string
	Type              entity.NotificationType
	RelatedEntityID   *uuid.UUID
	RelatedEntityType string
	ActionURL         string
}

// Notifier is the fire-and-forget side channel of every mutating operation.
type Notifier interface {
	Notify(intent NotificationIntent)
}

// Presence answers whether a user currently holds an open websocket
// connection. The hub implements it.
type Presence interface {
	IsOnline(userID uuid.UUID) bool
}

// NotifierService consumes notification intents on a background worker:
// it persists the notification row, then calls the push relay under a
// bounded timeout. Both steps may fail without consequence for the caller.
type NotifierService struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	relay            PushRelay
	presence         Presence

	queue    chan NotificationIntent
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewNotifierService(log *logrus.Logger, notificationRepo repository.NotificationRepository, relay PushRelay, presence Presence) *NotifierService {
	return &NotifierService{
		log:              log,
		notificationRepo: notificationRepo,
		relay:            relay,
		presence:         presence,
		queue:            make(chan NotificationIntent, notifyQueueSize),
		stopChan:         make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (s *NotifierService) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop drains nothing: pending intents still in the queue are delivered,
// then the worker exits.
func (s *NotifierService) Stop() {
	if s.stopped.Swap(true) {
		return
	}
	close(s.stopChan)
	s.wg.Wait()
}

// Notify enqueues an intent without blocking the caller.
func (s *NotifierService) Notify(intent NotificationIntent) {
	if s.stopped.Load() {
		return
	}
	select {
	case s.queue <- intent:
	default:
		s.log.Warnf("Notification queue full, dropping intent for user %s", intent.UserID)
	}
}

func (s *NotifierService) run() {
	defer s.wg.Done()
	for {
		select {
		case intent := <-s.queue:
			s.deliver(intent)
		case <-s.stopChan:
			// flush what is already queued
			for {
				select {
				case intent := <-s.queue:
					s.deliver(intent)
				default:
					return
				}
			}
		}
	}
}

func (s *NotifierService) deliver(intent NotificationIntent) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyDeliverTimeout)
	defer cancel()

	notification := &entity.Notification{
		UserID:          intent.UserID,
		Title:           intent.Title,
		Message:         intent.Message,
		Type:            intent.Type,
		RelatedEntityID: intent.RelatedEntityID,
	}
	if intent.RelatedEntityType != "" {
		notification.RelatedEntityType = &intent.RelatedEntityType
	}
	if intent.ActionURL != "" {
		notification.ActionURL = &intent.ActionURL
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.log.Warnf("Failed to persist notification for user %s (non-fatal): %+v", intent.UserID, err)
		return
	}

	// A user with a live websocket sees the in-app notification immediately,
	// so the push is redundant. The row is persisted either way.
	if s.presence.IsOnline(intent.UserID) {
		return
	}

	if err := s.relay.Send(ctx, intent.UserID, intent.Title, intent.Message); err != nil {
		s.log.Warnf("Failed to push notification %s (non-fatal): %+v", notification.ID, err)
	}
}
