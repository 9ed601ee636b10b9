package services

import (
	"context"
	"log"

	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/repositories"
)

// NotificationPage is one page of a user's inbox.
type NotificationPage struct {
	Items []models.Notification `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// NotificationService stores and serves activity notifications.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify stores n. Failures are logged and swallowed so the triggering
// request still succeeds.
func (s *NotificationService) Notify(ctx context.Context, n models.Notification) {
	if err := s.repo.CreateNotification(ctx, &n); err != nil {
		log.Printf("notify %s of %s on post %s: %v", n.RecipientID, n.Type, n.PostID, err)
	}
}

func (s *NotificationService) List(ctx context.Context, p identity.Principal, page, limit int) (*NotificationPage, error) {
	if err := requireAuth(p); err != nil {
		return nil, err
	}
	items, total, err := s.repo.GetByRecipientID(ctx, p.UserID, page, limit)
	if err != nil {
		return nil, err
	}
	return &NotificationPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, p identity.Principal) (int64, error) {
	if err := requireAuth(p); err != nil {
		return 0, err
	}
	return s.repo.GetUnreadCount(ctx, p.UserID)
}

func (s *NotificationService) MarkRead(ctx context.Context, p identity.Principal, id string) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, p.UserID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, p identity.Principal) error {
	if err := requireAuth(p); err != nil {
		return err
	}
	return s.repo.MarkAllAsRead(ctx, p.UserID)
}
