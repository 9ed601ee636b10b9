// Package services implements the community board operations on top of the
// repositories. Every operation validates and authorizes before touching storage.
package services

import (
	"context"
	"time"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/authz"
	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/internal/metrics"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/repositories"
	"github.com/google/uuid"
)

// DefaultCommentMaxLength applies when Settings leaves CommentMaxLength unset.
const DefaultCommentMaxLength = 1000

// Settings are the configurable board rules.
type Settings struct {
	EditWindow       time.Duration
	CommentMaxLength int
}

// Notifier delivers activity notifications. Implementations must not fail the caller.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// Repositories bundles the storage collaborators of the community service.
type Repositories struct {
	Posts     repositories.PostRepository
	Comments  repositories.CommentRepository
	Likes     repositories.LikeRepository
	Users     repositories.UserRepository
	Locations repositories.LocationRepository
}

// CommunityService serves posts, comments and likes.
type CommunityService struct {
	posts     repositories.PostRepository
	comments  repositories.CommentRepository
	likes     repositories.LikeRepository
	users     repositories.UserRepository
	locations repositories.LocationRepository

	notifier Notifier
	metrics  *metrics.Metrics
	settings Settings
	now      func() time.Time
}

// Option customizes a CommunityService.
type Option func(*CommunityService)

// WithClock replaces time.Now, mostly for edit-window tests.
func WithClock(now func() time.Time) Option {
	return func(s *CommunityService) { s.now = now }
}

func WithNotifier(n Notifier) Option {
	return func(s *CommunityService) { s.notifier = n }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *CommunityService) { s.metrics = m }
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(repos Repositories, settings Settings, opts ...Option) *CommunityService {
	if settings.EditWindow <= 0 {
		settings.EditWindow = authz.DefaultEditWindow
	}
	if settings.CommentMaxLength <= 0 {
		settings.CommentMaxLength = DefaultCommentMaxLength
	}
	s := &CommunityService{
		posts:     repos.Posts,
		comments:  repos.Comments,
		likes:     repos.Likes,
		users:     repos.Users,
		locations: repos.Locations,
		settings:  settings,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requireAuth(p identity.Principal) error {
	if !p.Authenticated() {
		return apperrors.Unauthenticated("login required")
	}
	return nil
}

// parseID rejects malformed ids as missing entities so they never reach the
// uuid columns.
func parseID(id, what string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", apperrors.NotFoundf("%s not found", what)
	}
	return parsed.String(), nil
}

// ensureUser mirrors the principal into the users table for foreign keys.
func (s *CommunityService) ensureUser(ctx context.Context, p identity.Principal) error {
	now := s.now()
	return s.users.UpsertUser(ctx, &models.User{ID: p.UserID, Email: p.Email, CreatedAt: now, UpdatedAt: now})
}

// observe counts persistence failures before handing err back.
func (s *CommunityService) observe(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.KindOf(err) == apperrors.PersistenceFailure {
		op := "unknown"
		if e, ok := apperrors.As(err); ok {
			op = e.Message
		}
		s.metrics.PersistenceFailure(op)
	}
	return err
}

func (s *CommunityService) notify(ctx context.Context, n models.Notification) {
	if s.notifier == nil || n.RecipientID == "" || n.RecipientID == n.ActorID {
		return
	}
	n.CreatedAt = s.now()
	s.notifier.Notify(ctx, n)
}
