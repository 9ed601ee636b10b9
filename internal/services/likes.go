package services

import (
	"context"

	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/internal/models"
)

// ToggleLike flips the requester's like on a visible post and returns the
// authoritative state. The count is never taken from the caller.
func (s *CommunityService) ToggleLike(ctx context.Context, requester identity.Principal, postID string) (*models.LikeResult, error) {
	if err := requireAuth(requester); err != nil {
		return nil, err
	}
	id, err := parseID(postID, "post")
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, s.observe(err)
	}
	if err := s.ensureUser(ctx, requester); err != nil {
		return nil, s.observe(err)
	}

	result, err := s.likes.ToggleLike(ctx, id, requester.UserID)
	if err != nil {
		return nil, s.observe(err)
	}
	s.metrics.LikeToggled(result.Liked)

	if result.Liked {
		s.notify(ctx, models.Notification{
			Type:        models.NotificationLike,
			ActorID:     requester.UserID,
			RecipientID: post.AuthorID,
			PostID:      post.ID,
			Message:     "내 글에 좋아요가 눌렸습니다",
		})
	}
	return result, nil
}
