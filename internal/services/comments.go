package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/authz"
	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/google/uuid"
)

// ListComments returns the comments of a visible post, oldest first.
func (s *CommunityService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	id, err := parseID(postID, "post")
	if err != nil {
		return nil, err
	}
	if _, err := s.posts.GetPostByID(ctx, id); err != nil {
		return nil, s.observe(err)
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, id)
	return comments, s.observe(err)
}

// CreateComment adds a comment or a one-level reply to a visible post.
func (s *CommunityService) CreateComment(ctx context.Context, author identity.Principal, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := requireAuth(author); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	switch {
	case content == "":
		return nil, apperrors.Invalid("invalid request payload",
			apperrors.FieldError{Field: "content", Message: "content is required"})
	case utf8.RuneCountInString(content) > s.settings.CommentMaxLength:
		return nil, apperrors.Invalid("invalid request payload",
			apperrors.FieldError{Field: "content", Message: fmt.Sprintf("must be at most %d characters", s.settings.CommentMaxLength)})
	}

	id, err := parseID(postID, "post")
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, s.observe(err)
	}

	var parent *models.Comment
	if req.ParentID != "" {
		parent, err = s.replyTarget(ctx, post.ID, req.ParentID)
		if err != nil {
			return nil, s.observe(err)
		}
	}

	if err := s.ensureUser(ctx, author); err != nil {
		return nil, s.observe(err)
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    post.ID,
		AuthorID:  author.UserID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, s.observe(err)
	}
	s.metrics.CommentCreated()

	s.notify(ctx, models.Notification{
		Type:        models.NotificationComment,
		ActorID:     author.UserID,
		RecipientID: post.AuthorID,
		PostID:      post.ID,
		CommentID:   comment.ID,
		Message:     "새 댓글이 달렸습니다",
	})
	if parent != nil && parent.AuthorID != post.AuthorID {
		s.notify(ctx, models.Notification{
			Type:        models.NotificationReply,
			ActorID:     author.UserID,
			RecipientID: parent.AuthorID,
			PostID:      post.ID,
			CommentID:   comment.ID,
			Message:     "내 댓글에 답글이 달렸습니다",
		})
	}
	return comment, nil
}

// replyTarget loads the parent of a reply. The parent must be a top-level
// comment of the same post.
func (s *CommunityService) replyTarget(ctx context.Context, postID, parentID string) (*models.Comment, error) {
	invalid := func(msg string) error {
		return apperrors.Invalid("invalid request payload",
			apperrors.FieldError{Field: "parent_id", Message: msg})
	}

	id, err := uuid.Parse(parentID)
	if err != nil {
		return nil, invalid("must be a valid id")
	}
	parent, err := s.comments.GetCommentByID(ctx, id.String())
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return nil, invalid("parent comment not found")
		}
		return nil, err
	}
	if parent.PostID != postID {
		return nil, invalid("parent comment belongs to another post")
	}
	if parent.ParentID != nil {
		return nil, invalid("replies cannot be nested")
	}
	return parent, nil
}

// DeleteComment removes a comment of postID. Replies are removed by the
// database cascade.
func (s *CommunityService) DeleteComment(ctx context.Context, requester identity.Principal, postID, commentID string) error {
	if err := requireAuth(requester); err != nil {
		return err
	}
	pid, err := parseID(postID, "comment")
	if err != nil {
		return err
	}
	cid, err := parseID(commentID, "comment")
	if err != nil {
		return err
	}

	comment, err := s.comments.GetCommentByID(ctx, cid)
	if err != nil {
		return s.observe(err)
	}
	if comment.PostID != pid {
		return apperrors.NotFoundf("comment not found")
	}
	if d := authz.CanDeleteComment(comment, requester); !d.Allowed {
		return apperrors.Forbiddenf("%s", d.Reason)
	}

	if err := s.comments.DeleteComment(ctx, cid); err != nil {
		return s.observe(err)
	}
	s.metrics.CommentDeleted()
	return nil
}
