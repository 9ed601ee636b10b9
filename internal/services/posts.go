package services

import (
	"context"
	"strings"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/authz"
	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/google/uuid"
)

// ListPosts returns visible posts for filter with the viewer's like flags.
func (s *CommunityService) ListPosts(ctx context.Context, viewer identity.Principal, filter models.PostFilter) ([]models.Post, error) {
	posts, err := s.posts.ListPosts(ctx, filter)
	if err != nil {
		return nil, s.observe(err)
	}
	if err := s.markLiked(ctx, viewer, posts); err != nil {
		return nil, s.observe(err)
	}
	return posts, nil
}

func (s *CommunityService) markLiked(ctx context.Context, viewer identity.Principal, posts []models.Post) error {
	if !viewer.Authenticated() || len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	liked, err := s.likes.LikedPostIDs(ctx, viewer.UserID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].Liked = liked[posts[i].ID]
	}
	return nil
}

// CountPosts counts visible posts per category in the location scope of filter.
func (s *CommunityService) CountPosts(ctx context.Context, filter models.PostFilter) (*models.CategoryCounts, error) {
	counts, err := s.posts.CountPostsByCategory(ctx, filter)
	return counts, s.observe(err)
}

// GetPost returns a visible post with its comments.
func (s *CommunityService) GetPost(ctx context.Context, viewer identity.Principal, postID string) (*models.PostDetail, error) {
	id, err := parseID(postID, "post")
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, s.observe(err)
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, id)
	if err != nil {
		return nil, s.observe(err)
	}

	if viewer.Authenticated() {
		liked, err := s.likes.HasUserLikedPost(ctx, id, viewer.UserID)
		if err != nil {
			return nil, s.observe(err)
		}
		post.Liked = liked
	}
	return &models.PostDetail{Post: *post, Comments: comments, Liked: post.Liked}, nil
}

// CreatePost validates the location of req and stores a new post by author.
func (s *CommunityService) CreatePost(ctx context.Context, author identity.Principal, req models.CreatePostRequest) (*models.Post, error) {
	if err := requireAuth(author); err != nil {
		return nil, err
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, apperrors.Invalid("invalid request payload",
			apperrors.FieldError{Field: "category", Message: err.Error()})
	}
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if fields := checkPostText(&title, &content); len(fields) > 0 {
		return nil, apperrors.Invalid("invalid request payload", fields...)
	}

	apartmentID, err := s.checkLocation(ctx, req.CityID, req.ApartmentID)
	if err != nil {
		return nil, s.observe(err)
	}
	if err := s.ensureUser(ctx, author); err != nil {
		return nil, s.observe(err)
	}

	now := s.now()
	post := &models.Post{
		ID:          uuid.NewString(),
		AuthorID:    author.UserID,
		CityID:      req.CityID,
		ApartmentID: apartmentID,
		Category:    category,
		Title:       title,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, s.observe(err)
	}
	s.metrics.PostCreated()
	return post, nil
}

// checkPostText applies the bounds that survive trimming. Nil pointers are skipped.
func checkPostText(title, content *string) []apperrors.FieldError {
	var fields []apperrors.FieldError
	if title != nil && *title == "" {
		fields = append(fields, apperrors.FieldError{Field: "title", Message: "title is required"})
	}
	if content != nil && len([]rune(*content)) < 10 {
		fields = append(fields, apperrors.FieldError{Field: "content", Message: "must be at least 10 characters"})
	}
	return fields
}

// checkLocation confirms the city exists and the apartment, when given, lies in it.
func (s *CommunityService) checkLocation(ctx context.Context, cityID, apartmentID string) (*string, error) {
	if _, err := s.locations.GetCity(ctx, cityID); err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return nil, apperrors.Invalid("invalid request payload",
				apperrors.FieldError{Field: "city_id", Message: "unknown city"})
		}
		return nil, err
	}
	if apartmentID == "" {
		return nil, nil
	}

	invalid := apperrors.Invalid("invalid request payload",
		apperrors.FieldError{Field: "apartment_id", Message: "unknown apartment for this city"})
	id, err := uuid.Parse(apartmentID)
	if err != nil {
		return nil, invalid
	}
	apt, err := s.locations.GetApartment(ctx, id.String())
	if err != nil {
		if apperrors.KindOf(err) == apperrors.NotFound {
			return nil, invalid
		}
		return nil, err
	}
	if apt.CityID != cityID {
		return nil, invalid
	}
	return &apt.ID, nil
}

// UpdatePost edits a post while the author is inside the edit window.
func (s *CommunityService) UpdatePost(ctx context.Context, requester identity.Principal, postID string, req models.UpdatePostRequest) (*models.Post, error) {
	if err := requireAuth(requester); err != nil {
		return nil, err
	}
	if req.Empty() {
		return nil, apperrors.Invalid("nothing to update")
	}

	var title, content *string
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		title = &t
	}
	if req.Content != nil {
		c := strings.TrimSpace(*req.Content)
		content = &c
	}
	if fields := checkPostText(title, content); len(fields) > 0 {
		return nil, apperrors.Invalid("invalid request payload", fields...)
	}
	var category models.Category
	if req.Category != nil {
		c, err := models.ParseCategory(*req.Category)
		if err != nil {
			return nil, apperrors.Invalid("invalid request payload",
				apperrors.FieldError{Field: "category", Message: err.Error()})
		}
		category = c
	}

	id, err := parseID(postID, "post")
	if err != nil {
		return nil, err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, s.observe(err)
	}

	now := s.now()
	if d := authz.CanEditPost(post, requester, now, s.settings.EditWindow); !d.Allowed {
		return nil, apperrors.Forbiddenf("%s", d.Reason)
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}
	if category != "" {
		post.Category = category
	}
	post.UpdatedAt = now
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, s.observe(err)
	}
	return post, nil
}

// DeletePost soft-deletes a post of the requester, or any post for admins.
func (s *CommunityService) DeletePost(ctx context.Context, requester identity.Principal, postID string) error {
	if err := requireAuth(requester); err != nil {
		return err
	}
	id, err := parseID(postID, "post")
	if err != nil {
		return err
	}
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return s.observe(err)
	}
	if d := authz.CanDeletePost(post, requester); !d.Allowed {
		return apperrors.Forbiddenf("%s", d.Reason)
	}
	return s.observe(s.posts.SoftDeletePost(ctx, id))
}
