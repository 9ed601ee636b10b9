package repositories

import (
	"context"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations.
// Soft-deleted posts are invisible to every read.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	CountPostsByCategory(ctx context.Context, filter models.PostFilter) (*models.CategoryCounts, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	SoftDeletePost(ctx context.Context, id string) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// visiblePosts applies the soft-delete filter plus the location scope of f.
func visiblePosts(f models.PostFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_deleted = ?", false)
		if f.CityID != "" {
			db = db.Where("city_id = ?", f.CityID)
		}
		if f.ApartmentID != "" {
			db = db.Where("apartment_id = ?", f.ApartmentID)
		}
		return db
	}
}

// postOrder is total: ties fall back to creation time, then id.
func postOrder(sort models.PostSort) string {
	if sort == models.SortPopular {
		return "like_count DESC, created_at DESC, id DESC"
	}
	return "created_at DESC, id DESC"
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	if isForeignKeyViolation(err) {
		return apperrors.Invalid("unknown city or apartment")
	}
	return wrap("create post", err, "")
}

// GetPostByID retrieves a visible post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Scopes(visiblePosts(models.PostFilter{})).
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, wrap("get post", err, "post not found")
	}
	return &post, nil
}

// ListPosts returns visible posts matching filter in a deterministic order.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(visiblePosts(filter))
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	posts := []models.Post{}
	if err := q.Order(postOrder(filter.Sort)).Find(&posts).Error; err != nil {
		return nil, wrap("list posts", err, "")
	}
	return posts, nil
}

// CountPostsByCategory counts visible posts in the location scope of filter.
// The category of filter is ignored so every tab gets its badge.
func (r *PostgresPostRepository) CountPostsByCategory(ctx context.Context, filter models.PostFilter) (*models.CategoryCounts, error) {
	var rows []struct {
		Category models.Category
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Scopes(visiblePosts(filter)).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, wrap("count posts", err, "")
	}

	counts := &models.CategoryCounts{ByCategory: make(map[models.Category]int64, len(models.AllCategories))}
	for _, c := range models.AllCategories {
		counts.ByCategory[c] = 0
	}
	for _, row := range rows {
		counts.ByCategory[row.Category] = row.Count
		counts.Total += row.Count
	}
	return counts, nil
}

// UpdatePost saves the editable fields of a visible post.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", post.ID, false).
		Updates(map[string]interface{}{
			"category":   post.Category,
			"title":      post.Title,
			"content":    post.Content,
			"updated_at": post.UpdatedAt,
		})
	if res.Error != nil {
		return wrap("update post", res.Error, "")
	}
	if res.RowsAffected == 0 {
		return wrap("update post", gorm.ErrRecordNotFound, "post not found")
	}
	return nil
}

// SoftDeletePost marks a post deleted. Likes and comments stay for moderation.
func (r *PostgresPostRepository) SoftDeletePost(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return wrap("delete post", res.Error, "")
	}
	if res.RowsAffected == 0 {
		return wrap("delete post", gorm.ErrRecordNotFound, "post not found")
	}
	return nil
}
