package repositories

import (
	"context"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	ToggleLike(ctx context.Context, postID, userID string) (*models.LikeResult, error)
	HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error)
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

const recountLikes = `UPDATE posts
SET like_count = (SELECT COUNT(*) FROM post_likes WHERE post_id = @post)
WHERE id = @post
RETURNING like_count`

// ToggleLike flips the like of userID on postID in one transaction.
// The post row is locked first so concurrent toggles on the same post serialize,
// and like_count is recomputed from the like rows instead of adjusted by a delta.
func (r *PostgresLikeRepository) ToggleLike(ctx context.Context, postID, userID string) (*models.LikeResult, error) {
	var result models.LikeResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ? AND is_deleted = ?", postID, false).
			Take(&post).Error
		if err != nil {
			return err
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Omit(clause.Associations).
			Create(&models.Like{PostID: postID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		result.Liked = res.RowsAffected == 1

		if !result.Liked {
			err := tx.Where("post_id = ? AND user_id = ?", postID, userID).
				Delete(&models.Like{}).Error
			if err != nil {
				return err
			}
		}

		return tx.Raw(recountLikes, map[string]interface{}{"post": postID}).
			Scan(&result.Count).Error
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NotFoundf("post or user not found")
		}
		return nil, wrap("toggle like", err, "post not found")
	}
	return &result, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, wrap("check like", err, "")
	}
	return count > 0, nil
}

// LikedPostIDs returns which of postIDs userID has liked.
func (r *PostgresLikeRepository) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	liked := make(map[string]bool, len(postIDs))
	if userID == "" || len(postIDs) == 0 {
		return liked, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, wrap("list likes", err, "")
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
