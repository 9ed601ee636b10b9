package models

import "time"

// Comment represents a comment on a post. ParentID allows one level of replies;
// deleting a parent cascades to its replies in the database.
type Comment struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    string    `json:"post_id" gorm:"type:uuid;not null;index"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  string    `json:"author_id" gorm:"not null;index"`
	Author    User      `json:"-" gorm:"foreignKey:AuthorID"`
	ParentID  *string   `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	Parent    *Comment  `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

// CreateCommentRequest defines the request body for creating a new comment.
// The upper length bound is configurable and checked by the service.
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required"`
	ParentID string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}
