package models

import "time"

// Post is a community board post. Posts are never hard-deleted; IsDeleted hides them.
type Post struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	AuthorID    string     `json:"author_id" gorm:"not null;index"`
	Author      User       `json:"-" gorm:"foreignKey:AuthorID"`
	CityID      string     `json:"city_id" gorm:"size:64;not null;index"`
	City        City       `json:"-" gorm:"foreignKey:CityID"`
	ApartmentID *string    `json:"apartment_id,omitempty" gorm:"type:uuid;index"`
	Apartment   *Apartment `json:"-" gorm:"foreignKey:ApartmentID"`
	Category    Category   `json:"category" gorm:"type:varchar(20);not null;index"`
	Title       string     `json:"title" gorm:"size:100;not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	LikeCount   int        `json:"like_count" gorm:"not null;default:0"`
	IsDeleted   bool       `json:"-" gorm:"column:is_deleted;not null;default:false;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;index"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Liked is filled per viewer and never persisted.
	Liked bool `json:"liked" gorm:"-"`
}

// PostSort selects the ordering of a post listing.
type PostSort string

const (
	SortLatest  PostSort = "latest"
	SortPopular PostSort = "popular"
)

// PostFilter scopes listing and counting. Zero values mean "any".
type PostFilter struct {
	CityID      string
	ApartmentID string
	Category    Category
	Sort        PostSort
	Offset      int
	Limit       int
}

// CategoryCounts is the badge summary for the board tabs.
type CategoryCounts struct {
	Total      int64              `json:"total"`
	ByCategory map[Category]int64 `json:"byCategory"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	CityID      string `json:"city_id" validate:"required,max=64"`
	ApartmentID string `json:"apartment_id,omitempty" validate:"omitempty,uuid"`
	Category    string `json:"category" validate:"required,category"`
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Content     string `json:"content" validate:"required,min=10,max=5000"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Category *string `json:"category,omitempty" validate:"omitempty,category"`
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Content  *string `json:"content,omitempty" validate:"omitempty,min=10,max=5000"`
}

// Empty reports whether the update carries no changes.
func (r UpdatePostRequest) Empty() bool {
	return r.Category == nil && r.Title == nil && r.Content == nil
}

// PostDetail is a post with its comment thread and the viewer's like state.
type PostDetail struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
	Liked    bool      `json:"liked"`
}
