package models

import "time"

// Like represents a like on a post. Presence of the row means liked.
type Like struct {
	PostID    string    `json:"post_id" gorm:"type:uuid;primaryKey"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps likes next to the other community tables.
func (Like) TableName() string {
	return "post_likes"
}

// LikeResult is the authoritative state returned after a toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}
