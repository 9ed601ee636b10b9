package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType enumerates community activity that notifies a user.
type NotificationType string

const (
	NotificationComment NotificationType = "comment"
	NotificationReply   NotificationType = "reply"
	NotificationLike    NotificationType = "like"
)

// Notification is a user notification stored in MongoDB
type Notification struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type        NotificationType   `json:"type" bson:"type"`
	ActorID     string             `json:"actor_id" bson:"actor_id"`
	RecipientID string             `json:"recipient_id" bson:"recipient_id"`
	PostID      string             `json:"post_id" bson:"post_id"`
	CommentID   string             `json:"comment_id,omitempty" bson:"comment_id,omitempty"`
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
