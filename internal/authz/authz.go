// Package authz holds the ownership and edit-window rules for community content.
// The functions operate on already loaded entities and never touch storage.
package authz

import (
	"time"

	"github.com/anonto42/vinahome/backend/internal/identity"
	"github.com/anonto42/vinahome/backend/internal/models"
)

// DefaultEditWindow is how long after creation an author may edit a post.
const DefaultEditWindow = 24 * time.Hour

const (
	ReasonNotOwner      = "not owner"
	ReasonWindowExpired = "edit window expired"
)

// Decision is the outcome of an authorization rule.
type Decision struct {
	Allowed bool
	Reason  string
}

var allow = Decision{Allowed: true}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanDeleteComment allows the comment author and admins.
func CanDeleteComment(comment *models.Comment, requester identity.Principal) Decision {
	if requester.Admin || comment.AuthorID == requester.UserID {
		return allow
	}
	return deny(ReasonNotOwner)
}

// CanEditPost allows the author while now - createdAt <= window.
// Exactly window after creation is still allowed. Admins do not bypass the window.
func CanEditPost(post *models.Post, requester identity.Principal, now time.Time, window time.Duration) Decision {
	if post.AuthorID != requester.UserID {
		return deny(ReasonNotOwner)
	}
	if now.Sub(post.CreatedAt) > window {
		return deny(ReasonWindowExpired)
	}
	return allow
}

// CanDeletePost allows the author and admins, with no time limit.
func CanDeletePost(post *models.Post, requester identity.Principal) Decision {
	if requester.Admin || post.AuthorID == requester.UserID {
		return allow
	}
	return deny(ReasonNotOwner)
}
