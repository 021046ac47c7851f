package models

import (
	"time"
)

// Comment represents a reader comment on a post.
// Comments are accepted by the API but not stored yet.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
	IsApproved bool      `json:"is_approved"`
}
