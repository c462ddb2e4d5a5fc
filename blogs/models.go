// Package blogs implements the blog post domain: the listing query with
// filtering, sorting and pagination, and the post lifecycle with ownership
// and visibility rules.
package blogs

import (
	"strings"
	"time"
)

// BlogState is the lifecycle state controlling a blog's visibility.
type BlogState string

const (
	// StateDraft marks a blog visible to its owner only.
	StateDraft BlogState = "draft"
	// StatePublished marks a blog publicly visible.
	StatePublished BlogState = "published"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s BlogState) IsValid() bool {
	return s == StateDraft || s == StatePublished
}

// AuthorInfo is the reduced author projection joined into blog responses.
// It is read-only; blog mutations never touch the users table.
type AuthorInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Blog represents a blog post.
type Blog struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	AuthorID    int64       `json:"author_id"`
	Author      *AuthorInfo `json:"author,omitempty"`
	State       BlogState   `json:"state"`
	ReadCount   int         `json:"read_count"`
	ReadingTime int         `json:"reading_time"`
	Tags        []string    `json:"tags"`
	Body        string      `json:"body"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// wordsPerMinute is the assumed average reading speed.
const wordsPerMinute = 200

// ReadingTime estimates the minutes needed to read body: whitespace-delimited
// word count divided by 200, rounded up, never less than 1.
func ReadingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// canView reports whether the caller may see a blog. Published blogs are
// visible to everyone; drafts only to their owner.
func canView(state BlogState, authorID int64, callerID *int64) bool {
	if state == StatePublished {
		return true
	}
	return callerID != nil && *callerID == authorID
}
