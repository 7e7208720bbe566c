package repository

import (
	"errors"
	"math"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint would be violated.
var ErrDuplicate = errors.New("duplicate")

// Page is an offset window over an ordered result set. A non-positive
// Limit means no limit.
type Page struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of overflowing.
func (p Page) Offset() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Set groups the repositories a storage driver provides.
type Set struct {
	Users    UserRepository
	Deals    DealRepository
	Comments CommentRepository
	Votes    VoteRepository
}
