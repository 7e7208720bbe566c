package entity

import "time"

type VoteType string

const (
	VoteHot  VoteType = "hot"
	VoteCold VoteType = "cold"
)

// Valid reports whether t is hot or cold.
func (t VoteType) Valid() bool { return t == VoteHot || t == VoteCold }

// Weight is the vote's contribution to a deal's temperature.
func (t VoteType) Weight() int {
	if t == VoteHot {
		return 1
	}
	return -1
}

// Vote is unique per (UserID, DealID).
type Vote struct {
	ID        string    `json:"id"`
	Type      VoteType  `json:"type"`
	UserID    string    `json:"userId"`
	DealID    string    `json:"dealId"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteTally is a live count of a deal's votes.
type VoteTally struct {
	Hot         int `json:"hot"`
	Cold        int `json:"cold"`
	Temperature int `json:"temperature"`
}
