package entity

import "time"

type Poll struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Active  bool      `json:"active"`
	OwnerID int64     `json:"owner_id"`
}

// PollSummary is a poll row of the listing together with its vote count.
type PollSummary struct {
	Poll
	VoteCount int64 `json:"vote_count"`
}

type PollSort string

const (
	PollSortDefault PollSort = ""
	PollSortName    PollSort = "name"
	PollSortDate    PollSort = "date"
	PollSortVotes   PollSort = "vote"
)

// PollQuery filters a poll listing. Zero OwnerID means every owner.
type PollQuery struct {
	Search  string
	OwnerID int64
	Sort    PollSort
}
