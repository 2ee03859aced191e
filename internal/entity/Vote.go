package entity

import "time"

type Vote struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PollID    int64     `json:"poll_id"`
	ChoiceID  int64     `json:"choice_id"`
	CreatedAt time.Time `json:"created_at"`
}
