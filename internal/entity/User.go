package entity

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAnonymous reports whether u is the zero identity of an unauthenticated request.
func (u User) IsAnonymous() bool {
	return u.ID == 0
}
