package entity

type Choice struct {
	ID         int64  `json:"id"`
	PollID     int64  `json:"poll_id"`
	ChoiceText string `json:"choice_text"`
}
