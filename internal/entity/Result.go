package entity

type ChoiceResult struct {
	Choice
	Votes int64 `json:"votes"`
}

type PollResults struct {
	Poll       Poll           `json:"poll"`
	Choices    []ChoiceResult `json:"choices"`
	TotalVotes int64          `json:"total_votes"`
}
