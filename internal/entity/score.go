package entity

// Score is the scoreboard kept across games of one session.
type Score struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

// Total is the number of finished games counted by the score.
func (that Score) Total() int {
	return that.X + that.O + that.Draws
}
