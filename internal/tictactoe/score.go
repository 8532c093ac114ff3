package tictactoe

import "github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"

// ScoreTracker counts finished games. It outlives individual games.
type ScoreTracker struct {
	score entity.Score
}

func NewScoreTracker() *ScoreTracker {
	return &ScoreTracker{}
}

// RecordOutcome counts a finished game. Ongoing outcomes are ignored.
func (that *ScoreTracker) RecordOutcome(outcome entity.Outcome) {
	switch outcome.Result {
	case entity.ResultWon:
		switch outcome.Winner {
		case entity.PlayerX:
			that.score.X++
		case entity.PlayerO:
			that.score.O++
		}
	case entity.ResultDraw:
		that.score.Draws++
	case entity.ResultOngoing:
	}
}

func (that *ScoreTracker) ResetAll() {
	that.score = entity.Score{}
}

func (that *ScoreTracker) Snapshot() entity.Score {
	return that.score
}
