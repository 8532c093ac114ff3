package usecase

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

type announcer interface {
	Announce(event entity.Event)
}

// Snapshot is the full state a display needs to render the page from scratch.
type Snapshot struct {
	Board  entity.Board `json:"board"`
	Turn   entity.Mark  `json:"turn"`
	Active bool         `json:"active"`
	Score  entity.Score `json:"score"`
}

// Session dispatches the input commands of one player pair to their game and scoreboard.
// Every command runs to completion under the session lock.
type Session struct {
	logger *slog.Logger
	id     string

	mu        sync.Mutex
	started   bool
	game      *tictactoe.GameState
	scores    *tictactoe.ScoreTracker
	announcer announcer
}

func NewSession(logger *slog.Logger, id string, announcer announcer) *Session {
	return &Session{
		logger:    logger.With("component", "session", "sessionID", id),
		id:        id,
		game:      tictactoe.NewGameState(announcer),
		scores:    tictactoe.NewScoreTracker(),
		announcer: announcer,
	}
}

func (that *Session) ID() string {
	return that.id
}

// Start resets the game and publishes the initial scoreboard. Calling it again only
// republishes the current state.
func (that *Session) Start() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.started {
		that.started = true
		that.game.Reset()
		that.announcer.Announce(entity.ScoreUpdated(that.scores.Snapshot()))

		that.logger.Info("session started")
	}

	return that.snapshot()
}

// SelectCell applies a move for the player whose turn it is.
func (that *Session) SelectCell(cell int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.started {
		return apperror.ErrSessionNotStarted
	}

	outcome, err := that.game.ApplyMove(cell)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	if !outcome.IsFinished() {
		return nil
	}

	that.scores.RecordOutcome(outcome)
	score := that.scores.Snapshot()
	that.announcer.Announce(entity.ScoreUpdated(score))

	that.logger.Info("game finished", "result", outcome.Result, "winner", outcome.Winner, "games", score.Total())

	return nil
}

// Reset starts a new game and keeps the score.
func (that *Session) Reset() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.started {
		return apperror.ErrSessionNotStarted
	}

	that.game.Reset()

	return nil
}

// ResetAll zeroes the score and starts a new game.
func (that *Session) ResetAll() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.started {
		return apperror.ErrSessionNotStarted
	}

	that.scores.ResetAll()
	that.announcer.Announce(entity.ScoreUpdated(that.scores.Snapshot()))
	that.game.Reset()
	that.announcer.Announce(entity.ScoreReset())

	that.logger.Info("scores reset")

	return nil
}

func (that *Session) State() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Session) snapshot() Snapshot {
	return Snapshot{
		Board:  that.game.Board(),
		Turn:   that.game.Turn(),
		Active: that.game.Active(),
		Score:  that.scores.Snapshot(),
	}
}
