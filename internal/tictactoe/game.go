package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type announcer interface {
	Announce(event entity.Event)
}

// GameState holds the board of the current game and whose turn it is.
// It is not safe for concurrent use; callers serialize commands.
type GameState struct {
	board  entity.Board
	turn   entity.Mark
	active bool

	announcer announcer
}

// NewGameState returns a game in its initial state without announcing it. Call Reset to start.
func NewGameState(announcer announcer) *GameState {
	return &GameState{
		turn:      entity.PlayerX,
		active:    true,
		announcer: announcer,
	}
}

// Reset starts a fresh game with X to move.
func (that *GameState) Reset() {
	that.board = entity.Board{}
	that.turn = entity.PlayerX
	that.active = true

	that.announcer.Announce(entity.GameStarted(that.turn))
}

// ApplyMove places the current mark on cell. Moves on an occupied cell or a finished game
// are ignored. Only an index outside the board is an error.
func (that *GameState) ApplyMove(cell int) (entity.Outcome, error) {
	if !entity.IsValidCell(cell) {
		return entity.Ongoing(), fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.active || that.board[cell] != entity.EmptyCell {
		return entity.Ongoing(), nil
	}

	mark := that.turn
	that.board[cell] = mark

	outcome := entity.Evaluate(that.board)
	if outcome.IsFinished() {
		that.active = false
	} else {
		that.turn = mark.Other()
	}

	// state is committed before anything is announced
	that.announcer.Announce(entity.MarkPlaced(mark, cell))

	if outcome.IsFinished() {
		that.announcer.Announce(entity.GameFinished(outcome))
	} else {
		that.announcer.Announce(entity.TurnSwitched(that.turn))
	}

	return outcome, nil
}

func (that *GameState) Board() entity.Board {
	return that.board
}

func (that *GameState) Turn() entity.Mark {
	return that.turn
}

func (that *GameState) Active() bool {
	return that.active
}
