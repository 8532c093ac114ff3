package usecase

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type mockAnnouncer struct {
	mock.Mock
}

func (that *mockAnnouncer) Announce(event entity.Event) {
	that.Called(event)
}

func (that *mockAnnouncer) events() []entity.Event {
	events := make([]entity.Event, 0, len(that.Calls))
	for _, call := range that.Calls {
		events = append(events, call.Arguments.Get(0).(entity.Event))
	}
	return events
}

func newTestSession(t *testing.T) (*Session, *mockAnnouncer) {
	t.Helper()

	announcer := &mockAnnouncer{}
	announcer.On("Announce", mock.Anything).Return()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSession(logger, "session-1", announcer), announcer
}

func selectCells(t *testing.T, session *Session, cells ...int) {
	t.Helper()

	for _, cell := range cells {
		require.NoError(t, session.SelectCell(cell), "cell %d", cell)
	}
}

func TestSession_Start(t *testing.T) {
	t.Run("Starts the game and publishes the zero score", func(t *testing.T) {
		// Given: a new session
		session, announcer := newTestSession(t)

		// When: the session is started
		snapshot := session.Start()

		// Then: the game starts with X and the zero scoreboard is announced
		assert.Equal(t, Snapshot{Turn: entity.PlayerX, Active: true}, snapshot)
		assert.Equal(t, []entity.Event{
			entity.GameStarted(entity.PlayerX),
			entity.ScoreUpdated(entity.Score{}),
		}, announcer.events())
		assert.Equal(t, "session-1", session.ID())
	})

	t.Run("A second start only returns the current state", func(t *testing.T) {
		// Given: a started session with one move played
		session, announcer := newTestSession(t)
		session.Start()
		selectCells(t, session, 4)
		calls := len(announcer.Calls)

		// When: start is called again
		snapshot := session.Start()

		// Then: nothing is reset and nothing is announced
		assert.Equal(t, entity.PlayerX, snapshot.Board[4])
		assert.Equal(t, entity.PlayerO, snapshot.Turn)
		assert.Len(t, announcer.Calls, calls)
	})

	t.Run("Commands before start are rejected", func(t *testing.T) {
		session, announcer := newTestSession(t)

		require.ErrorIs(t, session.SelectCell(0), apperror.ErrSessionNotStarted)
		require.ErrorIs(t, session.Reset(), apperror.ErrSessionNotStarted)
		require.ErrorIs(t, session.ResetAll(), apperror.ErrSessionNotStarted)
		announcer.AssertNotCalled(t, "Announce", mock.Anything)
	})
}

func TestSession_SelectCell(t *testing.T) {
	t.Run("X wins and the score is recorded once", func(t *testing.T) {
		// Given: a started session
		session, announcer := newTestSession(t)
		session.Start()

		// When: cells 0,4,1,5,2 are selected
		selectCells(t, session, 0, 4, 1, 5, 2)

		// Then: X wins and x becomes 1
		state := session.State()
		assert.False(t, state.Active)
		assert.Equal(t, entity.Score{X: 1}, state.Score)

		events := announcer.events()
		require.GreaterOrEqual(t, len(events), 3)
		assert.Equal(t, entity.MarkPlaced(entity.PlayerX, 2), events[len(events)-3])
		assert.Equal(t, entity.GameFinished(entity.Won(entity.PlayerX, [3]int{0, 1, 2})), events[len(events)-2])
		assert.Equal(t, entity.ScoreUpdated(entity.Score{X: 1}), events[len(events)-1])

		// When: more cells are selected after the win
		selectCells(t, session, 3, 6, 7)

		// Then: the score is not counted again
		assert.Equal(t, entity.Score{X: 1}, session.State().Score)
	})

	t.Run("A draw increments draws", func(t *testing.T) {
		// Given: a started session
		session, announcer := newTestSession(t)
		session.Start()

		// When: a full game without a line is played
		selectCells(t, session, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: draws becomes 1
		assert.Equal(t, entity.Score{Draws: 1}, session.State().Score)
		announcer.AssertCalled(t, "Announce", entity.GameFinished(entity.Draw()))
		announcer.AssertCalled(t, "Announce", entity.ScoreUpdated(entity.Score{Draws: 1}))
	})

	t.Run("Selecting an occupied cell is ignored", func(t *testing.T) {
		// Given: X played cell 3
		session, announcer := newTestSession(t)
		session.Start()
		selectCells(t, session, 3)
		calls := len(announcer.Calls)

		// When: cell 3 is selected again
		err := session.SelectCell(3)

		// Then: no error, no change, no announcement
		require.NoError(t, err)
		state := session.State()
		assert.Equal(t, entity.PlayerX, state.Board[3])
		assert.Equal(t, entity.PlayerO, state.Turn)
		assert.Len(t, announcer.Calls, calls)
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		session, _ := newTestSession(t)
		session.Start()

		err := session.SelectCell(9)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestSession_Reset(t *testing.T) {
	t.Run("Reset keeps the score", func(t *testing.T) {
		// Given: O has won one game
		session, _ := newTestSession(t)
		session.Start()
		selectCells(t, session, 0, 3, 1, 4, 8, 5)
		require.Equal(t, entity.Score{O: 1}, session.State().Score)

		// When: the game is reset
		require.NoError(t, session.Reset())

		// Then: the board is fresh and the score is kept
		assert.Equal(t, Snapshot{Turn: entity.PlayerX, Active: true, Score: entity.Score{O: 1}}, session.State())
	})

	t.Run("Scores accumulate across games", func(t *testing.T) {
		session, _ := newTestSession(t)
		session.Start()

		selectCells(t, session, 0, 4, 1, 5, 2)
		require.NoError(t, session.Reset())
		selectCells(t, session, 0, 1, 2, 4, 3, 5, 7, 6, 8)
		require.NoError(t, session.Reset())
		selectCells(t, session, 0, 3, 1, 4, 8, 5)

		assert.Equal(t, entity.Score{X: 1, O: 1, Draws: 1}, session.State().Score)
	})

	t.Run("ResetAll zeroes the score and restarts", func(t *testing.T) {
		// Given: a session with a recorded win and a game in progress
		session, announcer := newTestSession(t)
		session.Start()
		selectCells(t, session, 0, 4, 1, 5, 2)
		require.NoError(t, session.Reset())
		selectCells(t, session, 7)
		calls := len(announcer.Calls)

		// When: everything is reset
		require.NoError(t, session.ResetAll())

		// Then: the score is zero, the game is fresh and the reset is announced in order
		assert.Equal(t, Snapshot{Turn: entity.PlayerX, Active: true}, session.State())
		assert.Equal(t, []entity.Event{
			entity.ScoreUpdated(entity.Score{}),
			entity.GameStarted(entity.PlayerX),
			entity.ScoreReset(),
		}, announcer.events()[calls:])
	})
}
