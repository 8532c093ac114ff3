package announce

import (
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type Announcer interface {
	Announce(event entity.Event)
}

// Fanout delivers every event to each sink in order. A panicking sink is logged and skipped,
// the remaining sinks still receive the event.
type Fanout struct {
	logger *slog.Logger
	sinks  []Announcer
}

func NewFanout(logger *slog.Logger, sinks ...Announcer) *Fanout {
	return &Fanout{
		logger: logger.With("component", "announce"),
		sinks:  sinks,
	}
}

func (that *Fanout) Announce(event entity.Event) {
	for _, sink := range that.sinks {
		that.deliver(sink, event)
	}
}

func (that *Fanout) deliver(sink Announcer, event entity.Event) {
	defer func() {
		if err := recover(); err != nil {
			that.logger.Error("announcer panicked", "event", event.Kind, "error", err)
		}
	}()

	sink.Announce(event)
}

// Log writes every event to the structured log at debug level.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (that *Log) Announce(event entity.Event) {
	attrs := []any{"event", event.Kind}

	switch {
	case event.Cell != nil:
		attrs = append(attrs, "mark", event.Mark, "cell", *event.Cell)
	case event.Outcome != nil:
		attrs = append(attrs, "result", event.Outcome.Result, "winner", event.Outcome.Winner)
	case event.Score != nil:
		attrs = append(attrs, "x", event.Score.X, "o", event.Score.O, "draws", event.Score.Draws)
	case event.Turn != entity.EmptyCell:
		attrs = append(attrs, "turn", event.Turn)
	}

	that.logger.Debug("announce", attrs...)
}
