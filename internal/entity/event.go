package entity

type EventKind string

const (
	EventGameStarted  EventKind = "game:started"
	EventMarkPlaced   EventKind = "mark:placed"
	EventTurnSwitched EventKind = "turn:switched"
	EventGameFinished EventKind = "game:finished"
	EventScoreUpdated EventKind = "score:updated"
	EventScoreReset   EventKind = "score:reset"
)

// Event is a single notification for the display. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind `json:"kind"`
	Turn    Mark      `json:"turn,omitempty"`
	Mark    Mark      `json:"mark,omitempty"`
	Cell    *int      `json:"cell,omitempty"`
	Outcome *Outcome  `json:"outcome,omitempty"`
	Score   *Score    `json:"score,omitempty"`
}

func GameStarted(turn Mark) Event {
	return Event{Kind: EventGameStarted, Turn: turn}
}

func MarkPlaced(mark Mark, cell int) Event {
	return Event{Kind: EventMarkPlaced, Mark: mark, Cell: &cell}
}

func TurnSwitched(turn Mark) Event {
	return Event{Kind: EventTurnSwitched, Turn: turn}
}

func GameFinished(outcome Outcome) Event {
	return Event{Kind: EventGameFinished, Outcome: &outcome}
}

func ScoreUpdated(score Score) Event {
	return Event{Kind: EventScoreUpdated, Score: &score}
}

func ScoreReset() Event {
	return Event{Kind: EventScoreReset}
}
