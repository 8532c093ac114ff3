package announce

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

// English strings are the message keys; other locales register translations.
const (
	msgGameStarted  = "Game started. %s to move."
	msgMarkPlaced   = "%s placed a mark on cell %d."
	msgTurnSwitched = "Turn switched, %s to move."
	msgGameWon      = "%s wins! Game over."
	msgGameDraw     = "Draw. Game over."
	msgScoreReset   = "Scores reset, game started."

	msgStatusWon  = "%s wins!"
	msgStatusDraw = "Draw"
)

func init() {
	zh := language.TraditionalChinese

	for key, translation := range map[string]string{
		msgGameStarted:  "遊戲開始。目前輪到 %s。",
		msgMarkPlaced:   "%s 在格子 %d 下子。",
		msgTurnSwitched: "換手，目前輪到 %s。",
		msgGameWon:      "%s 勝利！遊戲結束。",
		msgGameDraw:     "平手。遊戲結束。",
		msgScoreReset:   "分數已重置，遊戲開始。",
		msgStatusWon:    "%s勝利!",
		msgStatusDraw:   "平手",
	} {
		if err := message.SetString(zh, key, translation); err != nil {
			panic(err)
		}
	}
}

// Text renders the screen-reader announcement for an event. Cell numbers are 1-based.
// Events without an announcement render as the empty string.
func Text(printer *message.Printer, event entity.Event) string {
	switch event.Kind {
	case entity.EventGameStarted:
		return printer.Sprintf(msgGameStarted, event.Turn)
	case entity.EventMarkPlaced:
		cell := 0
		if event.Cell != nil {
			cell = *event.Cell
		}
		return printer.Sprintf(msgMarkPlaced, event.Mark, cell+1)
	case entity.EventTurnSwitched:
		return printer.Sprintf(msgTurnSwitched, event.Turn)
	case entity.EventGameFinished:
		if event.Outcome == nil {
			return ""
		}
		if event.Outcome.Result == entity.ResultWon {
			return printer.Sprintf(msgGameWon, event.Outcome.Winner)
		}
		return printer.Sprintf(msgGameDraw)
	case entity.EventScoreUpdated:
		// shown by the scoreboard only
		return ""
	case entity.EventScoreReset:
		return printer.Sprintf(msgScoreReset)
	default:
		return ""
	}
}

// Status renders the short status line shown next to the board for a finished game.
func Status(printer *message.Printer, outcome entity.Outcome) string {
	switch outcome.Result {
	case entity.ResultWon:
		return printer.Sprintf(msgStatusWon, outcome.Winner)
	case entity.ResultDraw:
		return printer.Sprintf(msgStatusDraw)
	case entity.ResultOngoing:
		return ""
	default:
		return ""
	}
}
