package announce

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type recorder struct {
	events []entity.Event
}

func (that *recorder) Announce(event entity.Event) {
	that.events = append(that.events, event)
}

type panicking struct{}

func (panicking) Announce(entity.Event) {
	panic("display is gone")
}

func TestText(t *testing.T) {
	zh := Printer(language.TraditionalChinese)
	en := Printer(language.English)

	tests := []struct {
		name  string
		event entity.Event
		zh    string
		en    string
	}{
		{
			name:  "game started",
			event: entity.GameStarted(entity.PlayerX),
			zh:    "遊戲開始。目前輪到 X。",
			en:    "Game started. X to move.",
		},
		{
			name:  "mark placed uses 1-based cells",
			event: entity.MarkPlaced(entity.PlayerO, 4),
			zh:    "O 在格子 5 下子。",
			en:    "O placed a mark on cell 5.",
		},
		{
			name:  "turn switched",
			event: entity.TurnSwitched(entity.PlayerO),
			zh:    "換手，目前輪到 O。",
			en:    "Turn switched, O to move.",
		},
		{
			name:  "won",
			event: entity.GameFinished(entity.Won(entity.PlayerX, [3]int{0, 1, 2})),
			zh:    "X 勝利！遊戲結束。",
			en:    "X wins! Game over.",
		},
		{
			name:  "draw",
			event: entity.GameFinished(entity.Draw()),
			zh:    "平手。遊戲結束。",
			en:    "Draw. Game over.",
		},
		{
			name:  "score updated is not announced",
			event: entity.ScoreUpdated(entity.Score{X: 2, O: 1, Draws: 3}),
			zh:    "",
			en:    "",
		},
		{
			name:  "score reset",
			event: entity.ScoreReset(),
			zh:    "分數已重置，遊戲開始。",
			en:    "Scores reset, game started.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.zh, Text(zh, tt.event))
			assert.Equal(t, tt.en, Text(en, tt.event))
		})
	}
}

func TestStatus(t *testing.T) {
	zh := Printer(language.TraditionalChinese)

	assert.Equal(t, "O勝利!", Status(zh, entity.Won(entity.PlayerO, [3]int{2, 4, 6})))
	assert.Equal(t, "平手", Status(zh, entity.Draw()))
	assert.Empty(t, Status(zh, entity.Ongoing()))
}

func TestMatchAcceptLanguage(t *testing.T) {
	fallback := language.TraditionalChinese

	assert.Equal(t, language.English, MatchAcceptLanguage("en-US,en;q=0.9", fallback))
	assert.Equal(t, language.TraditionalChinese, MatchAcceptLanguage("zh-TW,zh;q=0.9", language.English))
	assert.Equal(t, fallback, MatchAcceptLanguage("", fallback))
	assert.Equal(t, fallback, MatchAcceptLanguage(";;;", fallback))
}

func TestParseTag(t *testing.T) {
	assert.Equal(t, language.TraditionalChinese, ParseTag("zh-Hant"))
	assert.Equal(t, language.TraditionalChinese, ParseTag("zh-TW"))
	assert.Equal(t, language.English, ParseTag("en"))
	assert.Equal(t, language.TraditionalChinese, ParseTag("not a tag"))
}

func TestFanout(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Delivers to every sink", func(t *testing.T) {
		// Given: a fanout over two sinks
		first, second := &recorder{}, &recorder{}
		fanout := NewFanout(logger, first, second)

		// When: an event is announced
		fanout.Announce(entity.GameStarted(entity.PlayerX))

		// Then: both sinks received it
		assert.Equal(t, []entity.Event{entity.GameStarted(entity.PlayerX)}, first.events)
		assert.Equal(t, []entity.Event{entity.GameStarted(entity.PlayerX)}, second.events)
	})

	t.Run("A panicking sink does not stop delivery", func(t *testing.T) {
		// Given: a fanout whose first sink panics
		rec := &recorder{}
		fanout := NewFanout(logger, panicking{}, NewLog(logger), rec)

		// When: an event is announced
		assert.NotPanics(t, func() {
			fanout.Announce(entity.MarkPlaced(entity.PlayerX, 0))
		})

		// Then: the remaining sink still received it
		assert.Len(t, rec.events, 1)
	})
}
