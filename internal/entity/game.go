package entity

import "github.com/samber/lo"

type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

const BoardSize = 9

type Result string

const (
	ResultOngoing Result = "ongoing"
	ResultWon     Result = "won"
	ResultDraw    Result = "draw"
)

// WinLines are checked in this order: rows top-to-bottom, columns left-to-right,
// diagonal, anti-diagonal.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Other returns the opponent mark.
func (that Mark) Other() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

type Board [BoardSize]Mark

// Count returns how many cells hold the given mark.
func (that Board) Count(mark Mark) int {
	return lo.Count(that[:], mark)
}

func (that Board) IsFull() bool {
	return !lo.Contains(that[:], EmptyCell)
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

// Outcome is the result of evaluating a board. Line is set only when Result is ResultWon.
type Outcome struct {
	Result Result  `json:"result"`
	Winner Mark    `json:"winner,omitempty"`
	Line   *[3]int `json:"line,omitempty"`
}

func (that Outcome) IsFinished() bool {
	return that.Result == ResultWon || that.Result == ResultDraw
}

func Ongoing() Outcome {
	return Outcome{Result: ResultOngoing}
}

func Won(winner Mark, line [3]int) Outcome {
	return Outcome{Result: ResultWon, Winner: winner, Line: &line}
}

func Draw() Outcome {
	return Outcome{Result: ResultDraw}
}

// Evaluate returns the first completed line, a draw on a full board, or ongoing.
func Evaluate(board Board) Outcome {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Won(a, line)
		}
	}

	// the game continues until all the cells are full
	if !board.IsFull() {
		return Ongoing()
	}

	return Draw()
}
