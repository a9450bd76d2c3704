package engine

import (
	"errors"
	"fmt"
)

// Mark is the content of a single board cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// Board is a 3x3 grid in row-major order (index = row*3 + col).
// It is a value type: hypothetical moves produce new boards.
type Board [9]Mark

// Outcome is the terminal state of a board, always derived from it.
type Outcome int

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

var ErrInvalidMove = errors.New("invalid move")

// winLines are the 8 index triples that decide a game: 3 rows, 3 columns, 2 diagonals.
var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent - returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == X {
		return O
	}
	return X
}

// Winner - returns the winning mark for decisive outcomes, Empty otherwise.
func (that Outcome) Winner() Mark {
	switch that {
	case XWins:
		return X
	case OWins:
		return O
	default:
		return Empty
	}
}

// ApplyMove - places mark on the given cell and returns the resulting board.
// The receiver board is never mutated.
func ApplyMove(board Board, cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= len(board) {
		return board, fmt.Errorf("%w: cell %d is out of range", ErrInvalidMove, cell)
	}

	if board[cell] != Empty {
		return board, fmt.Errorf("%w: cell %d is already occupied", ErrInvalidMove, cell)
	}

	board[cell] = mark

	return board, nil
}

// Evaluate - scans the 8 win lines and reports the board's outcome.
// A full board that also completes a line is a win, not a draw.
func Evaluate(board Board) Outcome {
	for _, line := range winLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != Empty && a == b && b == c {
			if a == X {
				return XWins
			}
			return OWins
		}
	}

	for _, cell := range board {
		if cell == Empty {
			return InProgress
		}
	}

	return Draw
}

// LegalMoves - returns the empty cell indices in ascending order.
// The ordering is what makes move selection deterministic on ties.
func LegalMoves(board Board) []int {
	moves := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == Empty {
			moves = append(moves, i)
		}
	}

	return moves
}
