package engine

import (
	"errors"
	"math"
)

var ErrNoLegalMoves = errors.New("no legal moves left")

const (
	winScore   = 10
	centerCell = 4
)

// SelectMove - picks the best cell for maximizer via full-depth minimax with
// alpha-beta pruning. The caller must pass a non-terminal board; a full board
// fails with ErrNoLegalMoves. On equally good cells the lowest index wins.
func SelectMove(board Board, maximizer Mark) (int, error) {
	moves := LegalMoves(board)
	if len(moves) == 0 {
		return 0, ErrNoLegalMoves
	}

	// Every opening leads to a draw under perfect play, so the search alone
	// cannot prefer one cell over another. Take the center and skip the
	// deepest search entirely.
	if board == (Board{}) {
		return centerCell, nil
	}

	bestCell := -1
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt

	for _, cell := range moves {
		next, _ := ApplyMove(board, cell, maximizer)

		score := search(next, maximizer, 1, alpha, beta, false)
		if score > bestScore {
			bestScore = score
			bestCell = cell
		}

		if score > alpha {
			alpha = score
		}
	}

	// unreachable given the moves check above
	if bestCell < 0 {
		bestCell = moves[0]
	}

	return bestCell, nil
}

// search - scores the board from the maximizer's point of view. Depth counts
// plies already played below the root, so faster wins score higher and
// forced losses are postponed for as long as possible.
func search(board Board, maximizer Mark, depth, alpha, beta int, maximizing bool) int {
	switch outcome := Evaluate(board); {
	case outcome.Winner() == maximizer:
		return winScore - depth
	case outcome.Winner() == maximizer.Opponent():
		return -winScore + depth
	case outcome == Draw:
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range LegalMoves(board) {
			next, _ := ApplyMove(board, cell, maximizer)

			if score := search(next, maximizer, depth+1, alpha, beta, false); score > best {
				best = score
			}

			if best > alpha {
				alpha = best
			}

			if beta <= alpha {
				break
			}
		}

		return best
	}

	best := math.MaxInt
	for _, cell := range LegalMoves(board) {
		next, _ := ApplyMove(board, cell, maximizer.Opponent())

		if score := search(next, maximizer, depth+1, alpha, beta, true); score < best {
			best = score
		}

		if best < beta {
			beta = best
		}

		if beta <= alpha {
			break
		}
	}

	return best
}
