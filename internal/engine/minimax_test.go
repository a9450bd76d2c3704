package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMove(t *testing.T) {
	t.Run("Takes the center on an empty board", func(t *testing.T) {
		// Given: an empty board with the maximizer to move
		board := Board{}

		// When: the engine picks a move
		cell, err := SelectMove(board, O)

		// Then: it opens in the center
		require.NoError(t, err)
		assert.Equal(t, 4, cell)
	})

	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: X threatens cell 2 and O threatens cell 5
		board := Board{X, X, Empty, O, O, Empty, Empty, Empty, Empty}

		// When: O is to move
		cell, err := SelectMove(board, O)

		// Then: O completes its own row instead of merely blocking
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Blocks an imminent loss", func(t *testing.T) {
		// Given: X threatens to win on cell 2, O has no win of its own
		board := Board{X, X, Empty, Empty, O, Empty, Empty, Empty, Empty}

		// When: O is to move
		cell, err := SelectMove(board, O)

		// Then: O blocks the threat
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Is deterministic", func(t *testing.T) {
		// Given: a mid-game board
		board := Board{X, Empty, Empty, Empty, O, Empty, Empty, Empty, X}

		// When: the engine is asked twice
		first, err := SelectMove(board, O)
		require.NoError(t, err)

		second, err := SelectMove(board, O)
		require.NoError(t, err)

		// Then: both calls agree
		assert.Equal(t, first, second)
	})

	t.Run("Fails on a full board", func(t *testing.T) {
		// Given: no empty cell is left
		board := Board{X, O, X, O, X, O, O, X, O}

		// When: the engine is asked anyway
		_, err := SelectMove(board, X)

		// Then: the caller's sequencing bug is reported
		require.ErrorIs(t, err, ErrNoLegalMoves)
	})
}

// plainSelectMove runs the same search without pruning, with the same
// scoring and the same first-best tie-break as SelectMove.
func plainSelectMove(board Board, maximizer Mark) int {
	bestCell := -1
	bestScore := math.MinInt

	for _, cell := range LegalMoves(board) {
		next, _ := ApplyMove(board, cell, maximizer)

		if score := plainSearch(next, maximizer, 1, false); score > bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	return bestCell
}

func plainSearch(board Board, maximizer Mark, depth int, maximizing bool) int {
	switch outcome := Evaluate(board); {
	case outcome.Winner() == maximizer:
		return winScore - depth
	case outcome.Winner() == maximizer.Opponent():
		return -winScore + depth
	case outcome == Draw:
		return 0
	}

	mover := maximizer
	if !maximizing {
		mover = maximizer.Opponent()
	}

	best := math.MinInt
	if !maximizing {
		best = math.MaxInt
	}

	for _, cell := range LegalMoves(board) {
		next, _ := ApplyMove(board, cell, mover)

		score := plainSearch(next, maximizer, depth+1, !maximizing)
		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}

	return best
}

// reachableBoards enumerates every position that can occur in a game started
// on an empty board with X moving first, terminal positions excluded.
func reachableBoards() map[Board]Mark {
	positions := make(map[Board]Mark)

	var walk func(board Board, mover Mark)
	walk = func(board Board, mover Mark) {
		if Evaluate(board) != InProgress {
			return
		}

		if _, seen := positions[board]; seen {
			return
		}
		positions[board] = mover

		for _, cell := range LegalMoves(board) {
			next, _ := ApplyMove(board, cell, mover)
			walk(next, mover.Opponent())
		}
	}

	walk(Board{}, X)

	return positions
}

func TestSelectMove_AgreesWithUnprunedSearch(t *testing.T) {
	// Given: every reachable non-terminal position
	positions := reachableBoards()
	require.NotEmpty(t, positions)

	// Then: pruning never changes the chosen cell. The empty board is
	// answered by the fixed center opening before any search runs, so it
	// is not part of the comparison.
	for board, mover := range positions {
		if board == (Board{}) {
			continue
		}

		pruned, err := SelectMove(board, mover)
		require.NoError(t, err)

		require.Equal(t, plainSelectMove(board, mover), pruned, "board %v, mover %s", board, mover)
	}
}

func TestSelectMove_NeverLoses(t *testing.T) {
	// playOut drives every possible human continuation while the engine
	// answers each one; it reports any human win.
	var playOut func(t *testing.T, board Board, humanMark, botMark Mark, humanToMove bool)
	playOut = func(t *testing.T, board Board, humanMark, botMark Mark, humanToMove bool) {
		t.Helper()

		outcome := Evaluate(board)
		if outcome != InProgress {
			require.NotEqual(t, humanMark, outcome.Winner(), "engine lost on board %v", board)
			return
		}

		if humanToMove {
			for _, cell := range LegalMoves(board) {
				next, err := ApplyMove(board, cell, humanMark)
				require.NoError(t, err)
				playOut(t, next, humanMark, botMark, false)
			}
			return
		}

		cell, err := SelectMove(board, botMark)
		require.NoError(t, err)

		next, err := ApplyMove(board, cell, botMark)
		require.NoError(t, err)

		playOut(t, next, humanMark, botMark, true)
	}

	t.Run("Engine second as O", func(t *testing.T) {
		playOut(t, Board{}, X, O, true)
	})

	t.Run("Engine first as X", func(t *testing.T) {
		playOut(t, Board{}, O, X, false)
	})
}

// Evaluate never reports two results for one board by construction; this
// pins the exclusivity across everything a real game can reach.
func TestEvaluate_SingleOutcomePerReachableBoard(t *testing.T) {
	terminal := 0

	var walk func(board Board, mover Mark, seen map[Board]bool)
	walk = func(board Board, mover Mark, seen map[Board]bool) {
		if seen[board] {
			return
		}
		seen[board] = true

		outcome := Evaluate(board)
		if outcome != InProgress {
			terminal++

			if outcome == Draw {
				require.Empty(t, LegalMoves(board), "draw with empty cells on board %v", board)
			}

			return
		}

		for _, cell := range LegalMoves(board) {
			next, _ := ApplyMove(board, cell, mover)
			walk(next, mover.Opponent(), seen)
		}
	}

	walk(Board{}, X, make(map[Board]bool))

	assert.Positive(t, terminal)
}
