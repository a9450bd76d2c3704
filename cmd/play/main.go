package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/ClayMicholaz/tictactoe-minimax/internal/engine"
)

// pendingReply is a bot move waiting behind the reveal delay, tagged with the
// board it was planned against. A reset while it waits makes it stale.
type pendingReply struct {
	snapshot engine.Board
	cell     int
}

type session struct {
	output    *termenv.Output
	board     engine.Board
	humanMark engine.Mark
	botMark   engine.Mark
	delay     time.Duration
	waiting   bool

	replies chan pendingReply
}

func main() {
	delay := flag.Duration("delay", 800*time.Millisecond, "how long the opponent pretends to think")
	flag.Parse()

	s := &session{
		output:    termenv.NewOutput(os.Stdout),
		humanMark: engine.X,
		botMark:   engine.O,
		delay:     *delay,
		replies:   make(chan pendingReply, 1),
	}

	s.run()
}

func (that *session) run() {
	fmt.Println("You are X, the opponent is O. Cells are numbered 1-9.")
	fmt.Println("Commands: 1-9 to move, r to reset, q to quit.")

	lines := make(chan string)
	go readLines(lines)

	that.render()

	for {
		select {
		case reply := <-that.replies:
			that.applyReply(reply)
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !that.handleCommand(line) {
				return
			}
		}
	}
}

func readLines(lines chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		lines <- strings.TrimSpace(scanner.Text())
	}
	close(lines)
}

// handleCommand - processes one line of input. Returns false on quit.
func (that *session) handleCommand(line string) bool {
	switch line {
	case "q":
		return false
	case "r":
		that.reset()
		return true
	case "":
		return true
	}

	cell, err := strconv.Atoi(line)
	if err != nil {
		fmt.Println("enter a cell number 1-9, r, or q")
		return true
	}

	that.humanMove(cell - 1)

	return true
}

func (that *session) reset() {
	that.board = engine.Board{}
	that.waiting = false
	fmt.Println("new game")
	that.render()
}

func (that *session) humanMove(cell int) {
	if engine.Evaluate(that.board) != engine.InProgress {
		fmt.Println("the game is over, press r for a new one")
		return
	}

	if that.waiting {
		fmt.Println("it is the opponent's turn")
		return
	}

	board, err := engine.ApplyMove(that.board, cell, that.humanMark)
	if err != nil {
		// invalid input is a no-op, the board stays as it is
		fmt.Println(err)
		return
	}

	that.board = board
	that.render()

	if that.announceIfOver() {
		return
	}

	that.scheduleReply()
}

// scheduleReply - computes the opponent's answer right away and holds it back
// for the configured delay, tagged with the current board.
func (that *session) scheduleReply() {
	cell, err := engine.SelectMove(that.board, that.botMark)
	if err != nil {
		fmt.Println("opponent has no move:", err)
		return
	}

	reply := pendingReply{snapshot: that.board, cell: cell}
	that.waiting = true

	fmt.Println("opponent is thinking...")

	go func() {
		time.Sleep(that.delay)
		select {
		case that.replies <- reply:
		default:
		}
	}()
}

func (that *session) applyReply(reply pendingReply) {
	that.waiting = false

	// a reset changed the board while the reply waited
	if that.board != reply.snapshot {
		return
	}

	board, err := engine.ApplyMove(that.board, reply.cell, that.botMark)
	if err != nil {
		fmt.Println("opponent move failed:", err)
		return
	}

	that.board = board
	that.render()
	that.announceIfOver()
}

// announceIfOver - prints the result when the game has ended.
func (that *session) announceIfOver() bool {
	switch outcome := engine.Evaluate(that.board); outcome {
	case engine.Draw:
		fmt.Println("draw, press r for a new game")
		return true
	case engine.XWins, engine.OWins:
		if outcome.Winner() == that.humanMark {
			fmt.Println("you win, press r for a new game")
		} else {
			fmt.Println("opponent wins, press r for a new game")
		}
		return true
	default:
		return false
	}
}

func (that *session) render() {
	profile := that.output.ColorProfile()

	cellText := func(i int) string {
		switch that.board[i] {
		case engine.X:
			return that.output.String("X").Foreground(profile.Color("1")).Bold().String()
		case engine.O:
			return that.output.String("O").Foreground(profile.Color("4")).Bold().String()
		default:
			return that.output.String(strconv.Itoa(i + 1)).Faint().String()
		}
	}

	fmt.Println()
	for row := 0; row < 3; row++ {
		base := row * 3
		fmt.Printf(" %s | %s | %s\n", cellText(base), cellText(base+1), cellText(base+2))
		if row < 2 {
			fmt.Println("---+---+---")
		}
	}
	fmt.Println()
}
