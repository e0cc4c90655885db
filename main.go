// Local hot-seat Parqués: two players sharing one terminal, running straight
// against the rules engine. Useful for trying out rule variants without a
// server.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"parques/internal/game"
)

func main() {
	rules := game.DefaultRules()
	g, err := game.New("local", 2, "p1", game.ColorRed, rules, game.NewDice(nil))
	if err != nil {
		fmt.Println("create game:", err)
		os.Exit(1)
	}
	if err := g.Join("p2", game.ColorBlue); err != nil {
		fmt.Println("join:", err)
		os.Exit(1)
	}
	if err := g.Start("p1"); err != nil {
		fmt.Println("start:", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		snap := g.Snapshot()
		if snap.State == game.StateFinished {
			fmt.Printf("\n%s wins!\n", *snap.Winner)
			return
		}
		color := *snap.CurrentTurnColor
		userID := userFor(color)
		fmt.Printf("\nTurn: %s (doubles streak %d)\n", color, snap.CurrentPlayerDoublesCount)
		printPositions(snap)

		fmt.Print("press enter to roll > ")
		_, _ = reader.ReadString('\n')

		report, err := g.Roll(userID)
		if err != nil {
			fmt.Println("roll:", err)
			continue
		}
		fmt.Printf("rolled %d and %d", report.Dice1, report.Dice2)
		if report.IsPairs {
			fmt.Print(" (pairs!)")
		}
		fmt.Println()

		if report.Result == game.RollThreePairsBurn {
			fmt.Println("three pairs in a row: a piece burns back to jail")
			if err := g.Burn(userID, ""); err != nil {
				fmt.Println("burn:", err)
			}
			continue
		}
		if len(report.PossibleMoves) == 0 {
			fmt.Println("no legal moves, passing")
			if err := g.Pass(userID); err != nil {
				fmt.Println("pass:", err)
			}
			continue
		}

		pieceIDs, options := flattenMoves(report.PossibleMoves)
		for i, opt := range options {
			fmt.Printf("  [%d] piece %s -> %s (%s, %d steps)\n",
				i+1, shortID(pieceIDs[i]), opt.Dest, opt.Kind, opt.Steps)
		}
		for {
			fmt.Print("choose move > ")
			line, _ := reader.ReadString('\n')
			n, convErr := strconv.Atoi(strings.TrimSpace(line))
			if convErr != nil || n < 1 || n > len(options) {
				fmt.Println("pick a number from the list")
				continue
			}
			opt := options[n-1]
			if _, err := g.Move(userID, pieceIDs[n-1], opt.Dest, opt.Steps); err != nil {
				fmt.Println("move:", err)
				continue
			}
			break
		}
	}
}

func userFor(c game.Color) string {
	if c == game.ColorRed {
		return "p1"
	}
	return "p2"
}

// flattenMoves turns the per-piece mapping into one indexed list, pieces in
// stable id order.
func flattenMoves(moves map[string][]game.Move) ([]string, []game.Move) {
	ids := make([]string, 0, len(moves))
	for id := range moves {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var pieceIDs []string
	var options []game.Move
	for _, id := range ids {
		for _, m := range moves[id] {
			pieceIDs = append(pieceIDs, id)
			options = append(options, m)
		}
	}
	return pieceIDs, options
}

func printPositions(snap game.Snapshot) {
	for _, pl := range snap.Players {
		var parts []string
		for _, p := range pl.Pieces {
			switch p.Status {
			case game.StatusInJail:
				parts = append(parts, "jail")
			case game.StatusAtGoal:
				parts = append(parts, "home")
			default:
				parts = append(parts, p.Square.String())
			}
		}
		fmt.Printf("  %-6s %s\n", pl.Color, strings.Join(parts, " "))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
