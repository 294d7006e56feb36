// Package display renders tiles, groups and round reports for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/okeysim/internal/simulator"
	"github.com/lox/okeysim/okey"
)

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	yellowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	blueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	blackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	redStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	fakeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	winnerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// Tile renders a single tile in its color.
func Tile(t okey.Tile) string {
	if t.IsFake() {
		return fakeStyle.Render(t.String())
	}
	color, err := t.Color()
	if err != nil {
		return t.String()
	}
	switch color {
	case okey.Yellow:
		return yellowStyle.Render(t.String())
	case okey.Blue:
		return blueStyle.Render(t.String())
	case okey.Black:
		return blackStyle.Render(t.String())
	case okey.Red:
		return redStyle.Render(t.String())
	}
	return t.String()
}

// Tiles renders a run of tiles space separated.
func Tiles(tiles okey.Hand) string {
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = Tile(t)
	}
	return strings.Join(parts, " ")
}

// Groups renders each group in brackets.
func Groups(groups []okey.Group) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = "[" + Tiles(g.Tiles) + "]"
	}
	return strings.Join(parts, " ")
}

// Round writes a report for a scored round. With showHands the dealt
// hands are listed above the result table.
func Round(w io.Writer, result *simulator.RoundResult, showHands bool) {
	fmt.Fprintf(w, "%s %s  %s %d\n",
		headerStyle.Render("round"), result.ID,
		headerStyle.Render("seed"), result.Seed)

	fakeNote := "wild"
	if !result.FakeWild {
		fakeNote = "pinned"
	}
	fmt.Fprintf(w, "%s %s  %s %s  %s %s\n\n",
		headerStyle.Render("indicator"), Tile(result.Indicator),
		headerStyle.Render("okey"), Tile(result.Okey),
		headerStyle.Render("fake"), fakeNote)

	if showHands {
		for _, sr := range result.Seats {
			fmt.Fprintf(w, "%s dealt %s\n", sr.Name, Tiles(sr.Hand.Sorted()))
		}
		fmt.Fprintln(w)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("seat"),
		headerStyle.Render("count"),
		headerStyle.Render("groups"),
		headerStyle.Render("ungrouped"))

	for seat := range result.Seats {
		sr := &result.Seats[seat]
		name := sr.Name
		if seat == result.Winner {
			name = winnerStyle.Render(name + " *")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			name,
			countStyle.Render(strconv.Itoa(sr.UngroupedCount())),
			orDot(Groups(sr.Groups)),
			orDot(Tiles(sr.Ungrouped)))
	}
	tw.Flush()

	winner := &result.Seats[result.Winner]
	fmt.Fprintf(w, "\n%s wins with %d ungrouped in %v\n",
		winner.Name, winner.UngroupedCount(), result.Elapsed.Truncate(time.Microsecond))
}

// Evaluation writes a report for a single evaluated hand.
func Evaluation(w io.Writer, okeyTile okey.Tile, result *okey.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", headerStyle.Render("okey"), Tile(okeyTile))
	fmt.Fprintf(tw, "%s\t%s\n", headerStyle.Render("groups"), orDot(Groups(result.Groups)))
	fmt.Fprintf(tw, "%s\t%s\n", headerStyle.Render("ungrouped"), orDot(Tiles(result.Ungrouped)))
	fmt.Fprintf(tw, "%s\t%s (%d runs, %d pairs)\n",
		headerStyle.Render("count"),
		countStyle.Render(strconv.Itoa(result.UngroupedCount())),
		result.Runs(), result.Pairs())
	tw.Flush()
}

func orDot(s string) string {
	if s == "" {
		return "."
	}
	return s
}
