// Package termui renders query results for the terminal. Renderers are pure
// string producers; nothing here talks to the backend.
package termui

import (
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/soccerlens/scout/external/soccerlens"
	"github.com/soccerlens/scout/internal/domain/catalog"
	"github.com/soccerlens/scout/internal/domain/player"
	"github.com/soccerlens/scout/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

// PlayerList renders one page of listing results as aligned rows.
func PlayerList(snap usecase.Snapshot) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if snap.Status == usecase.StatusLoading && !snap.HasData() {
		return dimStyle.Render("Loading players...")
	}
	if !snap.HasData() {
		return dimStyle.Render("No players to show.")
	}

	fmt.Fprintln(buf, headerStyle.Render(fmt.Sprintf("%-4s %-26s %-8s %-20s %-16s %5s %5s",
		"#", "NAME", "POS", "SQUAD", "COMPETITION", "G", "A")))
	for i, p := range snap.Players {
		fmt.Fprintf(buf, "%-4d %-26s %-8s %-20s %-16s %5d %5d\n",
			i+1, clip(p.Name, 26), clip(p.Position, 8), clip(p.Squad, 20), clip(p.Competition, 16),
			p.Goals, p.Assists)
	}
	fmt.Fprintln(buf, dimStyle.Render(fmt.Sprintf("%d of %d players", len(snap.Players), snap.TotalCount)))

	return buf.String()
}

// PlayerCard renders a full statistics card for one player.
func PlayerCard(p player.Player) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintln(buf, titleStyle.Render(p.Name))
	fmt.Fprintf(buf, "%s %s  %s %s  %s %s  %s %.0f\n",
		dimStyle.Render("pos"), valueStyle.Render(p.Position),
		dimStyle.Render("squad"), valueStyle.Render(p.Squad),
		dimStyle.Render("nation"), valueStyle.Render(p.Nation),
		dimStyle.Render("age"), p.Age)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, headerStyle.Render("Playing time"))
	fmt.Fprintf(buf, "  matches %d  starts %d  minutes %d\n", p.MatchesPlayed, p.Starts, p.Minutes)

	fmt.Fprintln(buf, headerStyle.Render("Attack"))
	fmt.Fprintf(buf, "  goals %d  assists %d  xG %.2f  xA %.2f  shots %d (%d on target)\n",
		p.Goals, p.Assists, p.ExpectedGoals, p.ExpectedAssists, p.Shots, p.ShotsOnTarget)
	fmt.Fprintf(buf, "  per 90: goals %.2f  assists %.2f  contribution %.2f\n",
		p.GoalsPer90, p.AssistsPer90, p.GoalContributionPer90)

	fmt.Fprintln(buf, headerStyle.Render("Passing"))
	fmt.Fprintf(buf, "  completed %d/%d (%.1f%%)  key passes %d  progressive %d\n",
		p.PassesCompleted, p.PassesAttempted, p.PassCompletionPercentage, p.KeyPasses, p.ProgressivePasses)

	fmt.Fprintln(buf, headerStyle.Render("Defence"))
	fmt.Fprintf(buf, "  tackles %d (%d won)  interceptions %d  blocks %d  clearances %d\n",
		p.Tackles, p.TacklesWon, p.Interceptions, p.Blocks, p.Clearances)

	if p.IsGoalkeeper() {
		fmt.Fprintln(buf, headerStyle.Render("Goalkeeping"))
		fmt.Fprintf(buf, "  saves %s  save%% %s  clean sheets %s  goals against/90 %s\n",
			intOrDash(p.Saves), floatOrDash(p.SavePercentage),
			intOrDash(p.CleanSheets), floatOrDash(p.GoalsAgainstPer90))
	}

	fmt.Fprintf(buf, "%s %d yellow, %d red\n", dimStyle.Render("cards:"), p.YellowCards, p.RedCards)

	return cardStyle.Render(strings.TrimRight(buf.String(), "\n"))
}

// SimilarResult renders the reference player and their ranked neighbours.
func SimilarResult(result player.SimilarResult) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintln(buf, titleStyle.Render(fmt.Sprintf("Players similar to %s", result.Player.Name)))
	fmt.Fprintln(buf, dimStyle.Render(fmt.Sprintf("method=%s  shown=%d  matched=%d",
		result.Method, len(result.Similar), result.TotalFound)))
	for i, p := range result.Similar {
		score := "-"
		if p.SimilarityScore != nil {
			score = fmt.Sprintf("%.3f", *p.SimilarityScore)
		}
		fmt.Fprintf(buf, "%-4d %-26s %-8s %-20s %s\n",
			i+1, clip(p.Name, 26), clip(p.Position, 8), clip(p.Squad, 20), badgeStyle.Render(score))
	}

	return buf.String()
}

// Leaderboards renders one ranked block per statistic.
func Leaderboards(boards []player.Leaderboard) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i, board := range boards {
		if i > 0 {
			fmt.Fprintln(buf)
		}
		title := board.StatInfo.DisplayName
		if title == "" {
			title = board.Stat
		}
		fmt.Fprintln(buf, titleStyle.Render(title))
		if board.StatInfo.Description != "" {
			fmt.Fprintln(buf, dimStyle.Render(board.StatInfo.Description))
		}
		for j, p := range board.Players {
			fmt.Fprintf(buf, "%-4d %-26s %-20s\n", j+1, clip(p.Name, 26), clip(p.Squad, 20))
		}
	}

	return buf.String()
}

// Catalog renders the sort catalog grouped by category.
func Catalog(c catalog.Catalog) string {
	if c.Empty() {
		return dimStyle.Render("No sort options available.")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, category := range c.Categories {
		fmt.Fprintln(buf, headerStyle.Render(category))
		for _, option := range c.ByCategory(category) {
			fmt.Fprintf(buf, "  %-28s %s\n", badgeStyle.Render(option.Key), option.DisplayName)
		}
	}
	uncategorized := c.ByCategory("")
	for _, option := range uncategorized {
		fmt.Fprintf(buf, "  %-28s %s\n", badgeStyle.Render(option.Key), option.DisplayName)
	}

	return buf.String()
}

// Facets renders the filterable value lists.
func Facets(f usecase.Facets) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	sections := []struct {
		name   string
		values []string
	}{
		{"Positions", f.Positions},
		{"Competitions", f.Competitions},
		{"Teams", f.Teams},
		{"Nations", f.Nations},
	}
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(buf)
		}
		fmt.Fprintln(buf, headerStyle.Render(section.name))
		fmt.Fprintln(buf, strings.Join(section.values, ", "))
	}

	return buf.String()
}

// Alert maps a failure to its transient on-screen message.
func Alert(err error) string {
	if err == nil {
		return ""
	}
	message := soccerlens.UserMessage(err)
	if crerr.Is(err, usecase.ErrDependencyUnavailable) && !crerr.Is(err, soccerlens.ErrServer) &&
		!crerr.Is(err, soccerlens.ErrNetwork) {
		message = "Could not reach the SoccerLens service. Check your connection and try again."
	}
	return alertStyle.Render(message)
}

func clip(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
