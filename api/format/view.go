/* view.go
 * Contains the view models served to the result browsers, and the text report built from them
 * Authors: Zachary Bower
 */

package format

import (
	"fmt"
	"strings"

	"sports-results/api/logic"
	"sports-results/api/shared"
)

// MedalGlyphs maps a medal to the glyph shown next to an event
var MedalGlyphs = map[shared.Medal]string{
	shared.MedalGold:   "🥇",
	shared.MedalSilver: "🥈",
	shared.MedalBronze: "🥉",
}

type MatchView struct {
	ID              string `json:"id,omitempty"`
	Player          string `json:"player"`
	PlayerCountry   string `json:"playerCountry"`
	Opponent        string `json:"opponent,omitempty"`
	OpponentCountry string `json:"opponentCountry,omitempty"`
	Outcome         string `json:"outcome,omitempty"`
	Total           string `json:"total,omitempty"`
	SetScore        string `json:"setScore,omitempty"`
}

type RoundView struct {
	Name    string      `json:"name"`
	Matches []MatchView `json:"matches"`
}

type EventView struct {
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	IsTeam     bool        `json:"isTeam"`
	Medal      string      `json:"medal,omitempty"`
	MedalGlyph string      `json:"medalGlyph,omitempty"`
	BestRound  string      `json:"bestRound,omitempty"`
	Byes       int         `json:"byes"`
	Rounds     []RoundView `json:"rounds"`
}

type CompetitionView struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Date     string      `json:"date,omitempty"`
	Expanded bool        `json:"expanded"`
	Events   []EventView `json:"events"`
}

// ResultsView is the root of the view model tree. Message is set to NoResultsMessage when there are no competitions
type ResultsView struct {
	Title        string              `json:"title"`
	Stats        *logic.AthleteStats `json:"stats,omitempty"`
	Competitions []CompetitionView   `json:"competitions"`
	Message      string              `json:"message,omitempty"`
}

// BuildResultsView converts grouped results into the view model tree
// Preconditions: Receives a title, the output of GroupMatches, the selector used to group them (nil shows matches
// in source order) and whether athlete statistics should be attached
// Postconditions: Returns the view model. Matches are shown from the tracked side's point of view
func BuildResultsView(title string, groups []logic.CompetitionGroup, sel logic.SideSelector, withStats bool) ResultsView {
	view := ResultsView{Title: title, Competitions: []CompetitionView{}}
	if withStats {
		stats := logic.AggregateStats(groups)
		view.Stats = &stats
	}

	for _, g := range groups {
		comp := CompetitionView{ID: g.ID, Name: g.Name, Date: g.Date, Expanded: g.Expanded}
		for _, e := range g.Events {
			event := EventView{
				Code:       e.Code,
				Name:       e.Name,
				IsTeam:     e.IsTeam,
				Medal:      string(e.Medal),
				MedalGlyph: MedalGlyphs[e.Medal],
				BestRound:  e.BestRound,
				Byes:       e.Byes,
			}
			for _, b := range e.Buckets {
				round := RoundView{Name: b.Round.Name}
				for _, m := range b.Matches {
					round.Matches = append(round.Matches, buildMatchView(m, sel))
				}
				event.Rounds = append(event.Rounds, round)
			}
			comp.Events = append(comp.Events, event)
		}
		view.Competitions = append(view.Competitions, comp)
	}

	if len(view.Competitions) == 0 {
		view.Message = NoResultsMessage
	}
	return view
}

func buildMatchView(m shared.RawMatch, sel logic.SideSelector) MatchView {
	side := logic.NoSide
	if sel != nil {
		side = sel.Side(m)
	}
	if side == logic.NoSide {
		side = 0
	}

	view := MatchView{ID: m.ID}
	if side >= len(m.Competitors) {
		return view
	}
	own := m.Competitors[side]
	view.Player = own.Name()
	view.PlayerCountry = countryOf(own)
	view.Outcome = string(own.Outcome)
	view.Total = TotalScoreString(m, side)
	if len(m.Competitors) > 1 {
		other := m.Competitors[1-side]
		view.Opponent = other.Name()
		view.OpponentCountry = countryOf(other)
		view.SetScore = SetScoreString(m, side)
	}
	return view
}

// FormatResultsReport renders a view model as plain text
// Preconditions: Receives a ResultsView
// Postconditions: Returns a multi-line report, or NoResultsMessage under the title when there are no competitions
func FormatResultsReport(view ResultsView) string {
	var response strings.Builder
	if view.Title != "" {
		response.WriteString(view.Title + "\n")
	}
	if len(view.Competitions) == 0 {
		response.WriteString(NoResultsMessage)
		return response.String()
	}
	if s := view.Stats; s != nil {
		response.WriteString(fmt.Sprintf("%s %d %s %d %s %d | Matches: %d | Competitions: %d\n",
			MedalGlyphs[shared.MedalGold], s.Gold, MedalGlyphs[shared.MedalSilver], s.Silver,
			MedalGlyphs[shared.MedalBronze], s.Bronze, s.Matches, s.Competitions))
	}

	for _, comp := range view.Competitions {
		response.WriteString("\n== " + comp.Name)
		if comp.Date != "" {
			response.WriteString(" (" + comp.Date + ")")
		}
		response.WriteString(" ==\n")
		for _, event := range comp.Events {
			response.WriteString(event.Name)
			if event.MedalGlyph != "" {
				response.WriteString(" " + event.MedalGlyph)
			}
			if event.BestRound != "" {
				response.WriteString(" (best: " + event.BestRound + ")")
			}
			response.WriteString("\n")
			for _, round := range event.Rounds {
				for _, m := range round.Matches {
					response.WriteString(fmt.Sprintf("  [%s] %s\n", round.Name, matchLine(m)))
				}
			}
		}
	}
	return strings.TrimRight(response.String(), "\n")
}

func matchLine(m MatchView) string {
	line := fmt.Sprintf("%s (%s)", m.Player, m.PlayerCountry)
	if m.Opponent != "" {
		line += fmt.Sprintf(" %s %s (%s)", verb(shared.Outcome(m.Outcome)), m.Opponent, m.OpponentCountry)
	}
	if m.Total != "" {
		line += " " + m.Total
	}
	if m.SetScore != "" {
		line += " (" + m.SetScore + ")"
	}
	return line
}
