/* format.go
 * Contains the flat text formatters used by the copy-to-clipboard extractors. Every formatter returns
 * NoResultsMessage rather than an empty string when there is nothing to show
 * Authors: Zachary Bower
 */

package format

import (
	"fmt"
	"strconv"
	"strings"

	"sports-results/api/logic"
	"sports-results/api/shared"
)

// User facing messages
const (
	NoResultsMessage   = "No results found"
	InvalidJSONMessage = "Invalid JSON format"
	InvalidHTMLMessage = "Invalid HTML content"
)

// UnknownRound labels table tennis cards with no round text
const UnknownRound = "Unknown Round"

// FormatShootingResults renders one block per ranking row
// Preconditions: Receives the (filtered) shooting matches
// Postconditions: Returns "{rank}. {name}\nTotal: {score}" blocks, with " - {remarks}" when the row has remarks,
// separated by a blank line. Returns NoResultsMessage when there are no rows
func FormatShootingResults(matches []shared.RawMatch) string {
	var blocks []string
	for _, m := range matches {
		if len(m.Competitors) == 0 {
			continue
		}
		c := m.Competitors[0]
		block := fmt.Sprintf("%s. %s\nTotal: %s", c.Rank, c.Name(), c.Score.Total)
		if c.Remarks != "" {
			block += " - " + c.Remarks
		}
		blocks = append(blocks, block)
	}
	if len(blocks) == 0 {
		return NoResultsMessage
	}
	return strings.Join(blocks, "\n\n")
}

// FormatTableTennisCards renders the cards as lines grouped under their round label
// Preconditions: Receives the (filtered) table tennis matches in page order
// Postconditions: Returns "=== {round} ===" sections, rounds in first-seen order, each followed by one
// "Name1 (CC1) score Name2 (CC2)" line per match. Returns NoResultsMessage when there are no cards
func FormatTableTennisCards(matches []shared.RawMatch) string {
	var rounds []string
	lines := make(map[string][]string)
	for _, m := range matches {
		if len(m.Competitors) < 2 {
			continue
		}
		round := strings.TrimSpace(m.Round)
		if round == "" {
			round = UnknownRound
		}
		if _, ok := lines[round]; !ok {
			rounds = append(rounds, round)
		}

		a, b := m.Competitors[0], m.Competitors[1]
		score := m.ScoreLine
		if score == "" && (a.Score.Total != "" || b.Score.Total != "") {
			score = a.Score.Total + " - " + b.Score.Total
		}
		lines[round] = append(lines[round], fmt.Sprintf("%s (%s) %s %s (%s)", a.Name(), countryOf(a), score, b.Name(), countryOf(b)))
	}
	if len(rounds) == 0 {
		return NoResultsMessage
	}

	sections := make([]string, 0, len(rounds))
	for _, round := range rounds {
		sections = append(sections, fmt.Sprintf("=== %s ===\n%s", round, strings.Join(lines[round], "\n")))
	}
	return strings.Join(sections, "\n\n")
}

// FormatBadmintonResults renders one line per match from the target country's point of view
// Preconditions: Receives the (filtered) badminton matches and the target country code
// Postconditions: Returns lines such as "A / B (IND) defeated C / D (MAS) (Score: 21-15, 21-18)". When the target
// side is team2 the sides and every game score are swapped so the target always reads first. Returns
// NoResultsMessage when there are no matches
func FormatBadmintonResults(matches []shared.RawMatch, country string) string {
	sel := logic.CountrySelector{Code: country}
	var lines []string
	for _, m := range matches {
		if len(m.Competitors) < 2 {
			continue
		}
		side := sel.Side(m)
		if side == logic.NoSide {
			side = 0
		}
		own, other := m.Competitors[side], m.Competitors[1-side]

		line := fmt.Sprintf("%s (%s) %s %s (%s)", own.Name(), countryOf(own), verb(own.Outcome), other.Name(), countryOf(other))
		if sets := SetScoreString(m, side); sets != "" {
			line += " (Score: " + sets + ")"
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return NoResultsMessage
	}
	return strings.Join(lines, "\n")
}

// SetScoreString renders the per-set scores of a two sided match from the point of view of side
// Preconditions: Receives the match and the index of the tracked competitor
// Postconditions: Returns "a-b, c-d" with the tracked competitor's score first, or "" if there are no sets. A set only
// one side has a score for shows "?" for the other side
func SetScoreString(m shared.RawMatch, side int) string {
	if len(m.Competitors) < 2 || side < 0 || side > 1 {
		return ""
	}
	own, other := m.Competitors[side].Score.Sets, m.Competitors[1-side].Score.Sets
	n := max(len(own), len(other))
	games := make([]string, 0, n)
	for i := 0; i < n; i++ {
		games = append(games, setValue(own, i)+"-"+setValue(other, i))
	}
	return strings.Join(games, ", ")
}

// TotalScoreString renders the overall score from the point of view of side, "" when neither total is known
func TotalScoreString(m shared.RawMatch, side int) string {
	if side < 0 || side >= len(m.Competitors) {
		return ""
	}
	own := m.Competitors[side].Score.Total
	if len(m.Competitors) < 2 {
		return own
	}
	other := m.Competitors[1-side].Score.Total
	if own == "" && other == "" {
		return ""
	}
	return valueOr(own, missingScore) + "-" + valueOr(other, missingScore)
}

// missingScore stands in for a score one side lacks
const missingScore = "?"

func setValue(sets []int, i int) string {
	if i >= len(sets) {
		return missingScore
	}
	return strconv.Itoa(sets[i])
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// countryOf joins every country code of a competitor with "/", "Unknown" when there are none
func countryOf(c shared.Competitor) string {
	if c.Identity == nil {
		return "Unknown"
	}
	codes := c.Identity.Countries()
	if len(codes) == 0 {
		return "Unknown"
	}
	return strings.Join(codes, "/")
}

func verb(o shared.Outcome) string {
	switch o {
	case shared.OutcomeWon:
		return "defeated"
	case shared.OutcomeLost:
		return "lost to"
	}
	return "vs"
}
