/* tabletennis.go
 * Contains the adapter for table tennis match cards scraped from the results pages
 * Authors: Zachary Bower
 */

package external

import (
	"regexp"
	"strconv"
	"strings"

	"sports-results/api/shared"
)

// Selectors for the match card markup. Changing the source markup should only require changes here
const (
	cardSelector      = ".match-card"
	cardRoundSelector = ".match-round"
	cardPlayer        = ".player"
	cardPlayerName    = ".player-name"
	cardFlag          = ".flag[title], img[title]"
	cardScore         = ".match-score"
)

var cardScoreRe = regexp.MustCompile(`^(\d+)\s*[-:]\s*(\d+)$`)

// ParseTableTennisCards extracts one RawMatch per match card
// Preconditions: Receives a DocumentParser and string containing the html with match cards
// Postconditions: Returns matches in page order, or an error only if the parser fails. Cards without two player
// blocks are skipped
func ParseTableTennisCards(parser DocumentParser, html string) ([]shared.RawMatch, error) {
	root, err := parser.Parse(html)
	if err != nil {
		return nil, err
	}

	var matches []shared.RawMatch
	for _, card := range root.Find(cardSelector) {
		players := card.Find(cardPlayer)
		if len(players) < 2 {
			continue
		}

		competitors := make([]shared.Competitor, 2)
		for i := range competitors {
			country := ""
			if flags := players[i].Find(cardFlag); len(flags) > 0 {
				country, _ = flags[0].Attr("title")
			}
			competitors[i] = shared.Competitor{
				Identity: shared.NamedOnly{
					Name:    firstText(players[i], cardPlayerName),
					Country: strings.ToUpper(country),
				},
			}
		}

		scoreLine := firstText(card, cardScore)
		applyCardScore(competitors, scoreLine)

		matches = append(matches, shared.RawMatch{
			Sport:       shared.SportTableTennis,
			Round:       firstText(card, cardRoundSelector),
			Phase:       shared.NoPhase,
			ScoreLine:   scoreLine,
			Competitors: competitors,
		})
	}
	return matches, nil
}

// applyCardScore splits an overall score such as "3 - 1" onto both competitors and derives the outcome.
// Scores that do not look like "a-b" are left on the match only
func applyCardScore(competitors []shared.Competitor, scoreLine string) {
	parts := cardScoreRe.FindStringSubmatch(strings.TrimSpace(scoreLine))
	if len(parts) != 3 {
		return
	}
	a, _ := strconv.Atoi(parts[1])
	b, _ := strconv.Atoi(parts[2])
	competitors[0].Score.Total = parts[1]
	competitors[1].Score.Total = parts[2]
	switch {
	case a > b:
		competitors[0].Outcome = shared.OutcomeWon
		competitors[1].Outcome = shared.OutcomeLost
	case b > a:
		competitors[0].Outcome = shared.OutcomeLost
		competitors[1].Outcome = shared.OutcomeWon
	}
}
