/* tabletennis_test.go
 * Contains unit tests for tabletennis.go
 * Authors: Zachary Bower
 */

package external

import (
	"errors"
	"os"
	"testing"

	"sports-results/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingParser struct{}

func (failingParser) Parse(string) (Node, error) {
	return nil, errors.New("parser unavailable")
}

func TestParseTableTennisCards_Fixture(t *testing.T) {
	html, err := os.ReadFile("testdata/tt_cards.html")
	require.NoError(t, err)

	matches, err := ParseTableTennisCards(GoqueryParser{}, string(html))
	require.NoError(t, err)
	// The walkover card only has one player block
	require.Len(t, matches, 3)

	first := matches[0]
	assert.Equal(t, shared.SportTableTennis, first.Sport)
	assert.Equal(t, "Round of 32", first.Round)
	assert.Equal(t, "3 - 1", first.ScoreLine)
	assert.Equal(t, "Sharath Kamal", first.Competitors[0].Name())
	assert.Equal(t, "IND", first.Competitors[0].Country())
	assert.Equal(t, "Timo Boll", first.Competitors[1].Name())
	assert.Equal(t, "GER", first.Competitors[1].Country())
	assert.Equal(t, shared.OutcomeWon, first.Competitors[0].Outcome)
	assert.Equal(t, shared.OutcomeLost, first.Competitors[1].Outcome)

	third := matches[2]
	assert.Equal(t, "Round of 16", third.Round)
	assert.Equal(t, "2", third.Competitors[1].Score.Total)
	assert.Equal(t, shared.OutcomeLost, third.Competitors[1].Outcome)
}

func TestParseTableTennisCards_UnparsableScore(t *testing.T) {
	html := `<div class="match-card"><div class="player"><span class="player-name">A</span></div>` +
		`<div class="match-score">w/o</div><div class="player"><span class="player-name">B</span></div></div>`

	matches, err := ParseTableTennisCards(GoqueryParser{}, html)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "w/o", matches[0].ScoreLine)
	assert.Equal(t, shared.OutcomeUnknown, matches[0].Competitors[0].Outcome)
	assert.Empty(t, matches[0].Competitors[0].Country())
	assert.Empty(t, matches[0].Round)
}

func TestParseTableTennisCards_NameTooltip(t *testing.T) {
	html := `<div class="match-card"><div class="match-round">Final</div>` +
		`<div class="player"><span class="player-name" title="Sharath Kamal">Sharath Kamal</span><img title="IND" src="ind.png"/></div>` +
		`<div class="match-score">3 - 2</div>` +
		`<div class="player"><span class="player-name" title="Ma Long">Ma Long</span><span class="flag" title="CHN"></span></div></div>`

	matches, err := ParseTableTennisCards(GoqueryParser{}, html)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "IND", matches[0].Competitors[0].Country())
	assert.Equal(t, "CHN", matches[0].Competitors[1].Country())
	assert.Equal(t, "Sharath Kamal", matches[0].Competitors[0].Name())
}

func TestParseTableTennisCards_ParserError(t *testing.T) {
	_, err := ParseTableTennisCards(failingParser{}, "<div></div>")
	assert.Error(t, err)

	_, err = ParseShootingResults(failingParser{}, "<div></div>")
	assert.Error(t, err)
}

func TestApplyCardScore(t *testing.T) {
	tests := []struct {
		score    string
		expected [2]shared.Outcome
	}{
		{"3 - 1", [2]shared.Outcome{shared.OutcomeWon, shared.OutcomeLost}},
		{"0:3", [2]shared.Outcome{shared.OutcomeLost, shared.OutcomeWon}},
		{"2-2", [2]shared.Outcome{shared.OutcomeUnknown, shared.OutcomeUnknown}},
		{"", [2]shared.Outcome{shared.OutcomeUnknown, shared.OutcomeUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			competitors := make([]shared.Competitor, 2)
			applyCardScore(competitors, tt.score)
			assert.Equal(t, tt.expected[0], competitors[0].Outcome)
			assert.Equal(t, tt.expected[1], competitors[1].Outcome)
		})
	}
}
