/* grouping_test.go
 * Contains unit tests for grouping.go, medals.go and stats.go
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"

	"sports-results/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sindhu   = athlete("P1", "PV Sindhu", "IND")
	yamaguch = athlete("J1", "Akane Yamaguchi", "JPN")
	marin    = athlete("S1", "Carolina Marin", "ESP")
	tai      = athlete("T1", "Tai Tzu Ying", "TPE")
	saina    = athlete("P2", "Saina Nehwal", "IND")
	dhiraj   = athlete("A1", "Dhiraj Bommadevara", "IND")
	gazoz    = athlete("B1", "Mete Gazoz", "TUR")
)

// region medals

func TestDeriveMedal_Archery(t *testing.T) {
	rules := DefaultRules().For(shared.SportArchery)
	sel := AthleteSelector{IDs: []string{"A1"}}

	tests := []struct {
		name     string
		matches  []shared.RawMatch
		expected shared.Medal
		best     string
	}{
		{"gold medal match won", []shared.RawMatch{phaseMatch("1", 2, true, dhiraj, gazoz), phaseMatch("2", 0, true, dhiraj, gazoz)}, shared.MedalGold, "Gold Medal Match"},
		{"gold medal match lost", []shared.RawMatch{phaseMatch("1", 0, true, gazoz, dhiraj)}, shared.MedalSilver, "Gold Medal Match"},
		{"bronze medal match won", []shared.RawMatch{phaseMatch("1", 2, false, dhiraj, gazoz), phaseMatch("2", 1, true, dhiraj, gazoz)}, shared.MedalBronze, "Bronze Medal Match"},
		{"bronze medal match lost", []shared.RawMatch{phaseMatch("1", 1, false, dhiraj, gazoz)}, shared.MedalNone, "Bronze Medal Match"},
		{"semifinal loss is not bronze", []shared.RawMatch{phaseMatch("1", 2, false, dhiraj, gazoz)}, shared.MedalNone, "Semifinals"},
		{"early exit", []shared.RawMatch{phaseMatch("1", 8, false, dhiraj, gazoz)}, shared.MedalNone, "Round of 16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medal, best := DeriveMedal(tt.matches, rules, sel)
			assert.Equal(t, tt.expected, medal)
			assert.Equal(t, tt.best, best)
		})
	}
}

func TestDeriveMedal_InferredBronze(t *testing.T) {
	rules := DefaultRules().For(shared.SportBadminton)
	sel := AthleteSelector{IDs: []string{"P1"}}

	semiLoss := []shared.RawMatch{
		tokenMatch("1", "IO", "WS", "QF", true, sindhu, marin),
		tokenMatch("2", "IO", "WS", "SF", false, sindhu, tai),
	}
	medal, best := DeriveMedal(semiLoss, rules, sel)
	assert.Equal(t, shared.MedalBronze, medal)
	assert.Equal(t, "Semifinal", best)

	// With a bronze match present its result decides
	lostBronze := append(semiLoss, tokenMatch("3", "IO", "WS", "Bronze", false, sindhu, yamaguch))
	medal, _ = DeriveMedal(lostBronze, rules, sel)
	assert.Equal(t, shared.MedalNone, medal)

	wonBronze := append(semiLoss, tokenMatch("3", "IO", "WS", "3rd Place", true, sindhu, yamaguch))
	medal, _ = DeriveMedal(wonBronze, rules, sel)
	assert.Equal(t, shared.MedalBronze, medal)

	// Explicit rule on the same data never infers
	explicit := rules
	explicit.Bronze = BronzeExplicit
	medal, _ = DeriveMedal(semiLoss, explicit, sel)
	assert.Equal(t, shared.MedalNone, medal)

	final := append(semiLoss[:1:1], tokenMatch("2", "IO", "WS", "SF", true, sindhu, tai), tokenMatch("3", "IO", "WS", "Final", false, sindhu, yamaguch))
	medal, best = DeriveMedal(final, rules, sel)
	assert.Equal(t, shared.MedalSilver, medal)
	assert.Equal(t, "Final", best)
}

func TestDeriveMedal_BronzeMatchElsewhereInGroup(t *testing.T) {
	rules := DefaultRules().For(shared.SportBadminton)
	sel := AthleteSelector{IDs: []string{"P1"}}

	// The bronze match was played by others, so a semifinal loss is not inferred as bronze
	matches := []shared.RawMatch{
		tokenMatch("1", "IO", "WS", "SF", false, sindhu, tai),
		tokenMatch("2", "IO", "WS", "Bronze", true, marin, yamaguch),
	}
	medal, best := DeriveMedal(matches, rules, sel)
	assert.Equal(t, shared.MedalNone, medal)
	assert.Equal(t, "Semifinal", best)
}

func TestDeriveMedal_SameCountryFinal(t *testing.T) {
	rules := DefaultRules().For(shared.SportBadminton)
	final := tokenMatch("1", "IO", "WS", "Final", false, sindhu, saina)

	groups := GroupMatches([]shared.RawMatch{final}, rules, CountrySelector{Code: "IND"})
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Events, 1)
	assert.Equal(t, shared.MedalGold, groups[0].Events[0].Medal)

	// Tracking the losing athlete still gives silver
	medal, _ := DeriveMedal([]shared.RawMatch{final}, rules, AthleteSelector{IDs: []string{"P1"}})
	assert.Equal(t, shared.MedalSilver, medal)
}

func TestDeriveMedal_Idempotent(t *testing.T) {
	rules := DefaultRules().For(shared.SportTableTennis)
	sel := CountrySelector{Code: "IND"}
	matches := []shared.RawMatch{
		tokenMatch("1", "WTT", "MS", "R16", true, sindhu, marin),
		tokenMatch("2", "WTT", "MS", "Final", true, sindhu, tai),
	}

	first, firstBest := DeriveMedal(matches, rules, sel)
	second, secondBest := DeriveMedal(matches, rules, sel)
	assert.Equal(t, first, second)
	assert.Equal(t, firstBest, secondBest)
	assert.Equal(t, shared.MedalGold, first)
}

func TestDeriveMedal_NoTrackedSide(t *testing.T) {
	rules := DefaultRules().For(shared.SportBadminton)
	matches := []shared.RawMatch{tokenMatch("1", "IO", "WS", "Final", true, marin, tai)}

	medal, best := DeriveMedal(matches, rules, AthleteSelector{IDs: []string{"P1"}})
	assert.Equal(t, shared.MedalNone, medal)
	assert.Empty(t, best)

	medal, best = DeriveMedal(matches, rules, nil)
	assert.Equal(t, shared.MedalNone, medal)
	assert.Empty(t, best)
}

func TestDeriveMedal_ByeCountsForBestRoundOnly(t *testing.T) {
	rules := DefaultRules().For(shared.SportArchery)
	sel := AthleteSelector{IDs: []string{"A1"}}
	matches := []shared.RawMatch{
		phaseMatch("1", 16, true, dhiraj, gazoz),
		{ID: "2", CompetitionID: "WC1", EventCode: "RM", Phase: 8, Competitors: []shared.Competitor{dhiraj, bye()}},
	}

	medal, best := DeriveMedal(matches, rules, sel)
	assert.Equal(t, shared.MedalNone, medal)
	assert.Equal(t, "Round of 16", best)
}

// endregion

// region grouping

func TestGroupMatches_Structure(t *testing.T) {
	rules := DefaultRules().For(shared.SportBadminton)
	sel := AthleteSelector{IDs: []string{"P1"}}
	matches := []shared.RawMatch{
		tokenMatch("1", "IO", "WS", "SF", false, sindhu, tai),
		tokenMatch("2", "MO", "WS", "R32", false, sindhu, marin),
		tokenMatch("3", "IO", "WS", "QF", true, sindhu, marin),
		tokenMatch("4", "IO", "XD", "R16", true, sindhu, yamaguch),
		tokenMatch("5", "IO", "WS", "R16", true, sindhu, yamaguch),
	}

	groups := GroupMatches(matches, rules, sel)
	require.Len(t, groups, 2)

	india := groups[0]
	assert.Equal(t, "IO", india.ID)
	assert.Equal(t, "IO Open", india.Name)
	assert.True(t, india.Expanded)
	require.Len(t, india.Events, 2)

	ws := india.Events[0]
	assert.Equal(t, "WS", ws.Code)
	assert.Equal(t, "WS Event", ws.Name)
	assert.Equal(t, shared.MedalBronze, ws.Medal)
	assert.Equal(t, "Semifinal", ws.BestRound)
	assert.Equal(t, 3, ws.Matches)
	assert.Equal(t, 3, ws.RoundsReached)
	require.Len(t, ws.Buckets, 3)
	assert.Equal(t, "Round of 16", ws.Buckets[0].Round.Name)
	assert.Equal(t, "Quarterfinal", ws.Buckets[1].Round.Name)
	assert.Equal(t, "Semifinal", ws.Buckets[2].Round.Name)
	for _, b := range ws.Buckets {
		assert.Equal(t, "IO", b.CompetitionID)
		assert.Equal(t, "WS", b.EventCode)
		assert.Equal(t, shared.MedalBronze, b.Medal)
		assert.Equal(t, "Semifinal", b.BestRound)
	}

	assert.Equal(t, "XD", india.Events[1].Code)
	assert.Equal(t, shared.MedalNone, india.Events[1].Medal)

	masters := groups[1]
	assert.False(t, masters.Expanded)
}

func TestGroupMatches_ByesAndEmptyEvents(t *testing.T) {
	rules := DefaultRules().For(shared.SportArchery)
	sel := AthleteSelector{IDs: []string{"A1"}}

	byeOnly := shared.RawMatch{ID: "b1", CompetitionID: "WC1", EventCode: "RX", Phase: 16, Competitors: []shared.Competitor{dhiraj, bye()}}
	byeRM := shared.RawMatch{ID: "b2", CompetitionID: "WC1", EventCode: "RM", Phase: 16, Competitors: []shared.Competitor{bye(), dhiraj}}
	matches := []shared.RawMatch{
		byeOnly,
		byeRM,
		phaseMatch("m1", 8, true, dhiraj, gazoz),
		phaseMatch("m2", 4, false, dhiraj, gazoz),
	}

	groups := GroupMatches(matches, rules, sel)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Events, 1, "event with only byes is dropped")

	rm := groups[0].Events[0]
	assert.Equal(t, 1, rm.Byes)
	assert.Equal(t, 2, rm.Matches)
	// The bye round still counts as reached
	assert.Equal(t, 3, rm.RoundsReached)
	require.Len(t, rm.Buckets, 2)
	assert.Equal(t, "Round of 16", rm.Buckets[0].Round.Name)
	assert.Equal(t, "Quarterfinals", rm.Buckets[1].Round.Name)

	flat := Flatten(groups)
	assert.ElementsMatch(t, []shared.RawMatch{matches[2], matches[3]}, flat)
}

func TestGroupMatches_FlattenRoundTrip(t *testing.T) {
	rules := DefaultRules().For(shared.SportTableTennis)
	matches := []shared.RawMatch{
		tokenMatch("1", "A", "MS", "Final", true, sindhu, tai),
		tokenMatch("2", "B", "WS", "Mystery Round", true, sindhu, marin),
		tokenMatch("3", "A", "MS", "R16", true, sindhu, marin),
		tokenMatch("4", "A", "MD", "", false, sindhu, yamaguch),
		tokenMatch("5", "B", "WS", "SF", true, sindhu, tai),
	}

	groups := GroupMatches(matches, rules, nil)
	assert.ElementsMatch(t, matches, Flatten(groups))

	// Unknown rounds come first in display order
	require.Len(t, groups, 2)
	assert.Equal(t, "Mystery Round", groups[1].Events[0].Buckets[0].Round.Name)
	assert.Equal(t, OtherRoundName, groups[0].Events[1].Buckets[0].Round.Name)
}

func TestGroupMatches_Empty(t *testing.T) {
	assert.Empty(t, GroupMatches(nil, DefaultRules().For(shared.SportArchery), nil))
	assert.Empty(t, Flatten(nil))
}

// endregion

// region stats

func TestAggregateStats(t *testing.T) {
	rules := DefaultRules().For(shared.SportBadminton)
	sel := AthleteSelector{IDs: []string{"P1"}}
	matches := []shared.RawMatch{
		tokenMatch("1", "IO", "WS", "SF", true, sindhu, tai),
		tokenMatch("2", "IO", "WS", "Final", true, sindhu, marin),
		tokenMatch("3", "IO", "XD", "Final", false, sindhu, yamaguch),
		tokenMatch("4", "MO", "WS", "SF", false, sindhu, tai),
		tokenMatch("5", "SO", "WS", "R32", false, sindhu, tai),
		{ID: "6", CompetitionID: "SO", EventCode: "WS", Round: "R64", Phase: shared.NoPhase, Competitors: []shared.Competitor{sindhu, bye()}},
	}

	stats := AggregateStats(GroupMatches(matches, rules, sel))
	assert.Equal(t, 1, stats.Gold)
	assert.Equal(t, 1, stats.Silver)
	assert.Equal(t, 1, stats.Bronze)
	assert.Equal(t, 3, stats.Medals())
	assert.Equal(t, 5, stats.Matches)
	assert.Equal(t, 3, stats.Competitions)
	assert.Equal(t, 4, stats.Events)
	assert.Equal(t, 1, stats.Byes)

	assert.Equal(t, AthleteStats{}, AggregateStats(nil))
}

// endregion

// region filter

func TestInvolvesCountry(t *testing.T) {
	team := shared.Competitor{Identity: shared.Team{Name: "Mixed", Members: []shared.Athlete{{Name: "A", Country: "SGP"}, {Name: "B", Country: "IND"}}}}
	named := shared.Competitor{Identity: shared.NamedOnly{Name: "X", Country: "ind"}}

	assert.True(t, InvolvesCountry(shared.RawMatch{Competitors: []shared.Competitor{marin, sindhu}}, "IND"))
	assert.True(t, InvolvesCountry(shared.RawMatch{Competitors: []shared.Competitor{team}}, "IND"))
	assert.True(t, InvolvesCountry(shared.RawMatch{Competitors: []shared.Competitor{named}}, "IND"))
	assert.False(t, InvolvesCountry(shared.RawMatch{Competitors: []shared.Competitor{marin, tai}}, "IND"))
	assert.False(t, InvolvesCountry(shared.RawMatch{Competitors: []shared.Competitor{{}}}, "IND"))
	assert.False(t, InvolvesCountry(shared.RawMatch{Competitors: []shared.Competitor{sindhu}}, ""))
}

func TestFilterByCountry(t *testing.T) {
	matches := []shared.RawMatch{
		{ID: "1", Competitors: []shared.Competitor{marin, sindhu}},
		{ID: "2", Competitors: []shared.Competitor{marin, tai}},
		{ID: "3", Competitors: []shared.Competitor{dhiraj}},
	}

	filtered := FilterByCountry(matches, "IND")
	require.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)

	none := FilterByCountry(matches, "USA")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSelectors(t *testing.T) {
	m := shared.RawMatch{Competitors: []shared.Competitor{marin, sindhu}}
	assert.Equal(t, 1, AthleteSelector{IDs: []string{"P1"}}.Side(m))
	assert.Equal(t, 0, AthleteSelector{IDs: []string{"S1", "P1"}}.Side(m))
	assert.Equal(t, NoSide, AthleteSelector{}.Side(m))
	assert.Equal(t, 1, CountrySelector{Code: "ind"}.Side(m))
	assert.Equal(t, NoSide, CountrySelector{Code: "USA"}.Side(m))

	both := tokenMatch("1", "IO", "WS", "Final", false, sindhu, saina)
	assert.Equal(t, 1, CountrySelector{Code: "IND"}.Side(both))
	undecided := shared.RawMatch{Competitors: []shared.Competitor{sindhu, saina}}
	assert.Equal(t, 0, CountrySelector{Code: "IND"}.Side(undecided))
}

// endregion
