/* rules.go
 * Contains the per-sport configuration handed to the grouping engine: which round order to use and how bronze
 * medals are decided
 * Authors: Zachary Bower
 */

package logic

import (
	"strings"

	"sports-results/api/shared"
)

// BronzeRule decides how a bronze medal is recognised
type BronzeRule int

const (
	// BronzeInferred awards bronze for a semifinal loss when the tracked side has no bronze medal match
	BronzeInferred BronzeRule = iota
	// BronzeExplicit only awards bronze for winning the bronze medal match
	BronzeExplicit
)

func (b BronzeRule) String() string {
	if b == BronzeExplicit {
		return "explicit"
	}
	return "inferred"
}

// ParseBronzeRule converts "inferred" or "explicit"
func ParseBronzeRule(name string) (BronzeRule, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "inferred", "":
		return BronzeInferred, true
	case "explicit":
		return BronzeExplicit, true
	}
	return BronzeInferred, false
}

// SportRules is the configuration for one sport
type SportRules struct {
	Sport  shared.Sport
	Order  RoundOrder
	Bronze BronzeRule
}

// Rules holds the configuration for every sport
type Rules map[shared.Sport]SportRules

// DefaultRules returns the built in configuration. Archery resolves rounds from the numeric phase and requires an
// explicit bronze medal match, the other sports use the token table and infer bronze from a semifinal loss
func DefaultRules() Rules {
	tokens := NewTokenRoundOrder(DefaultRoundTable())
	return Rules{
		shared.SportArchery:     {Sport: shared.SportArchery, Order: PhaseRoundOrder{Fallback: tokens}, Bronze: BronzeExplicit},
		shared.SportBadminton:   {Sport: shared.SportBadminton, Order: tokens, Bronze: BronzeInferred},
		shared.SportTableTennis: {Sport: shared.SportTableTennis, Order: tokens, Bronze: BronzeInferred},
		shared.SportShooting:    {Sport: shared.SportShooting, Order: tokens, Bronze: BronzeInferred},
	}
}

// For returns the rules of a sport, falling back to the defaults when the sport is not configured
func (r Rules) For(sport shared.Sport) SportRules {
	if rules, ok := r[sport]; ok && rules.Order != nil {
		return rules
	}
	if rules, ok := DefaultRules()[sport]; ok {
		return rules
	}
	return SportRules{Sport: sport, Order: NewTokenRoundOrder(DefaultRoundTable()), Bronze: BronzeInferred}
}
