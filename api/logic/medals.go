/* medals.go
 * Contains the medal derivation for one event group. The medal is decided from the tracked side's most advanced
 * played match, using the sport's bronze rule. Inferred bronze only applies when the group holds no bronze medal match
 * Authors: Zachary Bower
 */

package logic

import "sports-results/api/shared"

// DeriveMedal works out the medal and best round reached by the tracked side within one event group
// Preconditions: Receives every match of the event group (byes included), the sport rules and the side selector
// Postconditions: Returns the medal (MedalNone when none applies) and the display name of the most advanced round
// the tracked side appeared in, byes counted. The result only depends on the inputs
func DeriveMedal(matches []shared.RawMatch, rules SportRules, sel SideSelector) (shared.Medal, string) {
	if sel == nil {
		return shared.MedalNone, ""
	}

	var best, played *Round
	var playedOutcome shared.Outcome
	hasBronzeMatch := false
	for _, m := range SortByRound(matches, rules.Order, true) {
		round := rules.Order.Resolve(m)
		if round.Stage == StageBronze && !m.IsBye() {
			hasBronzeMatch = true
		}
		side := sel.Side(m)
		if side == NoSide {
			continue
		}
		if best == nil {
			best = &round
		}
		if m.IsBye() {
			continue
		}
		if played == nil {
			played = &round
			playedOutcome = m.Competitors[side].Outcome
		}
	}

	if best == nil {
		return shared.MedalNone, ""
	}
	if played == nil {
		return shared.MedalNone, best.Name
	}
	return medalFor(*played, playedOutcome, rules.Bronze, hasBronzeMatch), best.Name
}

func medalFor(round Round, outcome shared.Outcome, rule BronzeRule, hasBronzeMatch bool) shared.Medal {
	switch round.Stage {
	case StageFinal:
		switch outcome {
		case shared.OutcomeWon:
			return shared.MedalGold
		case shared.OutcomeLost:
			return shared.MedalSilver
		}
	case StageBronze:
		if outcome == shared.OutcomeWon {
			return shared.MedalBronze
		}
	case StageSemifinal:
		if outcome == shared.OutcomeLost && rule == BronzeInferred && !hasBronzeMatch {
			return shared.MedalBronze
		}
	}
	return shared.MedalNone
}
