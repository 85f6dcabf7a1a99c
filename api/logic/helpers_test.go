package logic

import "sports-results/api/shared"

func athlete(id, name, country string) shared.Competitor {
	return shared.Competitor{Identity: shared.Individual{Athlete: shared.Athlete{ID: id, Name: name, Country: country}}}
}

func withOutcome(c shared.Competitor, o shared.Outcome) shared.Competitor {
	c.Outcome = o
	return c
}

func bye() shared.Competitor {
	return shared.Competitor{Identity: shared.NamedOnly{}, Bye: true, Outcome: shared.OutcomeBye}
}

// tokenMatch builds a two sided match using a round label, the first competitor winning when won is set
func tokenMatch(id, comp, event, round string, won bool, a, b shared.Competitor) shared.RawMatch {
	if won {
		a, b = withOutcome(a, shared.OutcomeWon), withOutcome(b, shared.OutcomeLost)
	} else {
		a, b = withOutcome(a, shared.OutcomeLost), withOutcome(b, shared.OutcomeWon)
	}
	return shared.RawMatch{
		ID:            id,
		CompetitionID: comp,
		Competition:   comp + " Open",
		EventCode:     event,
		Event:         event + " Event",
		Round:         round,
		Phase:         shared.NoPhase,
		Competitors:   []shared.Competitor{a, b},
	}
}

func phaseMatch(id string, phase int, won bool, a, b shared.Competitor) shared.RawMatch {
	m := tokenMatch(id, "WC1", "RM", "", won, a, b)
	m.Phase = phase
	return m
}
