/* shooting.go
 * Contains the adapter for ISSF style shooting result tables. Every <table> in the page is scanned and every row
 * with enough cells becomes a single-competitor RawMatch
 * Authors: Zachary Bower
 */

package external

import (
	"strings"

	"sports-results/api/shared"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixed column layout of the shooting result tables
const (
	shootingRankCol    = 0
	shootingNameCol    = 2
	shootingNOCCol     = 3
	shootingTotalCol   = 9
	shootingRemarkCol1 = 11
	shootingRemarkCol2 = 12
)

// ParseShootingResults extracts every ranking row from the result tables in html
// Preconditions: Receives a DocumentParser and string containing the result page html
// Postconditions: Returns one RawMatch per ranking row (input order), or an error only if the parser itself fails.
// Missing tables or short rows produce no matches
func ParseShootingResults(parser DocumentParser, html string) ([]shared.RawMatch, error) {
	root, err := parser.Parse(html)
	if err != nil {
		return nil, err
	}

	var matches []shared.RawMatch
	for _, table := range root.Find("table") {
		for _, row := range table.Find("tr") {
			cells := row.Find("td")
			if len(cells) <= shootingTotalCol {
				continue
			}
			text := func(i int) string {
				if i >= len(cells) {
					return ""
				}
				return cells[i].Text()
			}

			matches = append(matches, shared.RawMatch{
				Sport: shared.SportShooting,
				Phase: shared.NoPhase,
				Competitors: []shared.Competitor{{
					Identity: shared.NamedOnly{
						Name:    FormatShooterName(text(shootingNameCol)),
						Country: text(shootingNOCCol),
					},
					Score:   shared.Score{Total: text(shootingTotalCol)},
					Rank:    text(shootingRankCol),
					Remarks: joinRemarks(text(shootingRemarkCol1), text(shootingRemarkCol2)),
				}},
			})
		}
	}
	return matches, nil
}

// FormatShooterName reorders "LASTNAME Firstname" into "Firstname Lastname", title casing both parts
// Preconditions: Receives the name cell text
// Postconditions: Returns the reformatted name, or the input unchanged when it has no space
func FormatShooterName(name string) string {
	name = strings.TrimSpace(name)
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	caser := cases.Title(language.Und)
	first := caser.String(strings.Join(parts[1:], " "))
	last := caser.String(parts[0])
	return first + " " + last
}

// joinRemarks concatenates the two remark columns, skipping either if empty
func joinRemarks(a string, b string) string {
	var remarks []string
	for _, r := range []string{a, b} {
		if r != "" {
			remarks = append(remarks, r)
		}
	}
	return strings.Join(remarks, " ")
}
