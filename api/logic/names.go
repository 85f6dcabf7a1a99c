/* names.go
 * Contains the logic for matching free-text athlete names typed by users against the athletes in the store
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"
	"strings"

	"sports-results/api/shared"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchAthletes fuzzy matches query against the athlete names
// Preconditions: Receives the user's query, the known athletes and the maximum number of results (<= 0 for all)
// Postconditions: Returns matching athletes, an exact (case insensitive) name match first, then by match distance
func SearchAthletes(query string, athletes []shared.Athlete, limit int) []shared.Athlete {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	// Several athletes can share a name, so keep every index per lowercase name
	lookup := make(map[string][]int)
	var namesLower []string
	for i, a := range athletes {
		lower := strings.ToLower(a.Name)
		if _, ok := lookup[lower]; !ok {
			namesLower = append(namesLower, lower)
		}
		lookup[lower] = append(lookup[lower], i)
	}

	fuzzyResults := fuzzy.RankFind(query, namesLower)
	sort.SliceStable(fuzzyResults, func(i, j int) bool {
		iExact := fuzzyResults[i].Target == query
		jExact := fuzzyResults[j].Target == query
		if iExact != jExact {
			return iExact
		}
		return fuzzyResults[i].Distance < fuzzyResults[j].Distance
	})

	var found []shared.Athlete
	for _, r := range fuzzyResults {
		for _, i := range lookup[r.Target] {
			found = append(found, athletes[i])
			if limit > 0 && len(found) == limit {
				return found
			}
		}
	}
	return found
}
