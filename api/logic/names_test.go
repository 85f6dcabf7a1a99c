/* names_test.go
 * Contains unit tests for names.go
 * Authors: Zachary Bower
 */

package logic

import (
	"testing"

	"sports-results/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchAthletes(t *testing.T) {
	athletes := []shared.Athlete{
		{ID: "1", Name: "PV Sindhu", Country: "IND"},
		{ID: "2", Name: "Lakshya Sen", Country: "IND"},
		{ID: "3", Name: "Kidambi Srikanth", Country: "IND"},
		{ID: "4", Name: "Sen", Country: "XXX"},
	}

	tests := []struct {
		name     string
		query    string
		limit    int
		expected []string
	}{
		{"exact match first", "sen", 0, []string{"4", "2"}},
		{"case insensitive", "SINDHU", 0, []string{"1"}},
		{"limit", "sen", 1, []string{"4"}},
		{"no match", "zzz", 0, nil},
		{"blank query", "  ", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := SearchAthletes(tt.query, athletes, tt.limit)
			var ids []string
			for _, a := range found {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSearchAthletes_SharedNames(t *testing.T) {
	athletes := []shared.Athlete{
		{ID: "a", Name: "Wang Yi"},
		{ID: "b", Name: "wang yi"},
	}

	found := SearchAthletes("Wang Yi", athletes, 0)
	require.Len(t, found, 2)
	assert.Equal(t, "a", found[0].ID)
	assert.Equal(t, "b", found[1].ID)
}
