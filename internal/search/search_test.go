package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterTitles(t *testing.T) {
	titles := []string{
		"The Iron Crown",
		"Ashfall",
		"Crown of Embers",
		"A Winter's Oath",
	}

	t.Run("empty_query_matches_nothing", func(t *testing.T) {
		assert.Empty(t, FilterTitles("", titles))
	})

	t.Run("exact_word", func(t *testing.T) {
		matches := FilterTitles("crown", titles)
		require.Len(t, matches, 2)
		got := []string{titles[matches[0].Index], titles[matches[1].Index]}
		assert.Contains(t, got, "The Iron Crown")
		assert.Contains(t, got, "Crown of Embers")
	})

	t.Run("case_insensitive", func(t *testing.T) {
		matches := FilterTitles("ASHFALL", titles)
		require.Len(t, matches, 1)
		assert.Equal(t, "Ashfall", titles[matches[0].Index])
	})

	t.Run("no_match", func(t *testing.T) {
		assert.Empty(t, FilterTitles("zzzz", titles))
	})

	t.Run("best_match_first", func(t *testing.T) {
		matches := FilterTitles("ashfall", []string{"A Shadow Falls Here", "Ashfall"})
		require.NotEmpty(t, matches)
		assert.Equal(t, 1, matches[0].Index, "closer match ranks first")
	})
}
