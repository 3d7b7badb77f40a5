package tableparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setOf builds a filtered candidate set from char/count pairs given in code
// order.
func setOf(pairs ...any) candidateSet {
	var set candidateSet
	for i := 0; i < len(pairs); i += 2 {
		set = append(set, Candidate{Char: pairs[i].(byte), Counts: []int{pairs[i+1].(int)}})
	}
	return set
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		set       candidateSet
		delimiter string
		columns   int
		status    Status
		rule      string
	}{
		{
			name:    "empty",
			set:     nil,
			columns: 1,
			status:  StatusNoDelimiter,
			rule:    "no_candidates",
		},
		{
			name:      "single",
			set:       setOf(byte('|'), 4),
			delimiter: "|",
			columns:   5,
			status:    StatusSingleDelimiter,
			rule:      "single_candidate",
		},
		{
			name:      "tabBeatsMoreFrequentComma",
			set:       setOf(byte('\t'), 1, byte(','), 9),
			delimiter: "\t",
			columns:   2,
			status:    StatusResolvedByPrecedence,
			rule:      "tab",
		},
		{
			name:      "strayPunctuation",
			set:       setOf(byte(':'), 1, byte(';'), 3),
			delimiter: ";",
			columns:   4,
			status:    StatusResolvedByPrecedence,
			rule:      "stray_punctuation",
		},
		{
			name:      "strayPunctuationSingleFirst",
			set:       setOf(byte('-'), 5, byte('/'), 1),
			delimiter: "-",
			columns:   6,
			status:    StatusResolvedByPrecedence,
			rule:      "stray_punctuation",
		},
		{
			name:      "repeatedQuoteIsNotStrayPunctuationWinner",
			set:       setOf(byte('"'), 4, byte(','), 1),
			delimiter: ",",
			columns:   2,
			status:    StatusResolvedByPrecedence,
			rule:      "quote_balancing",
		},
		{
			name:      "wrapperCharacter",
			set:       setOf(byte('|'), 4, byte('~'), 3),
			delimiter: "|",
			columns:   5,
			status:    StatusResolvedByPrecedence,
			rule:      "wrapper_character",
		},
		{
			name:      "wrapperCharacterSecondLarger",
			set:       setOf(byte('#'), 2, byte('|'), 3),
			delimiter: "|",
			columns:   4,
			status:    StatusResolvedByPrecedence,
			rule:      "wrapper_character",
		},
		{
			name:      "singleQuoteBalancing",
			set:       setOf(byte('\''), 6, byte(','), 2, byte('.'), 1, byte(';'), 3),
			delimiter: ",",
			columns:   3,
			status:    StatusResolvedByPrecedence,
			rule:      "quote_balancing",
		},
		{
			name:      "oddQuoteCountFallsThrough",
			set:       setOf(byte('"'), 5, byte(','), 2, byte('.'), 1),
			delimiter: ",",
			columns:   3,
			status:    StatusResolvedByPrecedence,
			rule:      "comma_over_period",
		},
		{
			name:      "commaOverPeriod",
			set:       setOf(byte(','), 2, byte('.'), 2, byte(':'), 2),
			delimiter: ",",
			columns:   3,
			status:    StatusResolvedByPrecedence,
			rule:      "comma_over_period",
		},
		{
			name:      "mostFrequent",
			set:       setOf(byte('-'), 2, byte('/'), 2, byte(';'), 7),
			delimiter: ";",
			columns:   8,
			status:    StatusResolvedByPrecedence,
			rule:      "most_frequent",
		},
		{
			name:      "mostFrequentTieGoesToLowestCode",
			set:       setOf(byte('-'), 3, byte('/'), 3, byte('|'), 3),
			delimiter: "-",
			columns:   4,
			status:    StatusResolvedByPrecedence,
			rule:      "most_frequent",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res, rule := resolve(tc.set)
			assert.Equal(t, tc.rule, rule)
			assert.Equal(t, tc.delimiter, res.Delimiter)
			assert.Equal(t, tc.columns, res.Columns)
			assert.Equal(t, tc.status, res.Status)
		})
	}
}

func TestPrecedenceOrder(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(precedence))
	for _, r := range precedence {
		names = append(names, r.name)
	}
	require.Equal(t, []string{
		"no_candidates",
		"single_candidate",
		"tab",
		"stray_punctuation",
		"wrapper_character",
		"quote_balancing",
		"comma_over_period",
		"most_frequent",
	}, names)
}
