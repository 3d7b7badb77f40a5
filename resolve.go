package tableparser

// rule inspects the consistent candidates and either settles the delimiter or
// defers to the next rule.
type rule struct {
	name  string
	apply func(candidateSet) (Result, bool)
}

// precedence is evaluated in order; the first rule that matches wins.
var precedence = []rule{
	{"no_candidates", ruleNoCandidates},
	{"single_candidate", ruleSingleCandidate},
	{"tab", ruleTab},
	{"stray_punctuation", ruleStrayPunctuation},
	{"wrapper_character", ruleWrapperCharacter},
	{"quote_balancing", ruleQuoteBalancing},
	{"comma_over_period", ruleCommaOverPeriod},
	{"most_frequent", ruleMostFrequent},
}

// resolve runs the precedence rules over the filtered set and returns the
// result together with the name of the rule that decided it.
func resolve(set candidateSet) (Result, string) {
	for _, r := range precedence {
		if res, ok := r.apply(set); ok {
			return res, r.name
		}
	}
	// ruleMostFrequent always matches a non-empty set and ruleNoCandidates
	// covers the empty one.
	panic("tableparser: precedence rules did not settle")
}

// choose builds the result for delimiter c.
func choose(c Candidate, status Status) Result {
	return Result{
		Delimiter: string([]byte{c.Char}),
		Columns:   c.Count() + 1,
		Status:    status,
	}
}

func isQuote(ch byte) bool {
	return ch == '"' || ch == '\''
}

func ruleNoCandidates(set candidateSet) (Result, bool) {
	if len(set) != 0 {
		return Result{}, false
	}
	return Result{Columns: 1, Status: StatusNoDelimiter}, true
}

func ruleSingleCandidate(set candidateSet) (Result, bool) {
	if len(set) != 1 {
		return Result{}, false
	}
	return choose(set[0], StatusSingleDelimiter), true
}

// ruleTab prefers tab over anything else; it is the least ambiguous separator.
func ruleTab(set candidateSet) (Result, bool) {
	c, ok := set.find('\t')
	if !ok {
		return Result{}, false
	}
	return choose(c, StatusResolvedByPrecedence), true
}

// ruleStrayPunctuation handles two candidates where one occurs once per row
// and the other more than twice. The single one is more likely punctuation
// inside a field. A repeated quote is a field wrapper rather than a separator
// and is left to ruleQuoteBalancing.
func ruleStrayPunctuation(set candidateSet) (Result, bool) {
	if len(set) != 2 {
		return Result{}, false
	}
	for i, c := range set {
		other := set[1-i]
		if c.Count() == 1 && other.Count() > 2 && !isQuote(other.Char) {
			return choose(other, StatusResolvedByPrecedence), true
		}
	}
	return Result{}, false
}

// ruleWrapperCharacter handles two repeated candidates whose counts differ by
// exactly one. The rarer one is taken to wrap the row, so the more frequent
// one is the separator.
func ruleWrapperCharacter(set candidateSet) (Result, bool) {
	if len(set) != 2 {
		return Result{}, false
	}
	a, b := set[0], set[1]
	if a.Count() <= 1 || b.Count() <= 1 {
		return Result{}, false
	}
	switch {
	case a.Count() == b.Count()+1:
		return choose(a, StatusResolvedByPrecedence), true
	case b.Count() == a.Count()+1:
		return choose(b, StatusResolvedByPrecedence), true
	}
	return Result{}, false
}

// ruleQuoteBalancing recognises quote-wrapped fields: N quotes per row wrap
// N/2 fields, which are joined by N/2-1 separators.
func ruleQuoteBalancing(set candidateSet) (Result, bool) {
	top := set.max()
	for _, q := range []byte{'"', '\''} {
		if top.Char != q {
			continue
		}
		n := top.Count()
		if n <= 3 || n%2 != 0 {
			return Result{}, false
		}
		want := n/2 - 1
		for _, c := range set {
			if c.Count() == want {
				return choose(c, StatusResolvedByPrecedence), true
			}
		}
	}
	return Result{}, false
}

// ruleCommaOverPeriod resolves the decimal-point ambiguity in favour of comma.
func ruleCommaOverPeriod(set candidateSet) (Result, bool) {
	comma, ok := set.find(',')
	if !ok {
		return Result{}, false
	}
	if _, ok := set.find('.'); !ok {
		return Result{}, false
	}
	return choose(comma, StatusResolvedByPrecedence), true
}

// ruleMostFrequent picks the candidate with the highest per-row count, the
// lowest character code winning exact ties.
func ruleMostFrequent(set candidateSet) (Result, bool) {
	if len(set) == 0 {
		return Result{}, false
	}
	return choose(set.max(), StatusResolvedByPrecedence), true
}
