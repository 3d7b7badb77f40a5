package tableparser

import "sort"

// Candidate is a character that may be the table's field delimiter.
// Counts[0] holds the occurrences in the sample row; Counts[i+1] holds the
// occurrences in row i of the scanned window.
type Candidate struct {
	Char   byte
	Counts []int
}

// Count reports how many times the candidate occurs in the sample row.
func (c Candidate) Count() int {
	if len(c.Counts) == 0 {
		return 0
	}
	return c.Counts[0]
}

// consistent reports whether every scanned row matches the sample row count.
func (c Candidate) consistent() bool {
	want := c.Count()
	for _, n := range c.Counts[1:] {
		if n != want {
			return false
		}
	}
	return true
}

// candidateSet is kept sorted by Char with no duplicates so lookups during
// counting can binary search.
type candidateSet []Candidate

// search returns the index of ch and whether it is present. When absent the
// index is the insertion point that keeps the set sorted.
func (s candidateSet) search(ch byte) (int, bool) {
	i := sort.Search(len(s), func(i int) bool { return s[i].Char >= ch })
	return i, i < len(s) && s[i].Char == ch
}

// add increments the sample-row count for ch, inserting it in order with a
// count of one when it is not yet present.
func (s candidateSet) add(ch byte) candidateSet {
	i, ok := s.search(ch)
	if ok {
		s[i].Counts[0]++
		return s
	}
	s = append(s, Candidate{})
	copy(s[i+1:], s[i:])
	s[i] = Candidate{Char: ch, Counts: []int{1}}
	return s
}

// find returns the candidate for ch, if any.
func (s candidateSet) find(ch byte) (Candidate, bool) {
	i, ok := s.search(ch)
	if !ok {
		return Candidate{}, false
	}
	return s[i], true
}

// max returns the candidate with the greatest sample-row count. Exact ties go
// to the lowest character code because the set is iterated in code order.
func (s candidateSet) max() Candidate {
	best := s[0]
	for _, c := range s[1:] {
		if c.Count() > best.Count() {
			best = c
		}
	}
	return best
}

// clone deep-copies the set so results never alias detector state.
func (s candidateSet) clone() []Candidate {
	out := make([]Candidate, len(s))
	for i, c := range s {
		out[i] = Candidate{Char: c.Char, Counts: append([]int(nil), c.Counts...)}
	}
	return out
}
