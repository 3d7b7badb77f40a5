package tableparser

// isAlphaNum reports whether b is an ASCII letter or digit.
func isAlphaNum(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	}
	return false
}

// scanCandidates seeds a candidate set from the sample row. Every byte that is
// not an ASCII letter or digit becomes a candidate, counted once per
// occurrence in the sample.
func scanCandidates(sample string) candidateSet {
	var set candidateSet
	for i := 0; i < len(sample); i++ {
		if b := sample[i]; !isAlphaNum(b) {
			set = set.add(b)
		}
	}
	return set
}
