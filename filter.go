package tableparser

// filterConsistent drops every candidate whose count differs between any
// scanned row and the sample row. A true separator occurs exactly columns-1
// times in every row. The relative order of survivors is preserved.
func filterConsistent(set candidateSet) candidateSet {
	kept := set[:0]
	for _, c := range set {
		if c.consistent() {
			kept = append(kept, c)
		}
	}
	return kept
}
