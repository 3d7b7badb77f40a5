package tableparser

const (
	// DefaultTruncateAbove is the row count above which occurrence counting is
	// limited to a fixed window.
	DefaultTruncateAbove = 100
	// DefaultSampleRows is the size of the counting window for truncated tables.
	DefaultSampleRows = 98
)

// SamplingWindow describes which rows were replayed during counting.
type SamplingWindow struct {
	TotalRows   int  `json:"total_rows" yaml:"total_rows"`
	ScannedRows int  `json:"scanned_rows" yaml:"scanned_rows"`
	Truncated   bool `json:"truncated" yaml:"truncated"`
}

// newSamplingWindow sizes the counting window for a table of total rows.
// Tables longer than truncateAbove are scanned over their first sampleRows
// rows; shorter tables are scanned over every row except the sample row.
func newSamplingWindow(total, truncateAbove, sampleRows int) SamplingWindow {
	w := SamplingWindow{TotalRows: total}
	if total > truncateAbove {
		w.Truncated = true
		w.ScannedRows = min(sampleRows, total-1)
		return w
	}
	w.ScannedRows = max(total-1, 0)
	return w
}

// countOccurrences replays the candidate set across the window, filling one
// slot per scanned row. Bytes that are not candidates are ignored: they never
// appeared in the sample row so they cannot be the delimiter.
func countOccurrences(set candidateSet, src RowSource, w SamplingWindow) error {
	if len(set) == 0 {
		return ErrNoCandidates
	}

	for i := range set {
		set[i].Counts = append(set[i].Counts, make([]int, w.ScannedRows)...)
	}

	for row := 0; row < w.ScannedRows; row++ {
		line, err := src.Row(row)
		if err != nil {
			return &DetectError{Source: src.Name(), Row: row, Err: err}
		}
		slot := row + 1
		for i := 0; i < len(line); i++ {
			if idx, ok := set.search(line[i]); ok {
				set[idx].Counts[slot]++
			}
		}
	}
	return nil
}
