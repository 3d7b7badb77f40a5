// # TableParser: Delimiter Inference for Row-Oriented Text Tables
//
// TableParser infers the field separator of a text table when the caller has
// not named one, reports the resulting column count, and splits rows into
// cells once the delimiter is known.
//
// # Features
//
// - Delimiter detection via `Detect`: candidates are seeded from the last row, counted across a bounded sample of rows, filtered for a constant per-row count, and settled by a fixed precedence order (tab first, quote balancing, comma over period, most frequent).
// - Status codes (`StatusNoDelimiter`, `StatusSingleDelimiter`, `StatusResolvedByPrecedence`) describing how the delimiter was chosen.
// - `Table` with manual delimiter override and column construction, mirroring the detect-then-split workflow.
// - Streaming `Reader` and `Writer` for tables whose delimiter is already known.
// - `Open` for plain, gzip, zstd, lz4 and snappy encoded files.
//
// # Getting Started
//
//	rows, err := tableparser.Open("data.csv")
//	if err != nil {
//		return err
//	}
//	res, err := tableparser.Detect(rows)
//	if err != nil {
//		return err
//	}
//	fmt.Println(tableparser.DelimiterName(res.Delimiter), res.Columns)
package tableparser
