// Package report renders detection results for people and for machines.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tableparser "github.com/RedSunAtNight/TableParser"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects how a Report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q: want text, json or yaml", s)
}

// CandidateReport is one consistent candidate and its per-row count.
type CandidateReport struct {
	Char  string `json:"char" yaml:"char"`
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// Report is the serializable form of a detection result.
type Report struct {
	Source        string            `json:"source" yaml:"source"`
	Delimiter     string            `json:"delimiter" yaml:"delimiter"`
	DelimiterName string            `json:"delimiter_name" yaml:"delimiter_name"`
	Columns       int               `json:"columns" yaml:"columns"`
	Status        string            `json:"status" yaml:"status"`
	StatusCode    int               `json:"status_code" yaml:"status_code"`
	Description   string            `json:"description" yaml:"description"`
	TotalRows     int               `json:"total_rows" yaml:"total_rows"`
	ScannedRows   int               `json:"scanned_rows" yaml:"scanned_rows"`
	Truncated     bool              `json:"truncated" yaml:"truncated"`
	Candidates    []CandidateReport `json:"candidates" yaml:"candidates"`
}

// FromResult builds the report for a detection run over source.
func FromResult(source string, res tableparser.Result) Report {
	r := Report{
		Source:        source,
		Delimiter:     res.Delimiter,
		DelimiterName: tableparser.DelimiterName(res.Delimiter),
		Columns:       res.Columns,
		Status:        res.Status.String(),
		StatusCode:    int(res.Status),
		Description:   res.Status.Describe(),
		TotalRows:     res.Window.TotalRows,
		ScannedRows:   res.Window.ScannedRows,
		Truncated:     res.Window.Truncated,
		Candidates:    make([]CandidateReport, 0, len(res.Candidates)),
	}
	for _, c := range res.Candidates {
		ch := string([]byte{c.Char})
		r.Candidates = append(r.Candidates, CandidateReport{
			Char:  ch,
			Name:  tableparser.DelimiterName(ch),
			Count: c.Count(),
		})
	}
	return r
}

// Render writes r to w in the given format.
func Render(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, renderText(r))
		return err
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	keyStyle   = lipgloss.NewStyle().Bold(true).Width(14)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyles = map[string]lipgloss.Style{
		tableparser.StatusSingleDelimiter.String():      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		tableparser.StatusResolvedByPrecedence.String(): lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		tableparser.StatusNoDelimiter.String():          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

func renderText(r Report) string {
	status := r.Status + " (" + strconv.Itoa(r.StatusCode) + ")"
	if style, ok := statusStyles[r.Status]; ok {
		status = style.Render(status)
	}

	rows := fmt.Sprintf("%d total, %d scanned", r.TotalRows, r.ScannedRows)
	if r.Truncated {
		rows += mutedStyle.Render(" (truncated)")
	}

	cands := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		cands = append(cands, c.Name+"="+strconv.Itoa(c.Count))
	}
	candidates := strings.Join(cands, " ")
	if candidates == "" {
		candidates = mutedStyle.Render("none")
	}

	lines := []string{
		titleStyle.Render(r.Source),
		keyStyle.Render("delimiter") + r.DelimiterName,
		keyStyle.Render("columns") + strconv.Itoa(r.Columns),
		keyStyle.Render("status") + status,
		keyStyle.Render("rows") + rows,
		keyStyle.Render("candidates") + candidates,
		mutedStyle.Render(r.Description),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}
