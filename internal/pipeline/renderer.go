package pipeline

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/greensynth/internal/extract"
	"github.com/ppiankov/greensynth/internal/model"
	"github.com/ppiankov/greensynth/internal/validate"
)

const banner = "═══════════════════════════════════════════════════════════"

// snippetWidth is the number of snippet characters shown in the claims table.
const snippetWidth = 60

// Renderer writes the human-readable console report.
type Renderer struct {
	w         io.Writer
	maxErrors int

	header lipgloss.Style
	cell   lipgloss.Style
	muted  lipgloss.Style
	ok     lipgloss.Style
	warn   lipgloss.Style
}

// NewRenderer creates a renderer writing to w. At most maxErrors violations
// are listed individually.
func NewRenderer(w io.Writer, maxErrors int) *Renderer {
	re := lipgloss.NewRenderer(w)
	return &Renderer{
		w:         w,
		maxErrors: maxErrors,
		header:    re.NewStyle().Bold(true).Padding(0, 1),
		cell:      re.NewStyle().Padding(0, 1),
		muted:     re.NewStyle().Foreground(lipgloss.Color("241")),
		ok:        re.NewStyle().Foreground(lipgloss.Color("42")),
		warn:      re.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// Writer returns the destination of the report.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// Section prints a banner with title.
func (r *Renderer) Section(title string) {
	fmt.Fprintf(r.w, "\n%s\n  %s\n%s\n\n", banner, title, banner)
}

// Claims prints one table row per claim.
func (r *Renderer) Claims(claims []model.Claim) {
	if len(claims) == 0 {
		fmt.Fprintln(r.w, r.muted.Render("  (no claims)"))
		return
	}

	headers := []string{"#", "Classification", "Technique", "Industry", "Source", "Severity", "Snippet"}
	rows := make([][]string, len(claims))
	for i, c := range claims {
		rows[i] = []string{
			fmt.Sprintf("%d", i),
			string(c.Classification),
			c.TechniqueID,
			string(c.Industry),
			string(c.SourceType),
			fmt.Sprintf("%.2f", c.SeverityScore),
			shorten(c.TextSnippet, snippetWidth),
		}
	}
	r.table(headers, rows)
}

// Batch prints the outcome of one generation request and its rejected records.
func (r *Renderer) Batch(s model.BatchSummary, rejected []*validate.RecordError) {
	fmt.Fprintf(r.w, "  Request:   %s\n", s.Request)
	fmt.Fprintf(r.w, "  Received:  %d", s.Received)
	if s.Truncated > 0 {
		fmt.Fprintf(r.w, " %s", r.warn.Render(fmt.Sprintf("(%d extra dropped)", s.Truncated)))
	}
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "  Accepted:  %d\n", s.Accepted)
	fmt.Fprintf(r.w, "  Rejected:  %d\n", s.Rejected)
	for _, e := range r.limit(len(rejected)) {
		fmt.Fprintf(r.w, "    %s %s\n", r.warn.Render("✗"), rejected[e].Error())
	}
	r.more(len(rejected))
}

// Stats prints the aggregate statistics and the first violations.
func (r *Renderer) Stats(st model.Stats) {
	fmt.Fprintf(r.w, "  Total:             %d\n", st.Total)
	fmt.Fprintf(r.w, "  Average Severity:  %.2f\n", st.AvgSeverity)
	fmt.Fprintln(r.w)

	r.counts("Classification", st.ByClassification)
	r.counts("Technique", st.ByTechnique)
	r.counts("Industry", st.ByIndustry)
	r.counts("Source", st.BySource)

	if len(st.Errors) == 0 {
		fmt.Fprintln(r.w, r.ok.Render("✓ No validation errors"))
		return
	}

	fmt.Fprintln(r.w, r.warn.Render(fmt.Sprintf("⚠ Errors found: %d", len(st.Errors))))
	for _, i := range r.limit(len(st.Errors)) {
		fmt.Fprintf(r.w, "  - %s\n", st.Errors[i])
	}
	r.more(len(st.Errors))
}

// Export prints the export outcome.
func (r *Renderer) Export(s model.ExportSummary) {
	fmt.Fprintf(r.w, "Exporting %d unique claims (removed %d duplicates", s.Written, s.DuplicatesRemoved)
	if s.PreviouslySeen > 0 {
		fmt.Fprintf(r.w, ", skipped %d exported earlier", s.PreviouslySeen)
	}
	fmt.Fprintln(r.w, ")")
	fmt.Fprintln(r.w, r.ok.Render("✓ Exported to "+s.Path))
}

func (r *Renderer) counts(title string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// most frequent first, then by name
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})

	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = []string{k, fmt.Sprintf("%d", m[k])}
	}
	r.table([]string{title, "Count"}, rows)
}

func (r *Renderer) table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	sep := r.muted.Render("│")
	var sb strings.Builder

	for i, h := range headers {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(r.header.Width(widths[i] + 2).Render(h))
	}
	sb.WriteString("\n")

	total := len(headers) - 1
	for _, w := range widths {
		total += w + 2
	}
	sb.WriteString(r.muted.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(sep)
			}
			sb.WriteString(r.cell.Width(widths[i] + 2).Render(cell))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintln(r.w, sb.String())
}

// limit returns the indexes of the first maxErrors of n items.
func (r *Renderer) limit(n int) []int {
	if r.maxErrors > 0 && n > r.maxErrors {
		n = r.maxErrors
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func (r *Renderer) more(n int) {
	if r.maxErrors > 0 && n > r.maxErrors {
		fmt.Fprintln(r.w, r.muted.Render(fmt.Sprintf("  ... and %d more", n-r.maxErrors)))
	}
}

func shorten(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	short := extract.Excerpt(s, max)
	if short != s {
		return extract.Excerpt(s, max-1) + "…"
	}
	return s
}
