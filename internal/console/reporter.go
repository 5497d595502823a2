// Package console renders the quality-control summary a run prints for the
// operator. Output mirrors what the planning team checks after each export:
// how the file was read, where the workbook landed, and how many records
// were kept, dropped or flagged.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"bsplan/pkg/contracts/domain"
)

var (
	styleOK = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")). // bright green
		Bold(true)

	styleInfo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")) // bright cyan

	styleDetail = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // gray
)

// Reporter prints the run summary. Quiet mode suppresses everything, for
// callers that only want the workbook and the structured log.
type Reporter struct {
	out   io.Writer
	quiet bool
}

// NewReporter creates a reporter writing to out, or os.Stdout when nil.
func NewReporter(out io.Writer, quiet bool) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{out: out, quiet: quiet}
}

// ReadOK reports how the input file was read and rebuilt.
func (r *Reporter) ReadOK(s domain.RunSummary) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.out, styleOK.Render("Lecture OK (réparation CSV) :"))
	fmt.Fprintf(r.out, "%s encoding_used: %s\n", styleDetail.Render("  -"), s.EncodingUsed)
	fmt.Fprintf(r.out, "%s raw_line_count: %d\n", styleDetail.Render("  -"), s.RawLineCount)
	fmt.Fprintf(r.out, "%s rebuilt_record_count: %d\n", styleDetail.Render("  -"), s.RebuiltRecordCount)
	fmt.Fprintf(r.out, "%s expected_columns: %d\n", styleDetail.Render("  -"), s.ExpectedColumns)
}

// Generated reports the output workbook location.
func (r *Reporter) Generated(path string) {
	if r.quiet {
		return
	}
	fmt.Fprintf(r.out, "%s fichier généré -> %s\n", styleOK.Render("OK:"), path)
}

// Stats reports the selection and quality counters for the target year.
func (r *Reporter) Stats(year int, s domain.RunSummary) {
	if r.quiet {
		return
	}
	info := styleInfo.Render("INFO:")
	fmt.Fprintf(r.out, "%s Année ciblée: %d | gardées: %d | ignorées (autres années): %d\n",
		info, year, s.KeptCount, s.SkippedCount)
	fmt.Fprintf(r.out, "%s Anomalies (année %d): %d\n", info, year, s.AnomalyCount)
	fmt.Fprintf(r.out, "%s Lignes alignées: %d | Lignes cassées (fallback): %d\n",
		info, s.AlignedCount, s.HeuristicCount)
	fmt.Fprintf(r.out, "%s Champs vides (Planning): Description=%d Catégorie=%d Bât/Équip=%d Adresse=%d Consigne=%d Agents=%d\n",
		info,
		s.EmptyFieldCounts[domain.FieldDescription],
		s.EmptyFieldCounts[domain.FieldCategory],
		s.EmptyFieldCounts[domain.FieldBuilding],
		s.EmptyFieldCounts[domain.FieldAddress],
		s.EmptyFieldCounts[domain.FieldInstruction],
		s.EmptyFieldCounts[domain.FieldAgents],
	)
}
