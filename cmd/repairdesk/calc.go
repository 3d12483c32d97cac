package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rpggio/repairdesk/internal/estimator"
)

var calcFlags struct {
	instrument    string
	paint         string
	binding       string
	joint         string
	jointWork     string
	rust          int
	trace         int
	dirty         bool
	rescueScrews  int
	replaceScrews int
	work          []string
	asJSON        bool
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a rule-based estimate",
	Long: `Calculates an itemized estimate from instrument specs, condition and work items.

Example:
  repairdesk calc --instrument vintage --paint poly --work refret --work nut_exchange`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.StringVar(&calcFlags.instrument, "instrument", string(estimator.InstrumentElectric), "acoustic, electric, bass, ukulele, archtop, vintage or other")
	f.StringVar(&calcFlags.paint, "paint", string(estimator.PaintLacquer), "lacquer, poly or oil")
	f.StringVar(&calcFlags.binding, "binding", string(estimator.BindingNone), "none, normal or gibson")
	f.StringVar(&calcFlags.joint, "joint", "", "bolt-on, set-neck or through-neck")
	f.StringVar(&calcFlags.jointWork, "joint-work", string(estimator.JointWorkNone), "none, okita or reset-angle")
	f.IntVar(&calcFlags.rust, "rust", 1, "rust level 1-5")
	f.IntVar(&calcFlags.trace, "trace", 1, "repair trace level 1-3")
	f.BoolVar(&calcFlags.dirty, "dirty", false, "needs special cleaning")
	f.IntVar(&calcFlags.rescueScrews, "rescue-screws", 0, "screws to rescue at rust level 4")
	f.IntVar(&calcFlags.replaceScrews, "replace-screws", 0, "screws to replace at rust level 5")
	f.StringSliceVar(&calcFlags.work, "work", nil, "catalog work item id (repeatable)")
	f.BoolVar(&calcFlags.asJSON, "json", false, "print the result as JSON")
}

func runCalc(cmd *cobra.Command, _ []string) error {
	in := estimator.Input{
		InstrumentType: estimator.InstrumentType(calcFlags.instrument),
		Specs: estimator.Specs{
			Paint:     estimator.PaintType(calcFlags.paint),
			Binding:   estimator.BindingType(calcFlags.binding),
			Joint:     estimator.JointType(calcFlags.joint),
			JointWork: estimator.JointWorkType(calcFlags.jointWork),
		},
		Condition: estimator.Condition{
			RustLevel:         calcFlags.rust,
			RepairTraceLevel:  calcFlags.trace,
			IsDirty:           calcFlags.dirty,
			RescueScrewCount:  calcFlags.rescueScrews,
			ReplaceScrewCount: calcFlags.replaceScrews,
		},
		SelectedWorkItemIDs: calcFlags.work,
	}

	result, err := estimator.Calculate(in)
	if err != nil {
		return err
	}
	if calcFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), result)
	}
	return printBreakdown(cmd.OutOrStdout(), result)
}

var breakdownHeaders = []string{"項目", "金額", "備考"}

// printBreakdown renders the estimate as a table whose columns are sized by
// terminal display width, so full-width labels stay aligned.
func printBreakdown(w io.Writer, result estimator.Result) error {
	rows := make([][]string, 0, len(result.Breakdown)+1)
	for _, line := range result.Breakdown {
		rows = append(rows, []string{line.Label, strconv.FormatInt(line.Amount, 10), line.Note})
	}
	rows = append(rows, []string{"合計", strconv.FormatInt(result.TotalPrice, 10), ""})

	colWidths := make([]int, len(breakdownHeaders))
	for i, h := range breakdownHeaders {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > colWidths[i] {
				colWidths[i] = cw
			}
		}
	}
	// lipgloss widths include the cell padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	amount := cell.Align(lipgloss.Right)

	var sb strings.Builder
	writeRow := func(row []string) {
		for i, text := range row {
			style := cell
			if i == 1 {
				style = amount
			}
			sb.WriteString(style.Width(colWidths[i]).Render(text))
			if i < len(row)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(breakdownHeaders)
	totalWidth := len(colWidths) - 1
	for _, cw := range colWidths {
		totalWidth += cw
	}
	divider := strings.Repeat("-", totalWidth)
	sb.WriteString(divider + "\n")
	for _, row := range rows[:len(rows)-1] {
		writeRow(row)
	}
	sb.WriteString(divider + "\n")
	writeRow(rows[len(rows)-1])

	for _, warning := range result.Warnings {
		sb.WriteString("warning: " + warning + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
