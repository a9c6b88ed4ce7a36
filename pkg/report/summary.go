package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/radiofrance/testlog2junit/pkg/junit"
	"github.com/radiofrance/testlog2junit/pkg/testlog"
)

// RenderSummary displays the collected tests as a table, followed by the totals.
func RenderSummary(w io.Writer, records []testlog.Record) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	var (
		data   [][]string
		failed int
		total  float64
	)

	for _, record := range records {
		if record.Result == testlog.ResultFailed {
			failed++
		}

		total += record.Duration
		data = append(data, []string{
			record.Suite,
			record.Name,
			record.Result.String(),
			junit.FormatSeconds(record.Duration),
		})
	}

	table.SetHeader([]string{"Suite", "Name", "Result", "Time"})
	table.AppendBulk(data)
	table.Render()

	_, _ = fmt.Fprintf(w, "\n%d test(s), %d failed, %ss\n", len(records), failed, junit.FormatSeconds(total))
}
