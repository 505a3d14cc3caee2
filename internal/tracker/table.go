package tracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// CreateTable renders the current epoch summary as a one-row table: the
// epoch index, train loss, val loss (only once any val loss was computed
// this run), then every train metric average followed by every val metric
// average, columns in metric insertion order. Float cells are formatted to
// three decimal places.
func (t *Tracker) CreateTable() string {
	headings := []string{"epoch", "train/loss"}
	row := []string{strconv.Itoa(t.CurrentEpoch), formatCell(t.TrainLoss())}

	if t.Val.Loss.Computed {
		headings = append(headings, "val/loss")
		row = append(row, formatCell(t.ValLoss()))
	}

	for _, name := range t.Train.MetricNames() {
		headings = append(headings, ModeTrain+"/"+name)
		row = append(row, formatCell(t.Train.Metrics[name].Avg))
	}
	for _, name := range t.Val.MetricNames() {
		headings = append(headings, ModeVal+"/"+name)
		row = append(row, formatCell(t.Val.Metrics[name].Avg))
	}

	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false) // keep "train/loss" keys verbatim
	table.SetHeader(headings)
	table.Append(row)
	table.Render()
	return buf.String()
}

func formatCell(v float64) string {
	return fmt.Sprintf("%.3f", v)
}
