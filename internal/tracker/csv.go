package tracker

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"
)

// WriteCSV streams the append-only step log to w as CSV with an
// epoch,key,value header. The record order is the append order.
func (t *Tracker) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)
	for _, r := range t.logs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
