package pr

import (
	"encoding/csv"
	"io"
)

var csvHeader = []string{"PR Number", "Date", "Requested By", "Vendor", "Description"}

// WriteCSV writes records in the dashboard export layout: a header row
// followed by one row per record. Quoting is handled by encoding/csv.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{r.PRNumber, r.Date, r.RequestedBy, r.Vendor, r.Description}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
