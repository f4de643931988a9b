package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/de-tools/cost-atlas/pkg/models/domain"
)

// csvHeader is a contract for downstream tooling; field order matters.
var csvHeader = []string{"date", "cloud_provider", "service", "cost", "currency"}

// WriteCSV writes one row per cost record. Costs keep full float
// precision so re-aggregation downstream loses nothing.
func WriteCSV(w io.Writer, records []domain.CostRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			string(r.Provider),
			r.Service,
			strconv.FormatFloat(r.Cost, 'f', -1, 64),
			r.Currency,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile persists the dataset to path.
func WriteCSVFile(path string, records []domain.CostRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
