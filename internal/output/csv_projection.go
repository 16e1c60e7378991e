package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/rmgo/internal/domain"
)

// ProjectionCSVFormatter exports the per-age EPF projection, one row per age.
type ProjectionCSVFormatter struct{}

func (c ProjectionCSVFormatter) Name() string { return "csv" }

func (c ProjectionCSVFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	if d == nil || d.Projection == nil {
		return nil, fmt.Errorf("dashboard has no projection")
	}
	return ProjectionCSV(d.Projection.Records)
}

// ProjectionCSV renders projection records as CSV
func ProjectionCSV(records []domain.EPFYearRecord) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Age", "TotalAmount", "TotalContribution", "DividendEarned", "YearlyDividend", "YearlyExpenses", "IsPostRetirement"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.Age),
			rec.TotalAmount.StringFixed(0),
			rec.TotalContribution.StringFixed(0),
			rec.DividendEarned.StringFixed(0),
			rec.YearlyDividend.StringFixed(0),
			rec.YearlyExpenses.StringFixed(0),
			strconv.FormatBool(rec.IsPostRetirement),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
