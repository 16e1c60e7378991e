package output

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// PayslipPDFFormatter renders the payroll section of a dashboard as an A4 payslip.
type PayslipPDFFormatter struct{}

func (p PayslipPDFFormatter) Name() string { return "pdf" }

func (p PayslipPDFFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	if d == nil || d.Payroll == nil {
		return nil, fmt.Errorf("dashboard has no payroll result")
	}
	return PayslipPDF(d.ProfileName, d.Payroll)
}

// PayslipPDF renders a payroll result as a PDF payslip
func PayslipPDF(name string, r *domain.PayrollResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", name))
	pdf.Ln(10)

	row := func(label string, amount decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 12)
		pdf.CellFormat(90, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, FormatCurrency(amount), "", 1, "R", false, 0, "")
	}

	row("Gross Income", r.GrossMonthlyIncome, true)
	pdf.Ln(2)
	row("EPF (employee)", r.Applied.Fund, false)
	row("SOCSO", r.Applied.SocialSecurity, false)
	row("EIS", r.Applied.Insurance, false)
	row("PCB (income tax)", r.Applied.Tax, false)
	if !r.Applied.Garnishment.IsZero() {
		row("Garnishment", r.Applied.Garnishment, false)
	}
	pdf.Ln(2)
	row("Total Deductions", r.TotalDeductions, true)
	row("Net Pay", r.NetPay, true)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Annual chargeable income %s, annual tax %s",
		FormatCurrency(r.ChargeableIncome), FormatCurrency(r.AnnualTax)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
