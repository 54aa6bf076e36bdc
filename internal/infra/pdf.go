package infra

// pdf.go — Daily cash register report using go-pdf/fpdf.
// Generates an A5 report with:
//   - Organization header, register date and status
//   - Opening balance line
//   - Movement table (time, type, description, signed amount)
//   - Net cash flow and expected balance
//   - Declared closing balance when the register is closed
//
// The output file is saved to storagePath/register_{date}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sportclub/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateRegisterReportPDF renders the day ledger of a cash register.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateRegisterReportPDF(reg *model.CashRegister, movements []model.CashMovement, orgName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("register_%s.pdf", reg.Date.Format("2006-01-02"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, orgName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, "Daily cash register report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW/2, 6, reg.Date.Format("Monday 02 Jan 2006"), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 6, "Status: "+reg.Status, "", 1, "R", false, 0, "")
	pdf.Ln(1)

	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Opening balance ──────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.6, 6, "Opening balance", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, formatMinorUnits(reg.OpeningBalance), "", 1, "R", false, 0, "")
	pdf.Ln(1)

	// ── Movement table ───────────────────────────────────────────────────────
	col1 := contentW * 0.15 // time
	col2 := contentW * 0.18 // type
	col3 := contentW * 0.42 // description
	col4 := contentW * 0.25 // amount

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Time", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Type", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	net := int64(0)
	for _, m := range movements {
		signed := m.Amount
		if m.Type == model.MovementExpense {
			signed = -m.Amount
		}
		net += signed

		desc := m.Description
		if len(desc) > 34 {
			desc = desc[:31] + "..."
		}
		pdf.CellFormat(col1, 5, m.CreatedAt.Format("15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, m.Type, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 5, formatMinorUnits(signed), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.6, 6, "Net cash flow", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, formatMinorUnits(net), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.6, 6, "Expected balance", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 6, formatMinorUnits(reg.OpeningBalance+net), "", 1, "R", false, 0, "")

	if reg.ClosingBalance != nil {
		pdf.CellFormat(contentW*0.6, 6, "Declared closing balance", "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, formatMinorUnits(*reg.ClosingBalance), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Generated "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// formatMinorUnits renders an amount stored in minor currency units.
func formatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}
