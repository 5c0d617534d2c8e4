// Package report renders the PDF documents produced by the system: the
// general asset report and the delivery note. Layout follows the
// institutional format: centered title, generation metadata, asset table,
// totals / signature block.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/esrickpics/ProyectoSSAPI/internal/models"

	"github.com/go-pdf/fpdf"
)

const (
	titleColorR = 0x32
	titleColorG = 0x40
	titleColorB = 0x7b
)

// GeneralReportInput is the data for the general asset report.
type GeneralReportInput struct {
	Institution string
	Assets      []models.Asset
	Filters     map[string]interface{}
	GeneratedAt time.Time
}

// DeliveryNoteInput is the data for the delivery note.
type DeliveryNoteInput struct {
	Institution string
	Assets      []models.Asset
	Responsible string
	Remarks     string
	GeneratedAt time.Time
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 30, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	return pdf
}

func writeTitle(pdf *fpdf.Fpdf, institution, title string) {
	if institution != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 5, institution, "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(titleColorR, titleColorG, titleColorB)
	pdf.CellFormat(0, 9, title, "", 1, "C", false, 0, "")
	pdf.SetDrawColor(titleColorR, titleColorG, titleColorB)
	pdf.SetLineWidth(0.6)
	x, y := pdf.GetXY()
	pdf.Line(20, y+1, 190, y+1)
	pdf.SetXY(x, y+5)
	pdf.SetTextColor(0, 0, 0)
}

func statusLabel(status string) string {
	switch status {
	case models.AssetStatusActive:
		return "Activo"
	case models.AssetStatusInactive:
		return "Inactivo"
	case models.AssetStatusUnderMaintenance:
		return "En Mantenimiento"
	}
	return status
}

func assigneeLabel(a *models.Asset) string {
	if a.Person == nil {
		return "Sin asignar"
	}
	return a.Person.FullName()
}

func writeAssetTable(pdf *fpdf.Fpdf, assets []models.Asset) {
	headers := []string{"Código", "Marca / Modelo", "Categoría", "Ubicación", "Asignado a", "Estado"}
	widths := []float64{28, 38, 30, 26, 30, 18}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(titleColorR, titleColorG, titleColorB)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	for i := range assets {
		a := &assets[i]
		pdf.SetFillColor(240, 242, 248)

		cols := []string{
			a.InventoryCode,
			a.Brand + " " + a.Model,
			a.Subcategory.Category.Name + " - " + a.Subcategory.Name,
			a.Location.Name,
			assigneeLabel(a),
			statusLabel(a.Status),
		}
		for j, col := range cols {
			pdf.CellFormat(widths[j], 6, col, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}
}

func renderFilters(filters map[string]interface{}) string {
	if len(filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(filters))
	for k, v := range filters {
		parts = append(parts, fmt.Sprintf("%s: %v", k, v))
	}
	return strings.Join(parts, ", ")
}

// GeneralReport renders the filtered asset inventory as a PDF.
func GeneralReport(in GeneralReportInput) ([]byte, error) {
	pdf := newDoc()
	writeTitle(pdf, in.Institution, "Reporte General de Activos")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Fecha de generación: "+in.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if line := renderFilters(in.Filters); line != "" {
		pdf.CellFormat(0, 5, "Filtros aplicados: "+line, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Total de activos: %d", len(in.Assets)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeAssetTable(pdf, in.Assets)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render general report: %w", err)
	}
	return buf.Bytes(), nil
}

// DeliveryNote renders a delivery note for the selected assets, with a
// receiver block and signature lines.
func DeliveryNote(in DeliveryNoteInput) ([]byte, error) {
	pdf := newDoc()
	writeTitle(pdf, in.Institution, "Nota de Entrega")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, "Fecha de entrega: "+in.GeneratedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if in.Responsible != "" {
		pdf.CellFormat(0, 5, "Responsable de entrega: "+in.Responsible, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeAssetTable(pdf, in.Assets)

	if in.Remarks != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, "Observaciones:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, in.Remarks, "", "L", false)
	}

	// signature lines
	pdf.Ln(18)
	pdf.SetFont("Helvetica", "", 9)
	y := pdf.GetY()
	pdf.Line(30, y, 90, y)
	pdf.Line(120, y, 180, y)
	pdf.SetY(y + 2)
	pdf.SetX(30)
	pdf.CellFormat(60, 5, "Entrega", "", 0, "C", false, 0, "")
	pdf.SetX(120)
	pdf.CellFormat(60, 5, "Recibe", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render delivery note: %w", err)
	}
	return buf.Bytes(), nil
}
