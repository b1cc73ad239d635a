package infra

// pdf.go — Quote document generation using go-pdf/fpdf.
// Generates an A4 quote with:
//   - Business name header and quote number
//   - Client and event date block
//   - Item table (product name, quantity, unit price, line total)
//   - Bold total
//   - Observations and current state footer
//
// The output file is saved to storagePath/cotizacion_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"pasteleria/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCotizacionPDF renders a quote document and returns the absolute
// path of the written file. The quote must be loaded with its client and
// items.
func GenerateCotizacionPDF(c *model.Cotizacion, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("cotizacion_%s.pdf", c.NumeroCotizacion)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Pastelería", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, "Cotización de productos", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Quote info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Cotización %s", c.NumeroCotizacion), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, "Fecha: "+c.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if c.Cliente != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+c.Cliente.Nombre, "", 1, "L", false, 0, "")
	}
	if c.FechaEvento != nil {
		pdf.CellFormat(contentW, 5, "Fecha del evento: "+c.FechaEvento.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Items header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product name
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.21 // unit price
	col4 := contentW * 0.21 // line total

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "P. Unitario", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Total", "B", 1, "R", false, 0, "")

	// ── Item rows ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range c.Items {
		nombre := item.NombreProducto
		if len(nombre) > 40 {
			nombre = nombre[:39] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.PrecioTotal.StringFixed(2), "", 1, "R", false, 0, "")

		if item.DetalleTorta != nil {
			pdf.SetFont("Helvetica", "I", 8)
			pdf.CellFormat(col1, 4, fmt.Sprintf("    Torta para %d porciones", item.DetalleTorta.Porciones), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
		}
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+c.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	if c.Observaciones != nil && *c.Observaciones != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, "Observaciones: "+*c.Observaciones, "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Estado: "+c.Estado, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Cotización válida por 15 días.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
