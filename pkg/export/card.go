package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Card holds the fields printed on a student identity card.
type Card struct {
	Code     string
	Name     string
	NID      string
	Level    string
	Major    string
	Division string
}

// CardPDF renders identity cards as single-page PDFs.
type CardPDF struct{}

// NewCardPDF constructs a card exporter.
func NewCardPDF() *CardPDF {
	return &CardPDF{}
}

// Render creates the card document.
func (e *CardPDF) Render(c Card) ([]byte, error) {
	if c.Code == "" {
		return nil, fmt.Errorf("card requires a student code")
	}
	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, strings.ToUpper("student identity card"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	fields := []struct {
		label string
		value string
	}{
		{"Code", c.Code},
		{"Name", c.Name},
		{"National ID", c.NID},
		{"Level", c.Level},
		{"Major", c.Major},
		{"Division", c.Division},
	}

	for _, f := range fields {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(45, 9, f.label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 9, f.value, "1", 1, "L", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render card: %w", err)
	}
	return buf.Bytes(), nil
}
