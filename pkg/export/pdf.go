package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/annotation"
	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

const (
	pdfLineHeight      = 6
	pdfTimeColumnWidth = 28
	pdfSpeakerWidth    = 34
)

// exportPDF renders the collection as a table with Start, End, Speaker, and
// Transcript columns. Like CSV and XML it dumps the raw stored timecodes.
func exportPDF(collection annotation.Collection, base string) (Document, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Audio Annotations", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	transcriptWidth := pageWidth - left - right - 2*pdfTimeColumnWidth - pdfSpeakerWidth

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(pdfTimeColumnWidth, pdfLineHeight+2, "Start", "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfTimeColumnWidth, pdfLineHeight+2, "End", "1", 0, "L", true, 0, "")
		pdf.CellFormat(pdfSpeakerWidth, pdfLineHeight+2, "Speaker", "1", 0, "L", true, 0, "")
		pdf.CellFormat(transcriptWidth, pdfLineHeight+2, "Transcript", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)
	}
	writeHeader()

	for _, item := range collection {
		transcriptLines := pdf.SplitText(item.Transcript, transcriptWidth-2)
		if len(transcriptLines) == 0 {
			transcriptLines = []string{""}
		}
		rowHeight := float64(len(transcriptLines)) * pdfLineHeight

		if pdf.GetY()+rowHeight > pageHeight-bottom {
			pdf.AddPage()
			writeHeader()
		}

		x, y := pdf.GetXY()
		pdf.CellFormat(pdfTimeColumnWidth, rowHeight, item.StartTime, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfTimeColumnWidth, rowHeight, item.EndTime, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfSpeakerWidth, rowHeight, speakerOrDefault(item.Speaker, "N/A"), "1", 0, "L", false, 0, "")
		pdf.MultiCell(transcriptWidth, pdfLineHeight, item.Transcript, "1", "L", false)
		pdf.SetXY(x, y+rowHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, utils.WrapIfNotNil(err)
	}

	return Document{
		Filename: base + ".pdf",
		MIMEType: "application/pdf",
		Data:     buf.Bytes(),
	}, nil
}
