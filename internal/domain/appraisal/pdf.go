package appraisal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

// ExportRecordPDF renders a published record as a PDF under exportDir and
// returns the file path. Unpublished records are not exportable.
func (s *Service) ExportRecordPDF(ctx context.Context, recordID, exportDir string) (string, error) {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return "", err
	}
	if record.Status != RecordStatusHRPublished {
		return "", fmt.Errorf("%w: %s is not published", ErrRecordTransition, recordID)
	}

	cycle, err := s.store.GetCycle(ctx, record.CycleID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(exportDir, record.ID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Appraisal")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Cycle: %s (%s to %s)", cycle.Name, cycle.StartDate.Format("2006-01-02"), cycle.EndDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overall rating: %s", record.OverallRating))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total score: %.1f", record.TotalScore))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Criteria")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, rating := range record.Ratings {
		pdf.Cell(0, 7, fmt.Sprintf("%s: %.1f", rating.Name, rating.Score))
		pdf.Ln(6)
		if rating.Comment != "" {
			pdf.MultiCell(0, 6, rating.Comment, "", "", false)
		}
	}

	for _, section := range []struct {
		title, body string
	}{
		{"Summary", record.ManagerSummary},
		{"Strengths", record.Strengths},
		{"Improvement areas", record.ImprovementAreas},
	} {
		if section.body == "" {
			continue
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, section.title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.body, "", "", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
