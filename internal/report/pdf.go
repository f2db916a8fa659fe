package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/util"
)

// GeneratePDF writes a focus report for one day: sessions grouped per card
// with per-card and overall totals.
func GeneratePDF(path string, date time.Time, sessions []models.FocusSession) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Focus Report: %s", date.Format("2006-01-02")))
	pdf.Ln(12)

	byCard := map[string][]models.FocusSession{}
	var order []string
	for _, s := range sessions {
		if _, seen := byCard[s.CardID]; !seen {
			order = append(order, s.CardID)
		}
		byCard[s.CardID] = append(byCard[s.CardID], s)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return byCard[order[i]][0].CardTitle < byCard[order[j]][0].CardTitle
	})

	var total time.Duration
	for _, cardID := range order {
		group := byCard[cardID]
		title := group[0].CardTitle
		if title == "" {
			title = "(untitled card)"
		}

		var cardTotal time.Duration
		for _, s := range group {
			if s.Mode != models.ModeBreak {
				cardTotal += s.Duration
			}
		}
		total += cardTotal

		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, fmt.Sprintf("%s  (%s)", title, util.FormatDuration(cardTotal)))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 12)
		for _, s := range group {
			pdf.Cell(0, 8, fmt.Sprintf("  %s - %s  %s  %s",
				s.Start.Format("15:04"),
				s.End.Format("15:04"),
				s.Mode,
				util.FormatDuration(s.Duration)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if len(order) == 0 {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, "No sessions recorded.")
		pdf.Ln(8)
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total focused: %s", util.FormatDuration(total)))

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}
