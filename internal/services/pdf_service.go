package services

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"concierge/internal/models/plan_models"
	"concierge/pkg/utils"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

type PDFServiceInterface interface {
	// RenderItinerary draws the plan; shareURL, when set, is printed as a QR code.
	RenderItinerary(plan *plan_models.Plan, shareURL string) ([]byte, error)
}

type PDFService struct{}

func NewPDFService() PDFServiceInterface {
	return &PDFService{}
}

func (s *PDFService) RenderItinerary(plan *plan_models.Plan, shareURL string) ([]byte, error) {
	if plan == nil {
		return nil, utils.ErrNoPlan
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Luxe Concierge Itinerary", true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	title := "Your Journey"
	if len(plan.Trip.Destinations) > 0 {
		title = "Your Journey to " + strings.Join(plan.Trip.Destinations, ", ")
	}
	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 9, tr(title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	if plan.Trip.Dates.Start != "" || plan.Trip.Dates.End != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Dates: %s to %s", plan.Trip.Dates.Start, plan.Trip.Dates.End)))
		pdf.Ln(6)
	}
	if plan.Trip.Party.Adults > 0 || plan.Trip.Party.Children > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Party: %d adults, %d children", plan.Trip.Party.Adults, plan.Trip.Party.Children))
		pdf.Ln(6)
	}
	if plan.Trip.BudgetTotal != nil {
		pdf.Cell(0, 6, "Budget: "+FormatUSD(*plan.Trip.BudgetTotal))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	for _, day := range plan.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, tr(utils.FormatDayHeading(day.Date)))
		pdf.Ln(9)
		for _, seg := range day.Segments {
			when := seg.Start
			if when == "" {
				when = "All day"
			}
			pdf.SetFont("Arial", "B", 11)
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s  %s (%s)", when, seg.Title, seg.Type)), "", "L", false)
			pdf.SetFont("Arial", "", 10)
			if seg.Location != "" {
				pdf.MultiCell(0, 5, tr(seg.Location), "", "L", false)
			}
			if seg.Cost() > 0 {
				pdf.MultiCell(0, 5, "Estimated cost: "+FormatUSD(seg.Cost()), "", "L", false)
			}
			if seg.Narrative != "" {
				pdf.SetFont("Arial", "I", 10)
				pdf.MultiCell(0, 5, tr(seg.Narrative), "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(3)
	}

	summary := BuildConfirmationSummary(plan)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Estimated total: "+summary.Total)
	pdf.Ln(10)

	if shareURL != "" {
		s.drawShareCode(pdf, shareURL)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrExportFailed, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

// drawShareCode prints the share link as a QR code. Links too long for a QR code are left out.
func (s *PDFService) drawShareCode(pdf *gofpdf.Fpdf, shareURL string) {
	qrPNG, err := qrcode.Encode(shareURL, qrcode.Low, 256)
	if err != nil {
		log.Printf("Skipping share QR code: %v", err)
		return
	}
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("share-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, "Scan to open this plan")
	pdf.Ln(6)
	pdf.ImageOptions("share-qr", pdf.GetX(), pdf.GetY(), 40, 40, true, imageOpts, 0, "")
}
