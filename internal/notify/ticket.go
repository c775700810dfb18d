package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tripd/internal/pkg/errs"

	"github.com/phpdave11/gofpdf"
)

// TicketData is the slice of a confirmed booking that ends up on the ticket.
type TicketData struct {
	BookingID   string
	RouteFrom   string
	RouteTo     string
	DepartureAt time.Time
	Seats       []string
	TotalCents  int64
}

// TicketRenderer writes one PDF e-ticket per confirmed booking into a local
// directory. Real mail delivery sits behind the same job queue and is out of
// process here.
type TicketRenderer struct {
	dir string
}

func NewTicketRenderer(dir string) *TicketRenderer {
	return &TicketRenderer{dir: dir}
}

func (r *TicketRenderer) Render(d TicketData) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", errs.Wrap(err, "failed to create ticket directory")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking    : %s", d.BookingID),
		fmt.Sprintf("Route      : %s -> %s", d.RouteFrom, d.RouteTo),
		fmt.Sprintf("Departs    : %s", d.DepartureAt.Format("2006-01-02 15:04 MST")),
		fmt.Sprintf("Seats      : %s", strings.Join(d.Seats, ", ")),
		fmt.Sprintf("Total paid : %.2f", float64(d.TotalCents)/100),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this ticket at boarding. Valid for the listed seats only.", "", "", false)

	path := filepath.Join(r.dir, fmt.Sprintf("ETICKET_%s.pdf", d.BookingID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", errs.Wrap(err, "failed to write ticket PDF")
	}
	return path, nil
}
