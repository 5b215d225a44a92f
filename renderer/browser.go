package renderer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/apex/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 paper in inches, with the fixed half-inch margins the report uses.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.5
)

// printToPDF loads the HTML into an offscreen Chrome page and prints it.
// The browser instance is scoped to this single call and released on every
// path, success or failure.
func printToPDF(ctx context.Context, html string, idleTimeout time.Duration) ([]byte, error) {
	l := launcher.New().Headless(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch headless chrome: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to set page content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed waiting for page load: %w", err)
	}
	// Embedded images are data-URLs so only the logo fetches over the
	// network; an idle timeout here is not fatal.
	if err := page.WaitIdle(idleTimeout); err != nil {
		log.Warnf("page did not settle before printing: %v", err)
	}

	margin := marginIn
	width := paperWidthIn
	height := paperHeightIn
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print page to PDF: %w", err)
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF stream: %w", err)
	}
	return pdf, nil
}
