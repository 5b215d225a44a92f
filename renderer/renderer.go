// Package renderer assembles the latest finalized inspection of a route into
// a paginated PDF report by rendering a fixed HTML template and printing it
// through an offscreen Chrome page.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vistoria-service/config"
	"vistoria-service/models"
)

// Store is the snapshot source the renderer reads from.
type Store interface {
	GetLatestFinalizedInspection(ctx context.Context, rotaID string) (*models.Vistoria, error)
}

// Renderer produces PDF reports.
type Renderer struct {
	store        Store
	templatePath string
	logoURL      string
	idleTimeout  time.Duration
}

// New creates a Renderer. The logo URL is resolved to an absolute URL once,
// so the offscreen page can fetch it regardless of its document origin.
func New(store Store, cfg *config.Config) *Renderer {
	return &Renderer{
		store:        store,
		templatePath: cfg.TemplatePath,
		logoURL:      strings.TrimRight(cfg.PublicBaseURL, "/") + cfg.LogoPath,
		idleTimeout:  cfg.RenderTimeout,
	}
}

// Render selects the route's latest finalized inspection and returns the PDF
// bytes plus the attachment filename. Returns the store's
// ErrInspectionNotFound unchanged when no finalized snapshot exists.
func (r *Renderer) Render(ctx context.Context, rotaID string) ([]byte, string, error) {
	v, err := r.store.GetLatestFinalizedInspection(ctx, rotaID)
	if err != nil {
		return nil, "", err
	}

	html, err := r.RenderHTML(v)
	if err != nil {
		return nil, "", err
	}

	pdf, err := printToPDF(ctx, html, r.idleTimeout)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render PDF for rota %s: %w", rotaID, err)
	}

	return pdf, ReportFilename(v.Condominio), nil
}

// RenderHTML executes the report template against the snapshot's context.
// Deterministic: the same snapshot always yields byte-identical HTML.
func (r *Renderer) RenderHTML(v *models.Vistoria) (string, error) {
	tmpl, err := loadTemplate(r.templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, BuildContext(v, r.logoURL)); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.String(), nil
}

var (
	unsafeFilenameRe = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
)

// ReportFilename derives the attachment filename from the property name,
// replacing filesystem-unsafe characters and capping the length.
func ReportFilename(condominio string) string {
	name := condominio
	if name == "" {
		name = "condominio"
	}
	name = unsafeFilenameRe.ReplaceAllString(name, "_")
	name = whitespaceRe.ReplaceAllString(name, "_")
	if runes := []rune(name); len(runes) > 80 {
		name = string(runes[:80])
	}
	return "relatorio_vistoria_" + name + ".pdf"
}
