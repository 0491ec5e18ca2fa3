// Package report materialises human-readable audit artifacts and returns the
// web-relative paths they are served under.
package report

import (
	"bytes"
	"carbonaudit/pkg/domain"
	"carbonaudit/pkg/lighthouse"
	"carbonaudit/pkg/logger"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const maxStemLength = 50

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Materializer persists the report artifacts of one audit.
//
//go:generate mockgen -package mockreport -source=report.go -destination=mock/mockreport.go *
type Materializer interface {
	Materialize(ctx context.Context,
		target string,
		carbon *domain.Carbon,
		perf *lighthouse.Result) (*domain.Reports, error)
}

// PDFRenderer turns an HTML document into a PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html []byte) ([]byte, error)
}

// Options configures a FileMaterializer.
type Options struct {
	// Dir is the directory artifacts are written to.
	Dir string
	// PublicPath is the URL prefix the directory is served under.
	PublicPath string
	// PDF renders PDF artifacts when set.
	PDF PDFRenderer
}

// FileMaterializer writes artifacts to an afero filesystem.
type FileMaterializer struct {
	fs   afero.Fs
	opts Options
	now  func() time.Time
}

var _ Materializer = (*FileMaterializer)(nil)

// NewFileMaterializer returns a FileMaterializer writing into fs.
func NewFileMaterializer(fs afero.Fs, opts Options) *FileMaterializer {
	if opts.PublicPath == "" {
		opts.PublicPath = "/reports"
	}
	opts.PublicPath = "/" + strings.Trim(opts.PublicPath, "/")

	return &FileMaterializer{fs: fs, opts: opts, now: time.Now}
}

// WithClock replaces the clock used for file stems.
func (m *FileMaterializer) WithClock(now func() time.Time) *FileMaterializer {
	m.now = now

	return m
}

// Stem derives the filesystem-safe base name for target at t.
func Stem(target string, t time.Time) string {
	s := unsafeChars.ReplaceAllString(target, "_")
	if len(s) > maxStemLength {
		s = s[:maxStemLength]
	}

	return s + "_" + strconv.FormatInt(t.UnixMilli(), 10)
}

// Materialize writes the enriched HTML report and, when a renderer is
// configured, its PDF rendition. The returned paths are stable whether or not
// a given artifact could be written; PDF failures are only logged.
func (m *FileMaterializer) Materialize(ctx context.Context,
	target string,
	carbon *domain.Carbon,
	perf *lighthouse.Result) (*domain.Reports, error) {
	stem := Stem(target, m.now())
	reports := &domain.Reports{
		HTMLPath: path.Join(m.opts.PublicPath, stem+".html"),
		PDFPath:  path.Join(m.opts.PublicPath, stem+".pdf"),
	}

	if err := m.fs.MkdirAll(m.opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create report directory: %w", err)
	}

	if perf == nil || len(perf.HTML) == 0 {
		return reports, nil
	}

	html, err := Enrich(perf.HTML, target, carbon)
	if err != nil {
		logger.Get(ctx).Warn("could not enrich html report, writing original", zap.Error(err))
		html = perf.HTML
	}

	if err := afero.WriteFile(m.fs, filepath.Join(m.opts.Dir, stem+".html"), html, 0o644); err != nil {
		return nil, fmt.Errorf("could not write html report: %w", err)
	}

	if m.opts.PDF != nil {
		m.writePDF(ctx, stem, html)
	}

	return reports, nil
}

func (m *FileMaterializer) writePDF(ctx context.Context, stem string, html []byte) {
	pdf, err := m.opts.PDF.RenderPDF(ctx, html)
	if err == nil {
		err = afero.WriteFile(m.fs, filepath.Join(m.opts.Dir, stem+".pdf"), pdf, 0o644)
	}
	if err != nil {
		logger.Get(ctx).Warn("could not materialize pdf report", zap.String("stem", stem), zap.Error(err))
	}
}

// Enrich injects a carbon summary section at the top of the report body.
func Enrich(html []byte, target string, carbon *domain.Carbon) ([]byte, error) {
	if carbon == nil {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("could not parse html report: %w", err)
	}

	hosting := "standard grid energy"
	if carbon.Green {
		hosting = "renewable energy"
	}

	section := doc.Find("body").PrependHtml(`<section id="carbon-summary"><h2>Carbon footprint</h2><dl></dl></section>`).
		Find("#carbon-summary dl")
	for _, row := range [][2]string{
		{"URL", target},
		{"CO2 per page view", strconv.FormatFloat(carbon.CO2PerPageview, 'f', 3, 64) + " g"},
		{"Cleaner than", strconv.FormatFloat(carbon.CleanerThan*100, 'f', 0, 64) + "% of pages tested"},
		{"Transfer size", strconv.FormatInt(carbon.TransferSize, 10) + " bytes"},
		{"Hosting", hosting},
		{"Method", string(carbon.Method)},
	} {
		section.AppendHtml("<dt></dt><dd></dd>")
		section.Find("dt").Last().SetText(row[0])
		section.Find("dd").Last().SetText(row[1])
	}

	out, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("could not render html report: %w", err)
	}

	return []byte(out), nil
}
