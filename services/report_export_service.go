package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

var ErrReportNotFound = &NotFoundError{Entity: "Report"}

// PDFRenderer turns an HTML document into PDF bytes.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints through a headless Chrome started per call.
type ChromeRenderer struct {
	Timeout time.Duration
}

func (r ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx, cancelChrome := chromedp.NewContext(ctx)
	defer cancelChrome()

	var pdf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Session report {{.SessionID}}</title>
<style>body{font-family:sans-serif;margin:40px}h1{font-size:22px}dt{font-weight:bold;margin-top:8px}</style>
</head><body>
<h1>{{.Subject}}</h1>
<p>{{.Date}} {{.Time}} · {{.Duration}} min · {{.Location}}</p>
<dl>
<dt>Tutor</dt><dd>{{.TutorName}}</dd>
<dt>Student</dt><dd>{{.StudentName}}</dd>
<dt>Summary</dt><dd>{{.Summary}}</dd>
{{if .Topics}}<dt>Topics</dt><dd>{{.Topics}}</dd>{{end}}
{{if .Progress}}<dt>Progress</dt><dd>{{.Progress}}</dd>{{end}}
{{if .Homework}}<dt>Homework</dt><dd>{{.Homework}}</dd>{{end}}
{{range $k, $v := .Extra}}<dt>{{$k}}</dt><dd>{{$v}}</dd>{{end}}
</dl>
<p><small>Written {{.WrittenAt}}</small></p>
</body></html>`))

// ReportExporter renders a session report as a printable document and
// optionally archives it.
type ReportExporter struct {
	sessions *SessionService
	profiles *ProfileService
	renderer PDFRenderer
	uploader Uploader
	logger   *zap.Logger
}

// NewReportExporter accepts a nil uploader; Archive then fails.
func NewReportExporter(sessions *SessionService, profiles *ProfileService, renderer PDFRenderer, uploader Uploader, logger *zap.Logger) *ReportExporter {
	return &ReportExporter{sessions: sessions, profiles: profiles, renderer: renderer, uploader: uploader, logger: orNop(logger)}
}

func (e *ReportExporter) RenderHTML(ctx context.Context, sessionID string) (string, error) {
	sess, ok, err := e.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrSessionNotFound
	}
	report, ok, err := e.sessions.GetReport(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrReportNotFound
	}

	data := struct {
		SessionID, Subject, Date, Time, Location string
		Duration                                 int
		TutorName, StudentName                   string
		Summary, Topics, Progress, Homework      string
		Extra                                    map[string]string
		WrittenAt                                string
	}{
		SessionID: sess.ID, Subject: sess.Subject, Date: sess.Date, Time: sess.Time, Location: sess.Location,
		Duration:  sess.Duration,
		TutorName: e.displayName(ctx, sess.TutorID), StudentName: e.displayName(ctx, sess.StudentID),
		Summary: report.Summary, Topics: strings.Join(report.Topics, ", "), Progress: report.Progress, Homework: report.Homework,
		Extra:     report.Extra,
		WrittenAt: report.CreatedAt.Format("January 2, 2006 15:04"),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Sessions may reference users that no longer resolve; fall back to the id.
func (e *ReportExporter) displayName(ctx context.Context, userID string) string {
	p, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return userID
	}
	return p.Name
}

func (e *ReportExporter) ExportPDF(ctx context.Context, sessionID string) ([]byte, error) {
	html, err := e.RenderHTML(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	pdf, err := e.renderer.RenderPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("render report %s: %w", sessionID, err)
	}
	return pdf, nil
}

// Archive uploads the PDF and returns its public URL.
func (e *ReportExporter) Archive(ctx context.Context, sessionID string) (string, error) {
	if e.uploader == nil {
		return "", ErrUploadsDisabled
	}
	pdf, err := e.ExportPDF(ctx, sessionID)
	if err != nil {
		return "", err
	}
	url, err := e.uploader.Upload(ctx, bytes.NewReader(pdf), UploadOptions{
		Folder:       "tutoring_reports",
		PublicID:     "session_" + sessionID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	e.logger.Info("report archived", zap.String("session_id", sessionID), zap.String("url", url))
	return url, nil
}
