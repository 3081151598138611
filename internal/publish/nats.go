// Package publish pushes run findings to NATS so downstream review tooling
// can subscribe instead of scraping CLI output.
package publish

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/open-constructs/docmigrate/internal/config"
	apperrors "github.com/open-constructs/docmigrate/internal/errors"
	"github.com/open-constructs/docmigrate/internal/report"
)

// ReviewEvent is the wire form of one run's findings.
type ReviewEvent struct {
	RunID           string              `json:"run_id"`
	Mode            string              `json:"mode"`
	StartedAt       time.Time           `json:"started_at"`
	FilesProcessed  int                 `json:"files_processed"`
	FilesChanged    int                 `json:"files_changed"`
	RestrictedFiles int                 `json:"restricted_files"`
	Protections     int                 `json:"protections"`
	Review          []report.ReviewItem `json:"review,omitempty"`
	Leaks           []report.Leak       `json:"leaks,omitempty"`
}

// Publisher sends review events to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS using the publish configuration.
func NewPublisher(cfg config.PublishConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, apperrors.New(apperrors.CategoryPublish, "publishing is disabled")
	}

	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("docmigrate"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryPublish, "connect to NATS").WithContext("url", cfg.NATSURL)
	}

	slog.Info("connected to NATS", "url", cfg.NATSURL, "subject", cfg.Subject)
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// EventFromReport converts a run report into its wire form.
func EventFromReport(rep *report.Report) ReviewEvent {
	return ReviewEvent{
		RunID:           rep.RunID,
		Mode:            rep.Mode,
		StartedAt:       rep.StartedAt,
		FilesProcessed:  rep.FilesProcessed,
		FilesChanged:    rep.FilesChanged,
		RestrictedFiles: rep.RestrictedFiles,
		Protections:     rep.Protections,
		Review:          rep.Review,
		Leaks:           rep.Leaks,
	}
}

// PublishReport sends the run's findings as a single JSON event and flushes.
func (p *Publisher) PublishReport(rep *report.Report) error {
	payload, err := json.Marshal(EventFromReport(rep))
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryPublish, "marshal review event")
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryPublish, "publish review event").WithContext("subject", p.subject)
	}
	return p.conn.Flush()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
