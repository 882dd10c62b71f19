// Package publish delivers check reports to external consumers.
package publish

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
	"git.home.luguber.info/inful/sitenav/internal/navcheck"
)

// DefaultSubject is the NATS subject reports are published on unless configured otherwise.
const DefaultSubject = "sitenav.reports"

// Publisher sends a report somewhere.
type Publisher interface {
	Publish(ctx context.Context, report navcheck.Report) error
	Close()
}

// NoopPublisher discards reports.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, navcheck.Report) error { return nil }
func (NoopPublisher) Close()                                         {}

// NATSPublisher publishes reports as JSON on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSPublisher connects to url. An empty subject selects DefaultSubject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	conn, err := nats.Connect(url,
		nats.Name("sitenav"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, ferrors.NetworkError("failed to connect to NATS").
			WithCause(err).
			WithContext("url", url).
			Build()
	}

	slog.Info("NATS publisher initialized", slog.String("url", url), logfields.Subject(subject))
	return &NATSPublisher{conn: conn, subject: subject}, nil
}

// Subject returns the subject reports are published on.
func (p *NATSPublisher) Subject() string { return p.subject }

// flushTimeout bounds the flush when ctx carries no deadline of its own.
const flushTimeout = 5 * time.Second

// Publish sends report and waits until the server has acknowledged the flush.
func (p *NATSPublisher) Publish(ctx context.Context, report navcheck.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal report").Build()
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to publish report").
			WithContext("subject", p.subject).
			Retryable().
			Build()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flushTimeout)
		defer cancel()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryNetwork, "failed to flush report").
			WithContext("subject", p.subject).
			Retryable().
			Build()
	}

	slog.Debug("Published report",
		logfields.Subject(p.subject),
		logfields.RunID(report.RunID),
		logfields.Count(len(report.Issues)))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
