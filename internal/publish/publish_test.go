package publish

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitenav/internal/foundation/errors"
	"git.home.luguber.info/inful/sitenav/internal/navcheck"
)

func startServer(t *testing.T) string {
	t.Helper()
	ns, err := server.NewServer(&server.Options{Host: "127.0.0.1", Port: -1})
	require.NoError(t, err)
	ns.Start()
	t.Cleanup(ns.Shutdown)
	require.True(t, ns.ReadyForConnections(5*time.Second), "nats server not ready")
	return ns.ClientURL()
}

func TestNATSPublisher(t *testing.T) {
	url := startServer(t)

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()
	msgs, err := sub.SubscribeSync(DefaultSubject)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	pub, err := NewNATSPublisher(url, "")
	require.NoError(t, err)
	defer pub.Close()
	assert.Equal(t, DefaultSubject, pub.Subject())

	report := navcheck.Report{
		RunID:      "run-42",
		ConfigPath: "docs/.vuepress/config.yml",
		ErrorCount: 1,
		Issues: []navcheck.ReportIssue{
			{Location: "themeConfig.nav[0]", Severity: "ERROR", Rule: "nav-link-resolves", Message: "Unresolved link /basics.html"},
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, pub.Publish(ctx, report))

	msg, err := msgs.NextMsg(5 * time.Second)
	require.NoError(t, err)

	var got navcheck.Report
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "run-42", got.RunID)
	assert.Equal(t, 1, got.ErrorCount)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, "nav-link-resolves", got.Issues[0].Rule)
}

func TestNATSPublisherCustomSubject(t *testing.T) {
	url := startServer(t)

	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()
	msgs, err := sub.SubscribeSync("docs.nav")
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	pub, err := NewNATSPublisher(url, "docs.nav")
	require.NoError(t, err)
	defer pub.Close()

	require.NoError(t, pub.Publish(context.Background(), navcheck.Report{RunID: "x"}))
	_, err = msgs.NextMsg(5 * time.Second)
	require.NoError(t, err)
}

func TestNATSPublisherClosedConnection(t *testing.T) {
	url := startServer(t)

	pub, err := NewNATSPublisher(url, "")
	require.NoError(t, err)
	pub.conn.Close()

	err = pub.Publish(context.Background(), navcheck.Report{RunID: "late"})
	require.Error(t, err)
	c, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.CategoryNetwork, c.Category())
	assert.True(t, c.CanRetry())
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), navcheck.Report{}))
	p.Close()
}
