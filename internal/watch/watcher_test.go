package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, configPath string) <-chan string {
	t.Helper()
	triggered := make(chan string, 16)
	docs := filepath.Dir(filepath.Dir(configPath))
	w, err := NewWatcher(configPath, docs, 50*time.Millisecond, func(source string) { triggered <- source })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	require.NoError(t, w.Start(ctx))
	return triggered
}

func waitTrigger(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case source := <-ch:
		return source
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for trigger")
		return ""
	}
}

func TestWatcherPageChange(t *testing.T) {
	configPath := newSite(t)
	triggered := startWatcher(t, configPath)

	docs := filepath.Dir(filepath.Dir(configPath))
	writeFile(t, filepath.Join(docs, "basics.md"), "# Basics\n\n## More\n")
	require.Equal(t, SourceFSNotify, waitTrigger(t, triggered))
}

func TestWatcherConfigChange(t *testing.T) {
	configPath := newSite(t)
	triggered := startWatcher(t, configPath)

	writeFile(t, configPath, siteConfig+"  sidebarDepth: 2\n")
	require.Equal(t, SourceFSNotify, waitTrigger(t, triggered))
}

func TestWatcherNewDirectory(t *testing.T) {
	configPath := newSite(t)
	triggered := startWatcher(t, configPath)
	docs := filepath.Dir(filepath.Dir(configPath))

	require.NoError(t, os.Mkdir(filepath.Join(docs, "api"), 0o750))
	// Give the watcher a moment to add the new directory before writing into it.
	time.Sleep(100 * time.Millisecond)
	drain(triggered)

	writeFile(t, filepath.Join(docs, "api", "README.md"), "# API\n")
	require.Equal(t, SourceFSNotify, waitTrigger(t, triggered))
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	configPath := newSite(t)
	triggered := startWatcher(t, configPath)
	docs := filepath.Dir(filepath.Dir(configPath))

	writeFile(t, filepath.Join(docs, "logo.png"), "png")
	writeFile(t, filepath.Join(docs, ".vuepress", "styles.styl"), "body {}")

	select {
	case source := <-triggered:
		t.Fatalf("unexpected trigger from %s", source)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStopTwice(t *testing.T) {
	configPath := newSite(t)
	w, err := NewWatcher(configPath, filepath.Dir(filepath.Dir(configPath)), 0, func(string) {})
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func drain(ch <-chan string) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
