package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"git.home.luguber.info/inful/sitenav/internal/docset"
	"git.home.luguber.info/inful/sitenav/internal/editlink"
	"git.home.luguber.info/inful/sitenav/internal/logfields"
)

// PagesCmd implements the 'pages' command.
type PagesCmd struct {
	SiteFlags `embed:""`

	Git     bool     `help:"Read last-updated timestamps from git history (on by default when themeConfig.lastUpdated is set)"`
	Exclude []string `help:"Glob patterns of pages to leave out, e.g. drafts/*"`
	Format  string   `short:"f" default:"table" help:"Output format (table, csv, md or json)" enum:"table,csv,md,json"`
}

// pageRow is the JSON shape of one listed page.
type pageRow struct {
	Route       string     `json:"route"`
	Title       string     `json:"title"`
	File        string     `json:"file"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	EditLink    string     `json:"editLink,omitempty"`
}

func (p *PagesCmd) Run(g *Global, _ *CLI) error {
	ctx := context.Background()
	s, err := p.load(ctx, false, docset.Options{})
	if err != nil {
		return err
	}
	theme := s.Config.ThemeConfig
	s.Docs, err = docset.Discover(ctx, s.DocsRoot, docset.Options{
		Exclude:       p.Exclude,
		GitTimestamps: p.Git || theme.LastUpdated,
	})
	if err != nil {
		return err
	}

	if _, err := editlink.Build(theme, ""); err != nil {
		slog.Warn("Edit links disabled", logfields.Error(err))
		theme.EditLinks = false
	}

	rows := make([]pageRow, 0, s.Docs.Len())
	for _, doc := range s.Docs.Documents() {
		row := pageRow{Route: doc.Route, Title: doc.DisplayTitle(), File: doc.RelativePath}
		if !doc.LastUpdated.IsZero() {
			t := doc.LastUpdated.UTC()
			row.LastUpdated = &t
		}
		row.EditLink, _ = editlink.Build(theme, doc.RelativePath)
		rows = append(rows, row)
	}

	if p.Format == "json" {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	t := table.NewWriter()
	t.SetOutputMirror(g.out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Route", "Title", "File", "Last updated", "Edit link"})
	for _, row := range rows {
		updated := ""
		if row.LastUpdated != nil {
			updated = row.LastUpdated.Format(time.DateTime)
		}
		t.AppendRow(table.Row{row.Route, row.Title, row.File, updated, row.EditLink})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d pages", len(rows)), "", ""})

	switch p.Format {
	case "csv":
		t.RenderCSV()
	case "md":
		t.RenderMarkdown()
	default:
		t.Render()
	}
	return nil
}
