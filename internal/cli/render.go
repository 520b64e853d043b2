package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/samvad-hq/crypto-news-sdk/pkg/cryptonews"
)

const maxTitleWidth = 70

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderArticles(w io.Writer, articles []cryptonews.Article) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Source", "Published", "Title", "URL"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Title", WidthMax: maxTitleWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	for _, a := range articles {
		t.AppendRow(table.Row{a.ID, a.Source, formatTime(a.Time, a.TimeStr), a.Title, a.URL})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d articles", len(articles)), ""})
	t.Render()
}

func renderSentiment(w io.Writer, res cryptonews.SentimentResult) {
	t := newTable(w)
	t.SetTitle(fmt.Sprintf("Sentiment (%s): %d articles", res.Interval, res.TotalArticles))
	t.AppendHeader(table.Row{"Type", "Count", "Percentage"})
	for _, item := range res.SentimentSummary {
		t.AppendRow(table.Row{item.Type, item.Count, fmt.Sprintf("%.1f%%", item.Percentage)})
	}
	t.Render()
}

func renderDetail(w io.Writer, d cryptonews.ArticleDetail) {
	t := newTable(w)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: maxTitleWidth, WidthMaxEnforcer: text.WrapSoft},
	})
	category := ""
	if d.Category != nil {
		category = *d.Category
	}
	t.AppendRows([]table.Row{
		{"ID", d.ID},
		{"Source", d.Source},
		{"Title", d.Title},
		{"Author", d.Author},
		{"Category", category},
		{"Published", d.PublishedAt.UTC().Format(time.RFC3339)},
		{"URL", d.URL},
		{"Summary", d.Summary},
	})
	t.Render()

	var b strings.Builder
	writeBlocks(&b, d.Content, 0)
	fmt.Fprint(w, b.String())
}

// writeBlocks prints content blocks as indented plain text.
func writeBlocks(b *strings.Builder, blocks []cryptonews.ContentBlock, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, blk := range blocks {
		switch blk.Type {
		case cryptonews.BlockHeading:
			fmt.Fprintf(b, "\n%s%s %s\n", indent, strings.Repeat("#", max(blk.Level, 1)), blk.Text)
		case cryptonews.BlockParagraph, cryptonews.BlockText:
			if blk.Text != "" {
				fmt.Fprintf(b, "%s%s\n", indent, blk.Text)
			}
			if blk.Code != "" {
				fmt.Fprintf(b, "%s```\n%s\n%s```\n", indent, blk.Code, indent)
			}
		case cryptonews.BlockQuote:
			fmt.Fprintf(b, "%s> %s\n", indent, blk.Text)
			if blk.Author != "" {
				fmt.Fprintf(b, "%s>   %s\n", indent, blk.Author)
			}
		case cryptonews.BlockList:
			for i, item := range blk.Items {
				marker := "-"
				if blk.Ordered {
					marker = fmt.Sprintf("%d.", i+1)
				}
				fmt.Fprintf(b, "%s%s %s\n", indent, marker, item)
			}
		case cryptonews.BlockImage:
			fmt.Fprintf(b, "%s[image] %s\n", indent, firstOf(blk.Caption, blk.Alt, blk.URL))
		case cryptonews.BlockLink:
			fmt.Fprintf(b, "%s%s <%s>\n", indent, blk.Text, blk.URL)
		default:
			if blk.Text != "" {
				fmt.Fprintf(b, "%s%s\n", indent, blk.Text)
			}
			writeBlocks(b, blk.Content, depth+1)
		}
	}
}

func renderSources(w io.Writer, sources []cryptonews.Source) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Source", "Detail"})
	for _, s := range sources {
		detail := "no"
		if s.HasDetail() {
			detail = "yes"
		}
		t.AppendRow(table.Row{s, detail})
	}
	t.Render()
}

func formatTime(ts *time.Time, fallback string) string {
	if ts == nil {
		return fallback
	}
	return ts.UTC().Format(time.RFC3339)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
