package cryptonews

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var blankLines = regexp.MustCompile(`\n\s*\n`)

// ParseContentBlocks derives a block tree from an article's raw body.
// Markup is walked element by element; plain text becomes one paragraph per
// blank-line separated chunk.
func ParseContentBlocks(raw string) ([]ContentBlock, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []ContentBlock{}, nil
	}
	if !strings.Contains(raw, "<") {
		return textParagraphs(raw), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse content markup: %w", err)
	}
	blocks := parseChildren(doc.Find("body").First())
	if blocks == nil {
		blocks = []ContentBlock{}
	}
	return blocks, nil
}

func textParagraphs(raw string) []ContentBlock {
	parts := blankLines.Split(raw, -1)
	out := make([]ContentBlock, 0, len(parts))
	for _, p := range parts {
		if text := collapseSpace(p); text != "" {
			out = append(out, ContentBlock{Type: BlockParagraph, Text: text})
		}
	}
	return out
}

func parseChildren(sel *goquery.Selection) []ContentBlock {
	var out []ContentBlock
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		if b, ok := parseNode(node); ok {
			out = append(out, b)
		}
	})
	return out
}

func parseNode(node *goquery.Selection) (ContentBlock, bool) {
	name := goquery.NodeName(node)
	switch name {
	case "#text":
		text := collapseSpace(node.Text())
		return ContentBlock{Type: BlockText, Text: text}, text != ""
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(name[1:])
		text := collapseSpace(node.Text())
		return ContentBlock{Type: BlockHeading, Level: level, Text: text}, text != ""
	case "p":
		if img := node.Find("img").First(); img.Length() > 0 && collapseSpace(node.Text()) == "" {
			return imageBlock(img, ""), true
		}
		text := collapseSpace(node.Text())
		return ContentBlock{Type: BlockParagraph, Text: text}, text != ""
	case "img":
		return imageBlock(node, ""), true
	case "figure":
		caption := collapseSpace(node.Find("figcaption").First().Text())
		if img := node.Find("img").First(); img.Length() > 0 {
			return imageBlock(img, caption), true
		}
		if frame := node.Find("iframe").First(); frame.Length() > 0 {
			b := embedBlock(frame)
			b.Caption = caption
			return b, true
		}
		return ContentBlock{Type: BlockDiv, Content: parseChildren(node)}, true
	case "blockquote":
		author := collapseSpace(node.Find("cite, footer").First().Text())
		quote := node.Clone()
		quote.Find("cite, footer").Remove()
		text := collapseSpace(quote.Text())
		return ContentBlock{Type: BlockQuote, Text: text, Author: author}, text != ""
	case "ul", "ol":
		var items []string
		node.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if t := collapseSpace(li.Text()); t != "" {
				items = append(items, t)
			}
		})
		return ContentBlock{Type: BlockList, Ordered: name == "ol", Items: items}, len(items) > 0
	case "a":
		href, _ := node.Attr("href")
		text := collapseSpace(node.Text())
		return ContentBlock{Type: BlockLink, URL: strings.TrimSpace(href), Text: text}, href != "" || text != ""
	case "pre", "code":
		code := strings.TrimSpace(node.Text())
		return ContentBlock{Type: BlockText, Code: code}, code != ""
	case "iframe":
		return embedBlock(node), true
	case "span", "strong", "em", "b", "i", "u", "small":
		children := parseChildren(node)
		if len(children) == 0 {
			return ContentBlock{}, false
		}
		return ContentBlock{Type: BlockSpan, Content: children}, true
	case "div", "section", "article", "main", "header", "aside":
		children := parseChildren(node)
		if len(children) == 0 {
			return ContentBlock{}, false
		}
		return ContentBlock{Type: BlockDiv, Content: children}, true
	case "script", "style", "noscript", "#comment", "br", "hr":
		return ContentBlock{}, false
	default:
		text := collapseSpace(node.Text())
		return ContentBlock{Type: BlockText, Text: text}, text != ""
	}
}

func imageBlock(img *goquery.Selection, caption string) ContentBlock {
	src, _ := img.Attr("src")
	if src == "" {
		src, _ = img.Attr("data-src")
	}
	alt, _ := img.Attr("alt")
	return ContentBlock{
		Type:    BlockImage,
		URL:     strings.TrimSpace(src),
		Alt:     strings.TrimSpace(alt),
		Caption: caption,
	}
}

// embedBlock renders an iframe as a link tagged with the embedding host.
func embedBlock(frame *goquery.Selection) ContentBlock {
	src, _ := frame.Attr("src")
	src = strings.TrimSpace(src)
	b := ContentBlock{Type: BlockLink, URL: src}
	if u, err := url.Parse(src); err == nil {
		b.Provider = strings.TrimPrefix(u.Hostname(), "www.")
	}
	return b
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
