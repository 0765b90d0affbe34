package fetch

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ParseResult holds what the company evaluator needs from a page.
type ParseResult struct {
	// Title is the text of the <title> element.
	Title string

	// Text is the visible text of the page with whitespace collapsed.
	// Script, style and template contents are excluded.
	Text string

	// Lines is the visible text split at block elements and line
	// breaks, with whitespace collapsed and empty lines dropped.
	Lines []string

	// Links are absolute URLs of every anchor on the page.
	Links []string

	// InternalLinks point to the same host as the page.
	InternalLinks []string

	// ExternalLinks point to other hosts.
	ExternalLinks []string

	// MetaTags maps meta name or OpenGraph property to content.
	MetaTags map[string]string

	// Emails found anywhere in the visible text or mailto links.
	Emails []string
}

// Description returns the meta description, falling back to og:description.
func (r *ParseResult) Description() string {
	if d := r.MetaTags["description"]; d != "" {
		return d
	}
	return r.MetaTags["og:description"]
}

// hiddenElements hold text that is never rendered.
var hiddenElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// blockElements start a new line of visible text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

// Parser extracts content from HTML documents relative to a base URL.
type Parser struct {
	baseURL *url.URL
}

// NewParser creates a Parser that resolves links against baseURL.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse reads an HTML document.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links:         make([]string, 0),
		InternalLinks: make([]string, 0),
		ExternalLinks: make([]string, 0),
		MetaTags:      make(map[string]string),
	}

	var text strings.Builder
	var mailtos []string

	var walk func(*html.Node, bool)
	walk = func(n *html.Node, hidden bool) {
		block := false
		switch n.Type {
		case html.ElementNode:
			if hiddenElements[n.Data] {
				hidden = true
			}
			block = blockElements[n.Data]
			if block {
				text.WriteString("\n")
			}
			if addr := p.processElement(n, result); addr != "" {
				mailtos = append(mailtos, addr)
			}
		case html.TextNode:
			if !hidden {
				text.WriteString(n.Data)
				text.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, hidden)
		}
		if block {
			text.WriteString("\n")
		}
	}
	walk(doc, false)

	result.Text = strings.Join(strings.Fields(text.String()), " ")
	for line := range strings.SplitSeq(text.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			result.Lines = append(result.Lines, line)
		}
	}
	result.Emails = uniqueLower(append(mailtos, emailRegex.FindAllString(result.Text, -1)...))

	return result, nil
}

// processElement records titles, meta tags and links. It returns the
// address of a mailto link, if the element is one.
func (p *Parser) processElement(n *html.Node, result *ParseResult) string {
	switch n.Data {
	case "title":
		if result.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			result.Title = strings.TrimSpace(n.FirstChild.Data)
		}

	case "meta":
		name := getAttr(n, "name")
		if name == "" {
			name = getAttr(n, "property")
		}
		content := getAttr(n, "content")
		if name != "" && content != "" {
			result.MetaTags[strings.ToLower(name)] = content
		}

	case "a":
		href := strings.TrimSpace(getAttr(n, "href"))
		if addr, ok := strings.CutPrefix(href, "mailto:"); ok {
			addr, _, _ = strings.Cut(addr, "?")
			return addr
		}
		if resolved := p.resolveURL(href); resolved != "" {
			result.Links = append(result.Links, resolved)
			p.classifyLink(resolved, result)
		}
	}
	return ""
}

// resolveURL resolves href against the base URL. Non-navigational
// schemes and fragment-only links yield an empty string.
func (p *Parser) resolveURL(href string) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(strings.ToLower(href), scheme) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.baseURL.ResolveReference(u).String()
}

func (p *Parser) classifyLink(link string, result *ParseResult) {
	u, err := url.Parse(link)
	if err != nil {
		return
	}
	if strings.EqualFold(u.Hostname(), p.baseURL.Hostname()) {
		result.InternalLinks = append(result.InternalLinks, link)
		return
	}
	result.ExternalLinks = append(result.ExternalLinks, link)
}

var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

func uniqueLower(values []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
