package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/i474232898/hydromet/internal/common"
	"github.com/i474232898/hydromet/internal/hydromet"
)

// HTMLTableProvider implements hydromet.TableExtractor for station pages that
// publish their observations as an HTML table.
type HTMLTableProvider struct {
	name    string
	charset string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewHTMLTableProvider creates a provider. An empty pageCharset lets the
// Content-Type header and meta tags decide the encoding.
func NewHTMLTableProvider(client *http.Client, pageCharset string, retries int) *HTMLTableProvider {
	return &HTMLTableProvider{
		name:    "html-table",
		charset: pageCharset,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: "hydromet/1.0",
			Backoff: BackoffConfig{
				MaxRetries:      retries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newCircuitBreaker("html-table"),
	}
}

func (p *HTMLTableProvider) Name() string {
	return p.name
}

// FetchTable downloads url and returns the cells of its first table.
func (p *HTMLTableProvider) FetchTable(ctx context.Context, url string) ([][]string, error) {
	resp, err := getWithResilience(ctx, p.httpCfg, p.circuit, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := p.decode(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hydromet.ErrFetch, err)
	}

	rows, err := ExtractFirstTable(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", hydromet.ErrFetch, err)
	}
	return rows, nil
}

func (p *HTMLTableProvider) decode(r io.Reader, contentType string) (io.Reader, error) {
	if p.charset == "" {
		return charset.NewReader(r, contentType)
	}
	enc, err := htmlindex.Get(p.charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", p.charset, err)
	}
	return enc.NewDecoder().Reader(r), nil
}

// ExtractFirstTable parses an HTML document and returns the text of every
// <td> in every <tr> of its first <table>. Rows without <td> cells come back
// empty.
func ExtractFirstTable(r io.Reader) ([][]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	table := findFirst(doc, atom.Table)
	if table == nil {
		return nil, fmt.Errorf("no table found")
	}

	var rows [][]string
	for _, tr := range findAll(table, atom.Tr) {
		cells := []string{}
		for _, td := range findAll(tr, atom.Td) {
			cells = append(cells, nodeText(td))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns descendants of n matching a, in document order.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return common.CollapseSpaces(b.String())
}
