package readers

import (
	"bytes"
	"strings"

	"github.com/inful/mdfp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLReader reads hand-written HTML documents: the <title> and
// <meta name content> tags become metadata, the <body> children the content.
type HTMLReader struct{}

func NewHTMLReader() *HTMLReader { return &HTMLReader{} }

func (r *HTMLReader) Extensions() []string {
	return []string{"html", "htm"}
}

func (r *HTMLReader) Read(_ string, raw []byte) (*Document, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	var body *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				if n.FirstChild != nil {
					fields["title"] = strings.TrimSpace(n.FirstChild.Data)
				}
			case atom.Meta:
				name, content := attr(n, "name"), attr(n, "content")
				if name != "" {
					fields[strings.ToLower(name)] = content
				}
			case atom.Body:
				body = n
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var buf bytes.Buffer
	if body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return nil, err
			}
		}
	}
	content := strings.TrimSpace(buf.String())

	return &Document{
		Metadata:    fields,
		Body:        content,
		Fingerprint: mdfp.CalculateFingerprintFromParts("", content),
	}, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
