package content

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never have a closing tag and are not tracked as open.
var voidElements = map[atom.Atom]bool{
	atom.Br: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Meta: true, atom.Link: true, atom.Area: true, atom.Base: true,
	atom.Col: true, atom.Embed: true, atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Summarize truncates an HTML fragment after maxWords words of text, appending
// " ..." and closing any tags still open at the cut. Fragments with at most
// maxWords words are returned unchanged.
func Summarize(fragment string, maxWords int) string {
	if maxWords <= 0 {
		return fragment
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	var out bytes.Buffer
	var open []string
	words := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return fragment
		case html.TextToken:
			text := string(z.Text())
			cut, n, done := takeWords(text, maxWords-words)
			words += n
			out.WriteString(html.EscapeString(cut))
			if done {
				out.WriteString(" ...")
				for i := len(open) - 1; i >= 0; i-- {
					out.WriteString("</" + open[i] + ">")
				}
				return out.String()
			}
		case html.StartTagToken:
			tok := z.Token()
			if !voidElements[tok.DataAtom] {
				open = append(open, tok.Data)
			}
			out.WriteString(tok.String())
		case html.EndTagToken:
			tok := z.Token()
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] == tok.Data {
					open = open[:i]
					break
				}
			}
			out.WriteString(tok.String())
		default:
			out.Write(z.Raw())
		}
	}
}

// takeWords returns the prefix of text holding at most limit words, the word
// count of that prefix and whether more words followed it.
func takeWords(text string, limit int) (string, int, bool) {
	count := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			if count == limit {
				return strings.TrimRightFunc(text[:i], unicode.IsSpace), count, true
			}
			count++
			inWord = true
		}
	}
	return text, count, false
}

// blockElements end a line when extracting plain text.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Pre: true, atom.Blockquote: true, atom.Table: true, atom.Ul: true, atom.Ol: true,
}

// PlainText strips tags from an HTML fragment, keeping one line per block element.
func PlainText(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseBlankLines(b.String())
		case html.TextToken:
			b.WriteString(string(z.Text()))
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockElements[atom.Lookup(name)] {
				b.WriteString("\n")
			}
		}
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
