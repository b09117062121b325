package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// listBullet prefixes list items in flattened text.
const listBullet = "- "

// blockElements start and end a line when flattened.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Blockquote: true, atom.Pre: true,
	atom.Table: true, atom.Tr: true, atom.Hr: true,
}

// skippedElements are dropped with their content.
var skippedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Head: true, atom.Template: true,
}

// PlainText flattens an HTML fragment to text. Block elements become line
// breaks, list items get a bullet, runs of whitespace collapse to one space
// and blank lines are squeezed to at most one.
func PlainText(htmlContent string) (string, error) {
	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		return "", err
	}

	var w textWriter
	for _, n := range nodes {
		w.walk(n, false)
	}
	return w.String(), nil
}

// textWriter accumulates flattened text line by line.
type textWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *textWriter) walk(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data, pre)
		return
	case html.ElementNode:
	case html.DocumentNode:
	default:
		return
	}

	if skippedElements[n.DataAtom] {
		return
	}

	block := blockElements[n.DataAtom]
	switch {
	case n.DataAtom == atom.Br:
		w.newline()
		return
	case block:
		w.breakLine()
		if n.DataAtom == atom.P || isHeading(n.DataAtom) {
			w.paragraph()
		}
	case n.DataAtom == atom.Td || n.DataAtom == atom.Th:
		if w.cur.Len() > 0 {
			w.cur.WriteByte(' ')
		}
	}
	if n.DataAtom == atom.Li {
		w.cur.WriteString(listBullet)
	}

	inPre := pre || n.DataAtom == atom.Pre
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, inPre)
	}

	if block {
		w.breakLine()
	}
}

func (w *textWriter) text(s string, pre bool) {
	if pre {
		parts := strings.Split(s, "\n")
		for i, p := range parts {
			if i > 0 {
				w.newline()
			}
			w.cur.WriteString(p)
		}
		return
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" && w.cur.Len() > 0 {
			w.space()
		}
		return
	}
	if startsWithSpace(s) {
		w.space()
	}
	w.cur.WriteString(strings.Join(fields, " "))
	if endsWithSpace(s) {
		w.space()
	}
}

func (w *textWriter) space() {
	line := w.cur.String()
	if line == "" || strings.HasSuffix(line, " ") || line == listBullet {
		return
	}
	w.cur.WriteByte(' ')
}

// newline ends the current line even when empty.
func (w *textWriter) newline() {
	w.lines = append(w.lines, strings.TrimRight(w.cur.String(), " "))
	w.cur.Reset()
}

// breakLine ends the current line if it has content.
func (w *textWriter) breakLine() {
	line := w.cur.String()
	if line == listBullet {
		return
	}
	if strings.TrimSpace(line) != "" {
		w.newline()
	}
	w.cur.Reset()
}

// paragraph separates a new paragraph from preceding text by a blank line.
func (w *textWriter) paragraph() {
	if w.cur.String() == listBullet {
		return
	}
	if len(w.lines) > 0 && w.lines[len(w.lines)-1] != "" {
		w.lines = append(w.lines, "")
	}
}

func (w *textWriter) String() string {
	w.breakLine()

	out := make([]string, 0, len(w.lines))
	for _, line := range w.lines {
		line = strings.TrimSpace(line)
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func isHeading(a atom.Atom) bool {
	switch a {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t\r\n") != s
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t\r\n") != s
}
