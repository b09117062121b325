package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrRichText is returned when a description cannot be parsed as Markdown.
var ErrRichText = errors.New("rich text conversion failed")

// Flattener turns catalog descriptions into plain text.
type Flattener struct {
	md goldmark.Markdown
}

// NewFlattener returns a Flattener that reads GitHub-flavoured Markdown.
// Raw HTML passes through Markdown untouched and is flattened like the
// rest, since the result is drawn as text and never shown in a browser.
func NewFlattener() *Flattener {
	return &Flattener{md: goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithUnsafe()),
	)}
}

// Flatten converts Markdown or HTML to plain text. Blank input returns "".
func (f *Flattener) Flatten(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + len(content)/2)
	if err := f.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRichText, err)
	}
	return PlainText(buf.String())
}
