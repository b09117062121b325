package specsheet

import (
	"strings"

	"github.com/alnah/go-specsheet/internal/images"
	"github.com/alnah/go-specsheet/internal/layout"
)

// Footer geometry in millimetres.
const (
	footerLogoHeight       = 5.0
	footerLogoDefaultWidth = 30.0
	footerTextSize         = 7.0
	footerTextLift         = 1.0
	footerGrey             = 120
	footerSeparator        = " - "
)

// footerRenderer draws the running footer: logo bottom left, date and text
// bottom right, inside the page margin.
type footerRenderer struct {
	logo  *images.Image
	logoW float64
	line  string
}

// newFooterRenderer prepares the footer for one document. A nil logo hides it.
func newFooterRenderer(logo *images.Image, date, text string) footerRenderer {
	var parts []string
	for _, p := range []string{date, text} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	f := footerRenderer{logo: logo, line: strings.Join(parts, footerSeparator)}
	if logo != nil {
		f.logoW = footerLogoDefaultWidth
		if logo.Width > 0 && logo.Height > 0 {
			f.logoW = logo.AspectRatio() * footerLogoHeight
		}
	}
	return f
}

// draw renders the footer on the current page.
func (f footerRenderer) draw(c layout.Canvas, cfg layout.Config) {
	bottom := cfg.PageHeight - cfg.Margin

	if f.logo != nil {
		c.Image(f.logo, cfg.Margin, bottom-footerLogoHeight, f.logoW, footerLogoHeight)
	}
	if f.line == "" {
		return
	}
	c.SetFont(layout.Regular, footerTextSize)
	c.SetTextColor(footerGrey)
	w := c.StringWidth(f.line, layout.Regular, footerTextSize)
	c.Text(cfg.PageWidth-cfg.Margin-w, bottom-footerTextLift, f.line)
}
