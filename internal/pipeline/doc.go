// Package pipeline turns catalog rich text into the plain text drawn on a
// spec sheet.
//
// Product descriptions arrive as plain text, Markdown or HTML. The pipeline
// runs them through two stages:
//   - Markdown to HTML via Goldmark, with tables, strikethrough and
//     bare links; raw HTML passes through
//   - HTML to plain text flattening via golang.org/x/net/html
//
// The package also resolves asset references returned by the catalog
// (relative upload paths) against the API base URL.
package pipeline
