// Package assets provides the logo drawn in every spec sheet footer.
//
// Logos are looked up by bare name. A configured directory is searched
// first, as {dir}/logos/{name}.png, .jpg or .jpeg, and the logos compiled
// into the binary are the fallback.
//
// Names are restricted to ASCII letters, digits, '-' and '_'. File content
// must start with the PNG or JPEG signature matching its extension and may
// not exceed MaxLogoSize.
package assets
