// Package images turns remote image URLs into payloads that can be embedded
// in a PDF page.
//
// # Contract
//
// Normalizer.Load never returns an error. Any failure on the direct fetch
// path or the fallback rasterizer path resolves to a nil *Image, and callers
// draw a placeholder box of the same size instead.
//
// # Paths
//
//  1. Direct fetch with no-cache headers, decode (JPEG, PNG, GIF, WebP, BMP,
//     TIFF), flatten transparency onto white, downscale, re-encode.
//  2. Fallback: the URL gets a nocache query parameter and is handed to a
//     Rasterizer, which draws it onto a white surface at its natural size
//     (600x600 when unknown).
//
// Successful loads are kept in a TTL cache and concurrent loads of the same
// URL are collapsed into one request.
package images
