package images

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Default raster surface used when an image reports no natural size.
const (
	DefaultSurfaceWidth  = 600
	DefaultSurfaceHeight = 600
)

// cacheBustParam is the query parameter appended on the fallback path.
const cacheBustParam = "nocache"

// TargetSize returns pixel dimensions for an image of srcW x srcH that fit
// inside maxW x maxH scaled by oversample, preserving the aspect ratio.
// Images are never upscaled beyond their source width.
// Invalid input returns the source size unchanged.
func TargetSize(srcW, srcH, maxW, maxH int, oversample float64) (w, h int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return srcW, srcH
	}
	if oversample <= 0 {
		oversample = 1
	}

	aspect := float64(srcW) / float64(srcH)
	limitW := float64(maxW) * oversample
	limitH := float64(maxH) * oversample

	fw := math.Min(float64(srcW), limitW)
	fh := fw / aspect
	if fh > limitH {
		fh = limitH
		fw = fh * aspect
	}

	w = max(int(math.Round(fw)), 1)
	h = max(int(math.Round(fh)), 1)
	return w, h
}

// Fit returns the largest size with the aspect ratio of srcW x srcH that fits
// in a boxW x boxH box. Units are whatever the caller uses for the box.
func Fit(srcW, srcH, boxW, boxH float64) (w, h float64) {
	if srcW <= 0 || srcH <= 0 {
		return boxW, boxH
	}
	scale := math.Min(boxW/srcW, boxH/srcH)
	return srcW * scale, srcH * scale
}

// SurfaceSize returns the raster surface for a decoded image: its natural
// size, or the default surface when either side is unknown.
func SurfaceSize(naturalW, naturalH int) (w, h int) {
	if naturalW <= 0 || naturalH <= 0 {
		return DefaultSurfaceWidth, DefaultSurfaceHeight
	}
	return naturalW, naturalH
}

// CacheBust appends nocache=<unix millis> to rawURL, using "&" when the URL
// already has a query string. Unparseable URLs get the parameter appended
// textually.
func CacheBust(rawURL string, now time.Time) string {
	stamp := strconv.FormatInt(now.UnixMilli(), 10)

	u, err := url.Parse(rawURL)
	if err != nil {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		return rawURL + sep + cacheBustParam + "=" + stamp
	}

	q := u.Query()
	q.Set(cacheBustParam, stamp)
	u.RawQuery = q.Encode()
	return u.String()
}
