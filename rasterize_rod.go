package specsheet

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-specsheet/internal/images"
	"github.com/alnah/go-specsheet/internal/process"
)

// rasterizeJS loads an image in the page and redraws it onto a white canvas
// at natural size (600x600 when unknown), resolving to a PNG data URL.
const rasterizeJS = `(url) => new Promise((resolve, reject) => {
	const img = new Image();
	img.crossOrigin = "anonymous";
	img.onload = () => {
		const w = img.naturalWidth || 600;
		const h = img.naturalHeight || 600;
		const canvas = document.createElement("canvas");
		canvas.width = w;
		canvas.height = h;
		const g = canvas.getContext("2d");
		g.fillStyle = "#ffffff";
		g.fillRect(0, 0, w, h);
		g.drawImage(img, 0, 0, w, h);
		resolve(canvas.toDataURL("image/png"));
	};
	img.onerror = () => reject(new Error("image failed to load"));
	img.src = url;
})`

const pngDataURLPrefix = "data:image/png;base64,"

// rodRasterizer rasterizes images in headless Chrome via go-rod. The browser
// handles formats and redirects the Go decoders cannot.
// Rod automatically downloads Chromium on first run if not found.
type rodRasterizer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// Compile-time interface check.
var _ images.Rasterizer = (*rodRasterizer)(nil)

// newRodRasterizer creates a rodRasterizer; the browser starts on first use.
func newRodRasterizer(timeout time.Duration) *rodRasterizer {
	return &rodRasterizer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRasterizer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	r.launcher = l
	return browser, nil
}

// Rasterize loads url in a blank page and returns the redrawn bitmap.
func (r *rodRasterizer) Rasterize(ctx context.Context, url string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	res, err := page.Evaluate(rod.Eval(rasterizeJS, url).ByPromise())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}

	return decodePNGDataURL(res.Value.Str())
}

// Close releases browser resources. Chrome helper processes that survive
// the CDP close are killed with the launcher's process group.
func (r *rodRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// decodePNGDataURL decodes a data:image/png;base64 URL.
func decodePNGDataURL(dataURL string) (image.Image, error) {
	payload, ok := strings.CutPrefix(dataURL, pngDataURLPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected data URL", ErrRasterize)
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	return img, nil
}
