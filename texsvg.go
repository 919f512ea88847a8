package tex2img

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-tex2img/internal/fileutil"
	"github.com/alnah/go-tex2img/internal/process"
)

// svgTypesetter abstracts LaTeX to SVG conversion to allow different backends.
type svgTypesetter interface {
	Typeset(ctx context.Context, tex string, display bool) (string, error)
	Close() error
}

// Compile-time interface check
var _ svgTypesetter = (*rodTypesetter)(nil)

// harnessHTML is the page loaded once per browser session. MathJax is
// configured with fontCache "none" so every emitted SVG is standalone:
// glyph paths are inlined instead of referenced through a shared cache,
// which both post-processing and out-of-page rasterization depend on.
const harnessHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>tex2img harness</title>
<script>
window.MathJax = {
  svg: { fontCache: "none" },
  startup: { typeset: false }
};
</script>
<script src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-svg.js"></script>
</head>
<body></body>
</html>`

// typesetJS converts one TeX string inside the harness page. TeX state is
// reset between calls so equation numbering cannot leak across files.
// MathJax reports bad input as a data-mjx-error node rather than throwing,
// so that case is turned into a thrown error here and surfaces through rod
// as an evaluation failure.
const typesetJS = `async (tex, display) => {
	await MathJax.startup.promise;
	MathJax.texReset();
	const container = MathJax.tex2svg(tex, { display: display });
	const errNode = container.querySelector("[data-mjx-error]");
	if (errNode) {
		throw new Error(errNode.getAttribute("data-mjx-error"));
	}
	return container.querySelector("svg").outerHTML;
}`

// rodTypesetter implements svgTypesetter using MathJax in headless Chrome.
// Rod automatically downloads Chromium on first run if not found. The
// browser and harness page are lazily created on first use and reused for
// every subsequent equation; each Typeset call is independent.
type rodTypesetter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	cleanup  func()
	timeout  time.Duration
}

// newRodTypesetter creates a rodTypesetter with the given timeout.
func newRodTypesetter(timeout time.Duration) *rodTypesetter {
	return &rodTypesetter{timeout: timeout}
}

// ensurePage lazily connects to the browser and loads the MathJax harness.
func (t *rodTypesetter) ensurePage() error {
	if t.page != nil {
		return nil
	}

	if t.browser == nil {
		// Configure launcher
		l := launcher.New()

		// Use pre-installed browser if specified (Docker/containerized environments)
		if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
			l = l.Bin(bin)
		}

		// NoSandbox required for CI and containerized environments
		if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
			l = l.NoSandbox(true)
		}
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}

		t.browser = rod.New().ControlURL(u)
		if err := t.browser.Connect(); err != nil {
			t.browser = nil
			l.Kill()
			return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}
		t.launcher = l
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(harnessHTML, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	page, err := t.browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpPath})
	if err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.Timeout(t.timeout).WaitLoad(); err != nil {
		_ = page.Close()
		cleanup()
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	t.page = page
	t.cleanup = cleanup
	return nil
}

// Typeset converts one LaTeX string into a serialized SVG document.
// Invalid LaTeX is reported as an error wrapping ErrTypeset.
func (t *rodTypesetter) Typeset(ctx context.Context, tex string, display bool) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := t.ensurePage(); err != nil {
		return "", err
	}

	timeout := t.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	obj, err := t.page.Context(ctx).Timeout(timeout).Eval(typesetJS, tex, display)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTypeset, err)
	}

	svg := obj.Value.Str()
	if svg == "" {
		return "", fmt.Errorf("%w: typesetting produced no SVG output", ErrTypeset)
	}
	return svg, nil
}

// Close releases browser resources and the harness temp file.
func (t *rodTypesetter) Close() error {
	var err error
	if t.page != nil {
		err = t.page.Close()
		t.page = nil
	}
	if t.browser != nil {
		if closeErr := t.browser.Close(); err == nil {
			err = closeErr
		}
		t.browser = nil
	}
	if t.launcher != nil {
		// Chrome sometimes leaves helper processes behind after a graceful
		// close; kill the whole tree so batch runs don't accumulate zombies.
		t.launcher.Kill()
		if pid := t.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		t.launcher = nil
	}
	if t.cleanup != nil {
		t.cleanup()
		t.cleanup = nil
	}
	return err
}
