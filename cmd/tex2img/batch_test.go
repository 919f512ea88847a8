package main

// Notes:
// - runBatch is exercised with a fake renderer so no browser or rasterizer
//   is needed; real rendering is covered by the library integration tests.

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	tex2img "github.com/alnah/go-tex2img"
)

// fakeRenderer returns canned artifacts and records the order of inputs.
type fakeRenderer struct {
	rendered []string
	failOn   map[string]error
	closed   bool
}

func (f *fakeRenderer) Render(ctx context.Context, input tex2img.Input) (*tex2img.Result, error) {
	f.rendered = append(f.rendered, input.TeX)
	if err, ok := f.failOn[input.TeX]; ok {
		return nil, err
	}
	res := &tex2img.Result{SVG: []byte("<svg>" + input.TeX + "</svg>")}
	if !input.SVGOnly {
		res.PNG = []byte("png:" + input.TeX)
	}
	return res, nil
}

func (f *fakeRenderer) Close() error {
	f.closed = true
	return nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

func defaultParams(inDir, outDir string) batchParams {
	return batchParams{inputDir: inDir, outputDir: outDir, display: true}
}

func TestRunBatchWritesArtifactPairs(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), filepath.Join(t.TempDir(), "out")
	writeSource(t, inDir, "euler.tex", `e^{i\pi}+1=0`)
	writeSource(t, inDir, "gauss.tex", `\sum_{k=1}^n k`)

	r := &fakeRenderer{}
	stats, err := runBatch(context.Background(), r, discardLogger(), defaultParams(inDir, outDir))
	if err != nil {
		t.Fatalf("runBatch() error = %v", err)
	}

	if stats.written != 2 || stats.skipped != 0 || stats.failed != 0 {
		t.Errorf("stats = %+v, want 2 written", stats)
	}

	for _, base := range []string{"euler", "gauss"} {
		svg, err := os.ReadFile(filepath.Join(outDir, base+".svg"))
		if err != nil {
			t.Fatalf("reading %s.svg: %v", base, err)
		}
		if len(svg) == 0 {
			t.Errorf("%s.svg is empty", base)
		}
		if _, err := os.Stat(filepath.Join(outDir, base+".png")); err != nil {
			t.Errorf("missing %s.png: %v", base, err)
		}
	}
}

func TestRunBatchProcessesInSortedOrder(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, inDir, "c.tex", "third")
	writeSource(t, inDir, "a.tex", "first")
	writeSource(t, inDir, "b.tex", "second")

	r := &fakeRenderer{}
	if _, err := runBatch(context.Background(), r, discardLogger(), defaultParams(inDir, outDir)); err != nil {
		t.Fatalf("runBatch() error = %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(r.rendered) != len(want) {
		t.Fatalf("rendered %d equations, want %d", len(r.rendered), len(want))
	}
	for i, tex := range want {
		if r.rendered[i] != tex {
			t.Errorf("render order[%d] = %q, want %q", i, r.rendered[i], tex)
		}
	}
}

func TestRunBatchSkipsEmptySources(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, inDir, "blank.tex", "   \n\t  ")
	writeSource(t, inDir, "real.tex", "x^2")

	r := &fakeRenderer{}
	stats, err := runBatch(context.Background(), r, discardLogger(), defaultParams(inDir, outDir))
	if err != nil {
		t.Fatalf("runBatch() error = %v", err)
	}

	if stats.written != 1 || stats.skipped != 1 {
		t.Errorf("stats = %+v, want 1 written and 1 skipped", stats)
	}
	if _, err := os.Stat(filepath.Join(outDir, "blank.svg")); !os.IsNotExist(err) {
		t.Error("blank.svg written for empty source")
	}
	if _, err := os.Stat(filepath.Join(outDir, "real.svg")); err != nil {
		t.Errorf("real.svg missing after skip: %v", err)
	}
}

func TestRunBatchNoSourcesIsFatal(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), filepath.Join(t.TempDir(), "out")
	writeSource(t, inDir, "notes.txt", "not an equation")

	_, err := runBatch(context.Background(), &fakeRenderer{}, discardLogger(), defaultParams(inDir, outDir))
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("runBatch() error = %v, want %v", err, ErrNoSources)
	}

	// The output directory itself is ensured but must stay empty.
	entries, readErr := os.ReadDir(outDir)
	if readErr != nil {
		t.Fatalf("output dir not created: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("output dir has %d entries, want none", len(entries))
	}
}

func TestRunBatchFailFast(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, inDir, "a.tex", "good")
	writeSource(t, inDir, "b.tex", "bad")
	writeSource(t, inDir, "c.tex", "never")

	renderErr := errors.New("typesetting rejected input")
	r := &fakeRenderer{failOn: map[string]error{"bad": renderErr}}

	stats, err := runBatch(context.Background(), r, discardLogger(), defaultParams(inDir, outDir))
	if !errors.Is(err, renderErr) {
		t.Fatalf("runBatch() error = %v, want %v", err, renderErr)
	}

	// Fail-fast: c.tex is never rendered, a.tex's artifacts stay on disk.
	if len(r.rendered) != 2 {
		t.Errorf("rendered %d equations before abort, want 2", len(r.rendered))
	}
	if stats.written != 1 {
		t.Errorf("stats.written = %d, want 1", stats.written)
	}
	if _, statErr := os.Stat(filepath.Join(outDir, "a.svg")); statErr != nil {
		t.Errorf("earlier artifact cleaned up on abort: %v", statErr)
	}
}

func TestRunBatchKeepGoing(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, inDir, "a.tex", "good")
	writeSource(t, inDir, "b.tex", "bad")
	writeSource(t, inDir, "c.tex", "also good")

	r := &fakeRenderer{failOn: map[string]error{"bad": errors.New("boom")}}
	params := defaultParams(inDir, outDir)
	params.keepGoing = true

	stats, err := runBatch(context.Background(), r, discardLogger(), params)
	if err != nil {
		t.Fatalf("runBatch() error = %v, want nil with keepGoing", err)
	}
	if stats.written != 2 || stats.failed != 1 {
		t.Errorf("stats = %+v, want 2 written and 1 failed", stats)
	}
	if len(r.rendered) != 3 {
		t.Errorf("rendered %d equations, want all 3", len(r.rendered))
	}
}

func TestRunBatchSVGOnly(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, inDir, "a.tex", "x")

	params := defaultParams(inDir, outDir)
	params.svgOnly = true

	if _, err := runBatch(context.Background(), &fakeRenderer{}, discardLogger(), params); err != nil {
		t.Fatalf("runBatch() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "a.svg")); err != nil {
		t.Errorf("a.svg missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "a.png")); !os.IsNotExist(err) {
		t.Error("a.png written despite svg-only mode")
	}
}

func TestRunBatchCancelledContext(t *testing.T) {
	t.Parallel()

	inDir, outDir := t.TempDir(), t.TempDir()
	writeSource(t, inDir, "a.tex", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runBatch(ctx, &fakeRenderer{}, discardLogger(), defaultParams(inDir, outDir))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("runBatch() error = %v, want %v", err, context.Canceled)
	}
}

func TestRunBatchMissingInputDir(t *testing.T) {
	t.Parallel()

	params := defaultParams(filepath.Join(t.TempDir(), "absent"), t.TempDir())
	_, err := runBatch(context.Background(), &fakeRenderer{}, discardLogger(), params)
	if err == nil {
		t.Fatal("runBatch() with missing input dir: expected error, got nil")
	}
}
