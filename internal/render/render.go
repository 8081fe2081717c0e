// Package render drives the content pass: every content template becomes one
// output file at the mirrored path under the output directory.
package render

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/registry"
	"git.home.luguber.info/inful/sitebuilder/internal/scan"
)

// OutputExt is the extension output files carry in place of the template extension.
const OutputExt = ".html"

// Renderer writes rendered content pages under an output directory. Renders
// run in parallel across files; the registry view and the context are
// read-only by then and every file has a distinct destination.
type Renderer struct {
	view    *registry.View
	outDir  string
	workers int
}

// New creates a renderer targeting outDir.
func New(view *registry.View, outDir string) *Renderer {
	return &Renderer{
		view:    view,
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
	}
}

// job is one content template to render, captured during the walk.
type job struct {
	id  string
	rel string
}

// RenderTree walks contentRoot, renders every content template against data,
// and writes each result to the mirrored output path. The first render or
// write error aborts the pass. Returns the number of pages written.
func (r *Renderer) RenderTree(ctx context.Context, contentRoot string, data map[string]any) (int, error) {
	var jobs []job
	err := scan.Walk(contentRoot, func(e scan.Entry) error {
		jobs = append(jobs, job{id: e.ID, rel: e.Rel})
		return nil
	})
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	queue := make(chan job)
	for range min(r.workers, max(len(jobs), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if err := r.renderOne(j, data); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

	done := 0
feed:
	for _, j := range jobs {
		select {
		case queue <- j:
			done++
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}
	if err := ctx.Err(); err != nil {
		return 0, errors.Wrap(err, errors.CategoryRender, errors.SeverityFatal, "render pass canceled")
	}
	return done, nil
}

// renderOne renders a single content template and writes it to its mirrored
// destination, creating parent directories as needed.
func (r *Renderer) renderOne(j job, data map[string]any) error {
	dest := filepath.Join(r.outDir, strings.TrimSuffix(j.rel, scan.Ext)+OutputExt)

	out, err := r.view.Render(j.id, data)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.MkdirFailed(err, filepath.Dir(dest))
	}
	if err := atomic.WriteFile(dest, bytes.NewReader([]byte(out))); err != nil {
		return errors.WriteFailed(err, dest)
	}

	slog.Debug("Rendered page", logfields.Template(j.id), logfields.Destination(dest))
	return nil
}
