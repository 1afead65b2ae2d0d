// Package pipeline strips many files in parallel: it discovers them,
// identifies their language, strips each one on a bounded worker pool and
// writes the results.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/edstrip/internal/hints"
	"github.com/dusk-indust/edstrip/internal/strip"
)

// sniffLen is how much of a file is handed to shebang detection.
const sniffLen = 512

// Options selects the files of a run and where results go.
type Options struct {
	// InputDir is searched with Glob when Paths is empty. Output paths
	// below OutputDir mirror paths relative to InputDir.
	InputDir string

	// Paths lists files to strip explicitly. A file named here that maps
	// to no language fails; a discovered one is skipped.
	Paths []string

	Glob    string
	Exclude []string

	// OutputDir receives the stripped files. When empty and InPlace is
	// false, results are kept in FileResult.Output.
	OutputDir string
	InPlace   bool

	// Jobs bounds the number of files stripped at once; 0 means one per
	// CPU.
	Jobs int

	Hints hints.Hints
}

type job struct {
	path     string
	rel      string
	explicit bool
}

// Pipeline runs a Stripper over a set of files.
type Pipeline struct {
	stripper   *strip.Stripper
	opts       Options
	log        *slog.Logger
	onProgress func(Event)

	mu   sync.Mutex // serializes onProgress
	done int
}

// New creates a Pipeline. onProgress is called once per finished file,
// never concurrently; it may be nil.
func New(s *strip.Stripper, opts Options, log *slog.Logger, onProgress func(Event)) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		stripper:   s,
		opts:       opts,
		log:        log,
		onProgress: onProgress,
	}
}

// Run strips every selected file. Per-file problems are recorded in the
// summary and never stop the run; the returned error reports problems
// with the run itself, such as an invalid glob. When ctx is cancelled no
// new file is started, files already started are finished, and the rest
// are reported as skipped.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	jobs, err := p.jobs()
	if err != nil {
		return nil, err
	}

	jobsLimit := p.opts.Jobs
	if jobsLimit <= 0 {
		jobsLimit = runtime.NumCPU()
	}

	results := make([]FileResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(jobsLimit)

	for i, j := range jobs {
		if ctx.Err() != nil {
			results[i] = p.skip(j, "cancelled", len(jobs))
			continue
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = p.skip(j, "cancelled", len(jobs))
				return nil
			}
			results[i] = p.process(ctx, j)
			p.emit(results[i], len(jobs))
			return nil
		})
	}
	_ = g.Wait()

	return &Summary{Files: results, Elapsed: time.Since(start)}, nil
}

func (p *Pipeline) jobs() ([]job, error) {
	if len(p.opts.Paths) > 0 {
		jobs := make([]job, len(p.opts.Paths))
		for i, path := range p.opts.Paths {
			jobs[i] = job{path: path, rel: p.relative(path), explicit: true}
		}
		return jobs, nil
	}

	root := p.opts.InputDir
	if root == "" {
		root = "."
	}
	files, err := Discover(root, p.opts.Glob, p.opts.Exclude)
	if err != nil {
		return nil, err
	}
	jobs := make([]job, len(files))
	for i, rel := range files {
		jobs[i] = job{path: filepath.Join(root, rel), rel: rel}
	}
	return jobs, nil
}

// relative maps an explicit path below InputDir to its relative path and
// anything else to its base name.
func (p *Pipeline) relative(path string) string {
	if p.opts.InputDir != "" {
		rel, err := filepath.Rel(p.opts.InputDir, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return rel
		}
	}
	if p.opts.OutputDir == "" && !filepath.IsAbs(path) {
		return path
	}
	return filepath.Base(path)
}

func (p *Pipeline) process(ctx context.Context, j job) FileResult {
	start := time.Now()
	log := p.log.With("path", j.path)
	res := FileResult{Path: j.path, Rel: j.rel}

	fail := func(err error) FileResult {
		res.Status = StatusFailed
		res.Err = err
		res.Elapsed = time.Since(start)
		log.Warn("strip failed", "error", err)
		return res
	}

	info, err := os.Stat(j.path)
	if err != nil {
		return fail(err)
	}
	if info.IsDir() {
		return fail(fmt.Errorf("%s is a directory", j.path))
	}
	src, err := os.ReadFile(j.path)
	if err != nil {
		return fail(err)
	}

	hintKey := filepath.ToSlash(j.rel)
	if _, n := p.opts.Hints.Match(hintKey); n > 1 {
		log.Warn("multiple type hints match, the last one takes effect", "count", n)
	}
	def, err := p.stripper.Registry().Identify(hintKey, src[:min(len(src), sniffLen)], p.opts.Hints)
	if err != nil {
		if errors.Is(err, strip.ErrNoStripperFound) && !j.explicit {
			res.Status = StatusSkipped
			res.Err = err
			res.Elapsed = time.Since(start)
			log.Debug("no stripper found")
			return res
		}
		return fail(err)
	}
	res.Language = def.Name
	log = log.With("language", def.Name)

	out, err := p.stripper.StripWith(ctx, def, src)
	if err != nil {
		return fail(err)
	}
	res.Ranges = len(out.Ranges)
	res.Removed = out.Removed()
	res.Diagnostics = out.Diagnostics

	if err := p.write(j, src, out.Output, info.Mode().Perm(), &res); err != nil {
		return fail(err)
	}

	res.Status = StatusOK
	if out.HasWarnings() {
		res.Status = StatusWarned
		for _, d := range out.Diagnostics {
			log.Warn(d.String())
		}
	} else {
		log.Info("OK", "removed", res.Removed)
	}
	res.Elapsed = time.Since(start)
	return res
}

func (p *Pipeline) write(j job, src, out []byte, perm os.FileMode, res *FileResult) error {
	switch {
	case p.opts.OutputDir != "":
		dst := filepath.Join(p.opts.OutputDir, j.rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		return writeFileAtomic(dst, out, perm)
	case p.opts.InPlace:
		if bytes.Equal(src, out) {
			return nil
		}
		return writeFileAtomic(j.path, out, perm)
	default:
		res.Output = out
		return nil
	}
}

func (p *Pipeline) skip(j job, reason string, total int) FileResult {
	res := FileResult{Path: j.path, Rel: j.rel, Status: StatusSkipped, Err: errors.New(reason)}
	p.emit(res, total)
	return res
}

// emit sends a progress event if a callback is registered.
func (p *Pipeline) emit(res FileResult, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.onProgress == nil {
		return
	}
	ev := Event{Path: res.Path, Status: res.Status, Done: p.done, Total: total}
	switch {
	case res.Err != nil:
		ev.Message = res.Err.Error()
	case len(res.Diagnostics) > 0:
		ev.Message = res.Diagnostics[0].String()
	}
	p.onProgress(ev)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".edstrip-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
