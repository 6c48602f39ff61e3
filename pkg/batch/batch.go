// Package batch runs a Codec over a list of files, one output file per
// input, continuing past per-file failures.
package batch

import (
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/zeebo/errs"

	"github.com/jtolio/shift/pkg/enc"
	"github.com/jtolio/shift/pkg/utils"
)

var (
	ErrMissingInput = errs.Class("missing input")
	ErrIO           = errs.Class("io error")
)

// FileJob pairs one input with its output for a single run.
type FileJob struct {
	Input     string
	Output    string
	Direction enc.Direction
}

// Outcome is what happened to one FileJob. Err is nil on success.
type Outcome struct {
	Job   FileJob
	Bytes int64
	Err   error
}

// Result lists the outcome of every input, in input order.
type Result struct {
	Outcomes []Outcome
}

// Failed returns the outcomes that have an error.
func (r *Result) Failed() (rv []Outcome) {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			rv = append(rv, o)
		}
	}
	return rv
}

// Succeeded returns the outcomes without an error.
func (r *Result) Succeeded() (rv []Outcome) {
	for _, o := range r.Outcomes {
		if o.Err == nil {
			rv = append(rv, o)
		}
	}
	return rv
}

// ExitCode is the process exit status for a completed batch. Processing
// is best effort: it is 0 even when some files failed. Callers that care
// about partial failure should look at Failed.
func (r *Result) ExitCode() int { return 0 }

// Config configures a Driver. The zero value of every field except Codec
// is usable.
type Config struct {
	Codec     enc.Codec
	ChunkSize int
	// OutputDir is where outputs are written. Empty means the current
	// working directory.
	OutputDir string
	// Atomic writes each output to a temporary file and renames it into
	// place, so failed jobs leave no partial output behind.
	Atomic bool
	Log    utils.Logger
}

// Driver processes batches of files.
type Driver struct {
	codec     enc.Codec
	chunkSize int
	outputDir string
	atomic    bool
	log       utils.Logger
}

// NewDriver returns a Driver for the given configuration.
func NewDriver(cfg Config) *Driver {
	if cfg.Codec == nil {
		cfg.Codec = enc.NewShiftCodec(enc.DefaultKey)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Log == nil {
		cfg.Log = utils.DefaultLogger
	}
	return &Driver{
		codec:     cfg.Codec,
		chunkSize: cfg.ChunkSize,
		outputDir: cfg.OutputDir,
		atomic:    cfg.Atomic,
		log:       cfg.Log,
	}
}

// Jobs derives the FileJob for every input path.
func (d *Driver) Jobs(dir enc.Direction, paths []string) []FileJob {
	jobs := make([]FileJob, 0, len(paths))
	suffix := Suffix(dir)
	for _, path := range paths {
		jobs = append(jobs, FileJob{
			Input:     path,
			Output:    filepath.Join(d.outputDir, OutputName(path, suffix)),
			Direction: dir,
		})
	}
	return jobs
}

// Process runs every path through the Driver's codec in direction dir.
// Each file is handled on its own: a missing or failing file is logged
// and recorded in the Result, and the rest of the batch still runs.
func (d *Driver) Process(dir enc.Direction, paths []string) *Result {
	jobs := d.Jobs(dir, paths)
	rv := &Result{Outcomes: make([]Outcome, 0, len(jobs))}
	for _, job := range jobs {
		n, err := d.run(job)
		if err != nil {
			d.log.Urgentf("Error: %v", err)
		} else {
			d.log.Normalf("File '%s' %sed successfully to '%s' (%s).",
				job.Input, job.Direction.Mode(), job.Output, utils.ByteFmt(n))
		}
		rv.Outcomes = append(rv.Outcomes, Outcome{Job: job, Bytes: n, Err: err})
	}
	return rv
}

func (d *Driver) run(job FileJob) (n int64, err error) {
	info, err := os.Stat(job.Input)
	if err != nil {
		return 0, ErrMissingInput.New("file '%s' does not exist", job.Input)
	}
	if info.IsDir() {
		return 0, ErrIO.New("unable to open input file '%s': is a directory", job.Input)
	}

	src, err := os.Open(job.Input)
	if err != nil {
		return 0, ErrIO.New("unable to open input file '%s': %v", job.Input, err)
	}
	defer func() { err = errs.Combine(err, wrapClose(src, job.Input)) }()

	d.log.Debugf("%s %q -> %q", job.Direction, job.Input, job.Output)

	if d.atomic {
		return d.runAtomic(job, src)
	}

	dst, err := os.Create(job.Output)
	if err != nil {
		return 0, ErrIO.New("unable to create output file '%s': %v", job.Output, err)
	}
	defer func() { err = errs.Combine(err, wrapClose(dst, job.Output)) }()

	n, err = enc.Transform(dst, src, d.codec, job.Direction, d.chunkSize)
	if err != nil {
		return n, ErrIO.New("failed to %s '%s' to '%s': %v", job.Direction, job.Input, job.Output, err)
	}
	return n, nil
}

func (d *Driver) runAtomic(job FileJob, src io.Reader) (int64, error) {
	cr := &countingReader{r: enc.NewReader(src, d.codec, job.Direction, d.chunkSize)}
	err := atomic.WriteFile(job.Output, cr)
	if err != nil {
		return cr.n, ErrIO.New("failed to %s '%s' to '%s': %v", job.Direction, job.Input, job.Output, err)
	}
	return cr.n, nil
}

func wrapClose(c io.Closer, path string) error {
	if err := c.Close(); err != nil {
		return ErrIO.New("closing '%s': %v", path, err)
	}
	return nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (n int, err error) {
	n, err = c.r.Read(p)
	c.n += int64(n)
	return n, err
}
