// Package batch runs every certificate job listed in the configuration.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"certgen/internal/certificate"
	"certgen/internal/config"
	"certgen/internal/logger"
	"certgen/internal/meter"
	"certgen/internal/metrics"
)

const StatusSuccess = "SUCCESS"

// ErrIncompleteJob marks a job entry missing a required field.
var ErrIncompleteJob = errors.New("incomplete job")

// JobResult is the outcome of one job.
type JobResult struct {
	Name   string
	Count  int
	Status string
	Err    error
}

// OK reports whether the job succeeded.
func (r JobResult) OK() bool {
	return r.Err == nil
}

type Summary struct {
	Jobs []JobResult
}

// Failed returns the number of failed jobs.
func (s Summary) Failed() int {
	n := 0
	for _, j := range s.Jobs {
		if !j.OK() {
			n++
		}
	}
	return n
}

// Certificates returns the number of sheets written across all jobs.
func (s Summary) Certificates() int {
	n := 0
	for _, j := range s.Jobs {
		n += j.Count
	}
	return n
}

// Print writes the end-of-run table.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintln(w, "\n=== SUMMARY ===")
	for _, j := range s.Jobs {
		fmt.Fprintf(w, "%s : %d certificates - %s\n", j.Name, j.Count, j.Status)
	}
	fmt.Fprintf(w, "\nTotal: %d certificates, %d of %d jobs failed\n", s.Certificates(), s.Failed(), len(s.Jobs))
}

// Run processes cfg.Jobs in order. A failing job is recorded and the next one
// still runs.
func Run(ctx context.Context, cfg *config.Config, gen *certificate.Generator, out io.Writer) Summary {
	var summary Summary
	for i, job := range cfg.Jobs {
		name := job.Name
		if name == "" {
			name = job.SheetPrefix
		}
		if name == "" {
			name = fmt.Sprintf("job %d", i+1)
		}
		fmt.Fprintf(out, "\n[%d/%d] Processing %s...\n", i+1, len(cfg.Jobs), name)

		res := runJob(ctx, cfg, gen, job)
		res.Name = name
		if res.OK() {
			fmt.Fprintf(out, "✓ Created %d certificates in %s\n", res.Count, cfg.Resolve(job.OutputFile))
		} else {
			fmt.Fprintf(out, "❌ %s\n", res.Err)
		}
		summary.Jobs = append(summary.Jobs, res)
	}
	return summary
}

func runJob(ctx context.Context, cfg *config.Config, gen *certificate.Generator, job config.JobConfig) JobResult {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		metrics.ObserveJob(false, 0, 0)
		return JobResult{Status: "FAILED: cancelled", Err: err}
	}
	if field := job.Missing(); field != "" {
		err := fmt.Errorf("%w: %s is required", ErrIncompleteJob, field)
		metrics.ObserveJob(false, 0, 0)
		logger.Error("Job skipped", "job", job.Name, "missing", field)
		return JobResult{Status: "FAILED: " + field + " is required", Err: err}
	}

	req := certificate.Request{
		InputPath:    cfg.Resolve(job.InputFile),
		TemplatePath: cfg.Resolve(cfg.TemplateFile),
		OutputPath:   cfg.Resolve(job.OutputFile),
		SheetPrefix:  job.SheetPrefix,
		Input: meter.Options{
			Sheet:    cfg.Input.Sheet,
			StartRow: cfg.Input.StartRow,
		},
	}

	res, err := gen.Generate(ctx, req, nil)
	metrics.ObserveJob(err == nil, res.Count, time.Since(start))
	if err != nil {
		logger.Error("Job failed", "job", job.Name, "input", req.InputPath, "error", err)
		return JobResult{Status: statusFor(err, req), Err: err}
	}
	return JobResult{Count: res.Count, Status: StatusSuccess}
}

// statusFor renders err as "FAILED: <reason>", naming the file involved.
func statusFor(err error, req certificate.Request) string {
	reason := err.Error()
	switch {
	case errors.Is(err, certificate.ErrInputNotFound):
		reason = "input file not found: " + req.InputPath
	case errors.Is(err, certificate.ErrTemplateNotFound):
		reason = "template file not found: " + req.TemplatePath
	case errors.Is(err, certificate.ErrFileLocked):
		reason = "output file is open in another program: " + req.OutputPath
	case errors.Is(err, certificate.ErrNoRecords):
		reason = "no meter records found in " + req.InputPath
	case errors.Is(err, certificate.ErrAutomationUnavailable):
		reason = "spreadsheet application not available"
	case errors.Is(err, context.Canceled):
		reason = "cancelled"
	}
	return "FAILED: " + reason
}
