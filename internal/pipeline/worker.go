package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/heatsheet/internal/convert"
	"github.com/dgallion1/heatsheet/internal/sink"
)

// Worker processes a single document job.
type Worker struct {
	conv  *convert.Converter
	stats *Stats
	log   *slog.Logger
}

func NewWorker(conv *convert.Converter, stats *Stats, log *slog.Logger) *Worker {
	return &Worker{
		conv:  conv,
		stats: stats,
		log:   log,
	}
}

// Process converts the job's document and renders the CSV. Each job is
// converted start to finish on the calling goroutine.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename, "club", job.Club)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	rows, err := w.process(job, log)
	if w.stats != nil {
		w.stats.Record(time.Since(start), rows, err != nil)
	}
	if err != nil {
		job.AddError(err.Error())
		return
	}
	log.Info("conversion complete", "rows", rows, "duration_ms", time.Since(start).Milliseconds())
}

func (w *Worker) process(job *Job, log *slog.Logger) (int, error) {
	// Phase 1: Extract text.
	job.SetStatus(StatusExtracting, "extracting")
	text, err := w.conv.Extract(bytes.NewReader(job.FileData()), job.Filename)
	job.releaseFileData()
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.SetStatus(StatusFailed, "extracting")
		return 0, err
	}

	// Phase 2: Scan, assemble and flatten.
	job.SetStatus(StatusAssembling, "assembling")
	res, err := w.conv.Text(text, job.Club)
	if err != nil {
		log.Error("assembly failed", "error", err)
		job.SetStatus(StatusFailed, "assembling")
		return 0, err
	}

	// Phase 3: Render CSV.
	job.SetStatus(StatusWriting, "writing")
	var buf bytes.Buffer
	if err := sink.WriteCSV(&buf, res.Rows); err != nil {
		log.Error("csv write failed", "error", err)
		job.SetStatus(StatusFailed, "writing")
		return 0, fmt.Errorf("write csv: %w", err)
	}
	csv := buf.Bytes()
	job.SetResult(res, csv)

	// Phase 4: Verify nothing was lost or duplicated.
	if err := sink.Check(bytes.NewReader(csv), res.Starts); err != nil {
		log.Warn("row count check failed", "rows", len(res.Rows), "starts", res.Starts, "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusPartial, "done")
		return len(res.Rows), nil
	}
	job.SetStatus(StatusCompleted, "done")
	return len(res.Rows), nil
}
