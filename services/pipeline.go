package services

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"

	"readingrabbit/internal/logger"
	ocrtext "readingrabbit/internal/text"
	"readingrabbit/models"
)

// ProgressFunc receives pipeline progress once per processed frame. preview
// is the decoded frame for display and may be nil (final completion update).
// It is invoked from the pipeline goroutine; UI hosts marshal themselves.
type ProgressFunc func(preview image.Image, percent float64, eta time.Duration)

// Pipeline runs the sequential video-to-text extraction: read a frame, OCR
// it, optionally clean the text, append to the output file. Frames are
// processed strictly in order so output lines match frame order.
type Pipeline struct {
	config  *models.Config
	cleaner *CleanerService
}

// NewPipeline creates a pipeline. The cleaner is injected so its lifecycle
// and credentials stay under the caller's control.
func NewPipeline(config *models.Config, cleaner *CleanerService) *Pipeline {
	return &Pipeline{config: config, cleaner: cleaner}
}

// Process runs the full extraction for one job. Cancelling ctx stops the
// loop after the in-flight frame; the job is then marked cancelled. OCR
// failure on a single frame degrades to empty text and the run continues.
func (p *Pipeline) Process(ctx context.Context, job *models.ProcessingJob, onProgress ProgressFunc) error {
	logger.Info("Pipeline: processing %s", job.FileName)
	job.Status = models.StatusProcessing

	if p.config.Threads > 0 {
		gocv.SetNumThreads(p.config.Threads)
	}

	ocr, err := NewOCRService(OCROptions{
		Languages:         p.config.OCRLanguages,
		AdaptiveThreshold: p.config.OCRAdaptiveThreshold,
		OtsuThreshold:     p.config.OCROtsuThreshold,
	})
	if err != nil {
		job.Fail(err)
		return fmt.Errorf("OCR setup failed: %w", err)
	}
	defer ocr.Close()

	source, err := OpenFrameSource(job.InputPath)
	if err != nil {
		job.Fail(err)
		return err
	}
	defer source.Close()

	if err := os.MkdirAll(filepath.Dir(job.OutputPath), 0755); err != nil {
		job.Fail(err)
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	out, err := os.Create(job.OutputPath)
	if err != nil {
		job.Fail(err)
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer out.Close()
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	totalFrames := source.FrameCount()
	frame := gocv.NewMat()
	defer frame.Close()

	start := time.Now()
	frameIdx := 0
	cancelled := false

	for {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		if !source.Read(&frame) {
			break
		}
		frameIdx++

		text, err := ocr.ExtractText(frame)
		if err != nil {
			logger.Error("OCR failure on frame %d: %v", frameIdx, err)
			text = ""
		}
		text = ocrtext.Normalize(text)
		if text != "" && ocrtext.Legible(text) {
			cleaned := p.cleaner.Clean(ctx, text)
			if _, err := writer.WriteString(cleaned + "\n"); err != nil {
				job.Fail(err)
				return fmt.Errorf("cannot write output: %w", err)
			}
			writer.Flush()
		}

		percent := float64(frameIdx) / float64(totalFrames) * 100
		if percent > 100 {
			percent = 100
		}
		job.SetProgress(percent)

		if onProgress != nil {
			preview, _ := frame.ToImage()
			onProgress(preview, percent, estimateETA(start, frameIdx, totalFrames))
		}
	}

	if cancelled {
		job.Cancel()
		logger.Info("Pipeline: cancelled after %d frames", frameIdx)
		return nil
	}

	job.Complete()
	if onProgress != nil {
		// Short clips can finish between progress updates; always issue
		// the final 100% update.
		onProgress(nil, 100, 0)
	}
	logger.Info("Pipeline: completed %s (%d frames)", job.OutputPath, frameIdx)
	return nil
}

// estimateETA projects remaining time from the observed frame rate.
func estimateETA(start time.Time, done, total int) time.Duration {
	elapsed := time.Since(start)
	if done <= 0 || elapsed <= 0 || done >= total {
		return 0
	}
	perFrame := elapsed / time.Duration(done)
	return perFrame * time.Duration(total-done)
}
