// Frame transform pipeline: decode, transform, encode
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"basic-video-processing/internal/algorithms"
	"basic-video-processing/internal/metrics"
)

// Source yields decoded frames. Read returns false once no more frames can
// be produced, whether the stream ended or decoding failed.
type Source interface {
	Parameters() VideoParameters
	Read(frame *gocv.Mat) bool
	Close() error
}

// Sink consumes frames in the order they are written.
type Sink interface {
	Write(frame gocv.Mat) error
	Close() error
}

type SourceOpener func(path string) (Source, error)

type SinkOpener func(path string, params VideoParameters, isColor bool) (Sink, error)

// RunReport describes one finished or aborted run.
type RunReport struct {
	RunID         string          `json:"run_id"`
	Input         string          `json:"input"`
	Output        string          `json:"output"`
	Transform     string          `json:"transform"`
	Parameters    VideoParameters `json:"parameters"`
	IsColor       bool            `json:"is_color"`
	FramesRead    int             `json:"frames_read"`
	FramesWritten int             `json:"frames_written"`
	Duration      time.Duration   `json:"duration"`
}

// FrameTransformPipeline applies one transform to every frame of a video.
// Runs are sequential and share no state besides the logger, metrics and
// debugger.
type FrameTransformPipeline struct {
	openSource SourceOpener
	openSink   SinkOpener
	logger     *logrus.Logger
	metrics    *metrics.RunMetrics
	debugger   *PipelineDebugger
}

func NewFrameTransformPipeline(openSource SourceOpener, openSink SinkOpener, logger *logrus.Logger) *FrameTransformPipeline {
	return &FrameTransformPipeline{
		openSource: openSource,
		openSink:   openSink,
		logger:     logger,
		debugger:   NewPipelineDebugger(logger, false),
	}
}

func (p *FrameTransformPipeline) SetMetrics(m *metrics.RunMetrics) {
	p.metrics = m
}

func (p *FrameTransformPipeline) SetDebugger(d *PipelineDebugger) {
	p.debugger = d
}

// Run processes inputPath into outputPath. Source and sink are closed on
// every return path; close errors are joined into the returned error.
func (p *FrameTransformPipeline) Run(inputPath, outputPath string, transform algorithms.Transform) (report RunReport, err error) {
	start := time.Now()
	report = RunReport{
		RunID:     uuid.NewString(),
		Input:     inputPath,
		Output:    outputPath,
		Transform: transform.GetName(),
		IsColor:   transform.IsColorOutput(),
	}

	log := p.logger.WithFields(logrus.Fields{
		"run_id":    report.RunID,
		"input":     inputPath,
		"output":    outputPath,
		"transform": report.Transform,
	})

	defer func() {
		report.Duration = time.Since(start)
		p.metrics.ObserveRun(report.Transform, report.Duration, err)
		p.debugger.LogStatus()

		fields := logrus.Fields{
			"frames_read":    report.FramesRead,
			"frames_written": report.FramesWritten,
			"duration_ms":    report.Duration.Milliseconds(),
		}
		if err != nil {
			log.WithFields(fields).WithError(err).Error("Run failed")
			return
		}
		log.WithFields(fields).Info("Run completed")
	}()

	log.Info("Starting run")

	opStart := time.Now()
	source, err := p.openSource(inputPath)
	p.debugger.LogOperation("open_source", err == nil, time.Since(opStart), logrus.Fields{"path": inputPath}, err)
	if err != nil {
		return report, &OpenError{Role: RoleSource, Path: inputPath, Err: err}
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close source: %w", cerr))
		}
	}()

	report.Parameters = source.Parameters()
	log.WithField("parameters", report.Parameters.String()).Debug("Source parameters")

	opStart = time.Now()
	sink, err := p.openSink(outputPath, report.Parameters, report.IsColor)
	p.debugger.LogOperation("open_sink", err == nil, time.Since(opStart), logrus.Fields{
		"path":     outputPath,
		"is_color": report.IsColor,
	}, err)
	if err != nil {
		return report, &OpenError{Role: RoleSink, Path: outputPath, Err: err}
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close sink: %w", cerr))
		}
	}()

	// Registered last so it runs first: a transform panic becomes the run
	// error and the closes above still join into it.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during frame %d: %v", report.FramesRead-1, r)
		}
	}()

	err = p.processFrames(source, sink, transform, &report)
	return report, err
}

func (p *FrameTransformPipeline) processFrames(source Source, sink Sink, transform algorithms.Transform, report *RunReport) error {
	for {
		frame := gocv.NewMat()
		if !source.Read(&frame) {
			frame.Close()
			return nil
		}
		index := report.FramesRead
		report.FramesRead++

		out, err := p.transformFrame(transform, frame, index, report.Transform)
		frame.Close()
		if err != nil {
			return fmt.Errorf("transform frame %d: %w", index, err)
		}

		writeStart := time.Now()
		err = sink.Write(out)
		p.debugger.LogWrite(index, time.Since(writeStart), err)
		out.Close()
		if err != nil {
			return fmt.Errorf("write frame %d: %w", index, err)
		}
		report.FramesWritten++
	}
}

func (p *FrameTransformPipeline) transformFrame(transform algorithms.Transform, frame gocv.Mat, index int, name string) (gocv.Mat, error) {
	start := time.Now()
	out, err := transform.Apply(frame)
	duration := time.Since(start)

	p.debugger.LogFrame(index, name, duration, err)
	if err != nil {
		out.Close()
		return gocv.NewMat(), err
	}
	p.metrics.ObserveFrame(name, duration)
	return out, nil
}
