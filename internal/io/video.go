// Video decode and encode through OpenCV
package io

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"basic-video-processing/internal/core"
)

// VideoLoader opens OpenCV-backed sources and sinks. OpenSource and OpenSink
// satisfy core.SourceOpener and core.SinkOpener.
type VideoLoader struct {
	logger *logrus.Logger
}

func NewVideoLoader(logger *logrus.Logger) *VideoLoader {
	return &VideoLoader{
		logger: logger,
	}
}

// propertyReader is the part of gocv.VideoCapture parameter extraction needs.
type propertyReader interface {
	Get(prop gocv.VideoCaptureProperties) float64
}

// ExtractParameters reads codec tag, frame rate and frame size from an open
// capture. Values are truncated to integers and not validated.
func ExtractParameters(capture propertyReader) core.VideoParameters {
	return core.VideoParameters{
		FourCC: int(capture.Get(gocv.VideoCaptureFOURCC)),
		FPS:    int(capture.Get(gocv.VideoCaptureFPS)),
		Width:  int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(capture.Get(gocv.VideoCaptureFrameHeight)),
	}
}

func (vl *VideoLoader) OpenSource(path string) (core.Source, error) {
	vl.logger.WithField("path", path).Debug("Opening video source")

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("failed to open video: %s", path)
	}

	source := &VideoSource{
		capture: capture,
		params:  ExtractParameters(capture),
	}

	vl.logger.WithFields(logrus.Fields{
		"path":   path,
		"codec":  source.params.String(),
		"width":  source.params.Width,
		"height": source.params.Height,
		"fps":    source.params.FPS,
	}).Info("Video source opened")

	return source, nil
}

func (vl *VideoLoader) OpenSink(path string, params core.VideoParameters, isColor bool) (core.Sink, error) {
	vl.logger.WithFields(logrus.Fields{
		"path":     path,
		"is_color": isColor,
	}).Debug("Opening video sink")

	writer, err := gocv.VideoWriterFile(path, params.Codec(), float64(params.FPS), params.Width, params.Height, isColor)
	if err != nil {
		return nil, fmt.Errorf("failed to create video writer: %w", err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("failed to create video writer: %s (%s)", path, params)
	}

	vl.logger.WithFields(logrus.Fields{
		"path":     path,
		"codec":    params.String(),
		"is_color": isColor,
	}).Info("Video sink opened")

	return &VideoSink{
		writer:  writer,
		params:  params,
		isColor: isColor,
	}, nil
}

// VideoSource wraps a gocv.VideoCapture.
type VideoSource struct {
	capture *gocv.VideoCapture
	params  core.VideoParameters
}

func (s *VideoSource) Parameters() core.VideoParameters {
	return s.params
}

// Read decodes the next frame into frame. An empty decode is reported as the
// end of the stream.
func (s *VideoSource) Read(frame *gocv.Mat) bool {
	if !s.capture.Read(frame) {
		return false
	}
	return !frame.Empty()
}

func (s *VideoSource) Close() error {
	return s.capture.Close()
}

// VideoSink wraps a gocv.VideoWriter and rejects frames that do not match
// the stream it was opened for.
type VideoSink struct {
	writer  *gocv.VideoWriter
	params  core.VideoParameters
	isColor bool
}

func (s *VideoSink) Write(frame gocv.Mat) error {
	if err := core.ValidateFrame(frame, s.params, s.isColor); err != nil {
		return err
	}
	return s.writer.Write(frame)
}

func (s *VideoSink) Close() error {
	return s.writer.Close()
}
