// Basic Video Processing - grayscale, black and white and Sobel renditions
// of a single input video.

package main

import (
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"basic-video-processing/internal/config"
	"basic-video-processing/internal/core"
	videoio "basic-video-processing/internal/io"
	"basic-video-processing/internal/metrics"
)

const (
	AppName    = "Basic Video Processing"
	AppVersion = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML batch configuration")
	input := flag.String("input", "", "Input video (overrides config)")
	outDir := flag.String("out-dir", "", "Directory for output videos (regenerates the default jobs)")
	prefix := flag.String("prefix", config.DefaultPrefix, "File name prefix for output videos (regenerates the default jobs)")
	only := flag.String("only", "", "Run a single transform: grayscale, black_and_white or sobel")
	metricsTextfile := flag.String("metrics-textfile", "", "Write Prometheus metrics to this file after the batch")
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		initLogger(*debugMode).WithError(err).Fatal("Failed to load configuration")
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "out-dir", "prefix":
			cfg.Jobs = config.DefaultJobs(*outDir, *prefix)
		case "metrics-textfile":
			cfg.MetricsTextfile = *metricsTextfile
		case "debug":
			cfg.Debug = *debugMode
		}
	})

	logger := initLogger(cfg.Debug)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cfg.Debug,
	}).Infof("Starting %s", AppName)

	if *only != "" {
		if err := cfg.Only(*only); err != nil {
			logger.WithError(err).Fatal("Invalid -only")
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	loader := videoio.NewVideoLoader(logger)
	pipeline := core.NewFrameTransformPipeline(loader.OpenSource, loader.OpenSink, logger)
	pipeline.SetDebugger(core.NewPipelineDebugger(logger, cfg.Debug))

	runMetrics := metrics.NewRunMetrics()
	pipeline.SetMetrics(runMetrics)

	reports, batchErr := pipeline.RunBatch(cfg.Input, cfg.BatchJobs())

	if cfg.MetricsTextfile != "" {
		if err := runMetrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.WithError(err).WithField("path", cfg.MetricsTextfile).Error("Failed to write metrics")
		}
	}

	if batchErr != nil {
		logger.WithError(batchErr).WithField("attempted_runs", len(reports)).Error("Batch aborted")
		os.Exit(1)
	}

	logger.WithField("runs", len(reports)).Info("Batch completed")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
