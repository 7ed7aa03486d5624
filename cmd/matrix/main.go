package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"basic-video-processing/internal/matrix"
)

func main() {
	seed := flag.Int("seed", int(time.Now().UnixNano()%(1<<31)), "Seed for the random matrix")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	result, err := matrix.Exercise(*seed)
	if err != nil {
		logger.WithError(err).WithField("seed", *seed).Fatal("Matrix exercise failed")
	}

	logger.WithFields(logrus.Fields{
		"seed":           *seed,
		"third_smallest": result.Value,
	}).Debug("Matrix exercise done")

	fmt.Println("Original Matrix:")
	fmt.Println(matrix.Format(result.Original))
	fmt.Println("Updated Matrix:")
	fmt.Println(matrix.Format(result.Updated))
}
