// Per-frame transform policies backed by GoCV
package algorithms

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

// Transform is a stateless per-frame policy. Apply never mutates its input
// and always returns a new Mat owned by the caller.
type Transform interface {
	Apply(input gocv.Mat) (gocv.Mat, error)
	GetName() string
	GetDescription() string
	// IsColorOutput reports whether Apply produces 3-channel frames, which
	// decides the color mode the output video is opened with.
	IsColorOutput() bool
}

const (
	NameGrayscale     = "grayscale"
	NameBlackAndWhite = "black_and_white"
	NameSobel         = "sobel"
)

var transforms = make(map[string]Transform)

func Register(name string, transform Transform) {
	transforms[name] = transform
}

func Get(name string) (Transform, bool) {
	transform, exists := transforms[name]
	return transform, exists
}

func Apply(name string, input gocv.Mat) (gocv.Mat, error) {
	transform, exists := transforms[name]
	if !exists {
		return gocv.NewMat(), fmt.Errorf("transform not found: %s", name)
	}

	return transform.Apply(input)
}

func IsValidTransform(name string) bool {
	_, exists := transforms[name]
	return exists
}

// Names returns the registered transform names in sorted order.
func Names() []string {
	names := make([]string, 0, len(transforms))
	for name := range transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultOrder is the order the batch runs the transforms in.
func DefaultOrder() []string {
	return []string{NameGrayscale, NameBlackAndWhite, NameSobel}
}

func init() {
	Register(NameGrayscale, NewGrayscale())
	Register(NameBlackAndWhite, NewBlackAndWhite())
	Register(NameSobel, NewSobel())
}

// toGrayscale returns a single-channel copy of input.
func toGrayscale(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input frame is empty")
	}

	switch input.Channels() {
	case 1:
		return input.Clone(), nil
	case 3:
		gray := gocv.NewMat()
		if err := gocv.CvtColor(input, &gray, gocv.ColorBGRToGray); err != nil {
			gray.Close()
			return gocv.NewMat(), fmt.Errorf("convert to grayscale: %w", err)
		}
		return gray, nil
	default:
		return gocv.NewMat(), fmt.Errorf("unsupported channel count: %d", input.Channels())
	}
}

// toBGR replicates a single-channel frame across three channels.
func toBGR(gray gocv.Mat) (gocv.Mat, error) {
	bgr := gocv.NewMat()
	if err := gocv.CvtColor(gray, &bgr, gocv.ColorGrayToBGR); err != nil {
		bgr.Close()
		return gocv.NewMat(), fmt.Errorf("expand to BGR: %w", err)
	}
	return bgr, nil
}
