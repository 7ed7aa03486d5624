// Otsu binarization recomputed for every frame
package algorithms

import (
	"gocv.io/x/gocv"
)

const binaryMaxValue = 255

// BlackAndWhite thresholds each frame at its own Otsu level and hands the
// binary mask back as a 3-channel frame.
type BlackAndWhite struct{}

func NewBlackAndWhite() *BlackAndWhite {
	return &BlackAndWhite{}
}

func (b *BlackAndWhite) Apply(input gocv.Mat) (gocv.Mat, error) {
	gray, err := toGrayscale(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	binary := gocv.NewMat()
	defer binary.Close()

	// The threshold argument is ignored when ThresholdOtsu is set.
	gocv.Threshold(gray, &binary, 0, binaryMaxValue, gocv.ThresholdBinary+gocv.ThresholdOtsu)

	return toBGR(binary)
}

func (b *BlackAndWhite) GetName() string {
	return "Black and White"
}

func (b *BlackAndWhite) GetDescription() string {
	return "Per-frame Otsu binarization expanded back to BGR"
}

func (b *BlackAndWhite) IsColorOutput() bool {
	return true
}
