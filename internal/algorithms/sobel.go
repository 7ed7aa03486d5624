package algorithms

import (
	"gocv.io/x/gocv"
)

const sobelKernelSize = 5

// Sobel runs a single combined first-order derivative in x and y. The result
// keeps the 8-bit depth of the input, so strong gradients saturate.
type Sobel struct{}

func NewSobel() *Sobel {
	return &Sobel{}
}

func (s *Sobel) Apply(input gocv.Mat) (gocv.Mat, error) {
	gray, err := toGrayscale(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	edges := gocv.NewMat()
	defer edges.Close()

	gocv.Sobel(gray, &edges, gray.Type(), 1, 1, sobelKernelSize, 1, 0, gocv.BorderDefault)

	return toBGR(edges)
}

func (s *Sobel) GetName() string {
	return "Sobel"
}

func (s *Sobel) GetDescription() string {
	return "Combined dx=1 dy=1 Sobel response with a 5x5 kernel, expanded back to BGR"
}

func (s *Sobel) IsColorOutput() bool {
	return true
}
