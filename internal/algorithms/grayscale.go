package algorithms

import (
	"gocv.io/x/gocv"
)

// Grayscale converts BGR frames to single-channel luma.
type Grayscale struct{}

func NewGrayscale() *Grayscale {
	return &Grayscale{}
}

func (g *Grayscale) Apply(input gocv.Mat) (gocv.Mat, error) {
	return toGrayscale(input)
}

func (g *Grayscale) GetName() string {
	return "Grayscale"
}

func (g *Grayscale) GetDescription() string {
	return "Single-channel luma using the standard BGR to gray weighting"
}

func (g *Grayscale) IsColorOutput() bool {
	return false
}
