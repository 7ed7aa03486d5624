// Matrix warm-up exercise on OpenCV matrices
package matrix

import (
	"fmt"

	"gocv.io/x/gocv"
)

const (
	Rows        = 5
	Cols        = 6
	MaxValue    = 10 // exclusive upper bound of generated values
	TargetRow   = 4  // row #5
	Rank        = 2  // third smallest
	Replacement = 10
)

// Result holds the matrix before and after the replacement.
type Result struct {
	Original [][]int
	Updated  [][]int
	Value    int // the third-smallest value of the target row
}

// Exercise fills a Rows x Cols matrix with uniform integers in [0, MaxValue)
// and replaces every occurrence of the third-smallest value of row #5 with
// Replacement. The OpenCV RNG is seeded with seed, so results repeat.
func Exercise(seed int) (Result, error) {
	gocv.SetRNGSeed(seed)

	mat := gocv.NewMatWithSize(Rows, Cols, gocv.MatTypeCV32S)
	defer mat.Close()
	gocv.RandU(&mat, gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(MaxValue, 0, 0, 0))

	result := Result{Original: toSlice(mat)}

	value, err := ReplaceRanked(&mat, TargetRow, Rank, Replacement)
	if err != nil {
		return Result{}, err
	}

	result.Value = value
	result.Updated = toSlice(mat)
	return result, nil
}

// ReplaceRanked finds the rank-th smallest value (0-based) of the given row
// and overwrites every element of that row equal to it. It returns the value
// that was replaced.
func ReplaceRanked(mat *gocv.Mat, row, rank int, replacement int32) (int, error) {
	if mat.Type() != gocv.MatTypeCV32S {
		return 0, fmt.Errorf("matrix must be CV_32S, got %v", mat.Type())
	}
	if row < 0 || row >= mat.Rows() {
		return 0, fmt.Errorf("row %d out of range [0, %d)", row, mat.Rows())
	}
	if rank < 0 || rank >= mat.Cols() {
		return 0, fmt.Errorf("rank %d out of range [0, %d)", rank, mat.Cols())
	}

	line := mat.RowRange(row, row+1)
	defer line.Close()

	sorted := gocv.NewMat()
	defer sorted.Close()
	gocv.Sort(line, &sorted, gocv.SortEveryRow+gocv.SortAscending)

	value := sorted.GetIntAt(0, rank)
	for x := 0; x < mat.Cols(); x++ {
		if mat.GetIntAt(row, x) == value {
			mat.SetIntAt(row, x, replacement)
		}
	}

	return int(value), nil
}

func toSlice(mat gocv.Mat) [][]int {
	out := make([][]int, mat.Rows())
	for y := range out {
		out[y] = make([]int, mat.Cols())
		for x := range out[y] {
			out[y][x] = int(mat.GetIntAt(y, x))
		}
	}
	return out
}

// Format renders a matrix the way the exercise prints it.
func Format(m [][]int) string {
	s := "["
	for y, row := range m {
		if y > 0 {
			s += "\n "
		}
		s += fmt.Sprint(row)
	}
	return s + "]"
}
