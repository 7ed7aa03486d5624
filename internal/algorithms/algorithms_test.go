package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func solidBGR(t *testing.T, b, g, r float64, rows, cols int) gocv.Mat {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(b, g, r, 0), rows, cols, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return mat
}

// checkerboard builds a BGR frame alternating low and high gray values per cell.
func checkerboard(t *testing.T, rows, cols, cell int, low, high uint8) gocv.Mat {
	t.Helper()
	gray := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8U)
	defer gray.Close()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := low
			if (y/cell+x/cell)%2 == 1 {
				v = high
			}
			gray.SetUCharAt(y, x, v)
		}
	}

	mat := gocv.NewMat()
	t.Cleanup(func() { mat.Close() })
	require.NoError(t, gocv.CvtColor(gray, &mat, gocv.ColorGrayToBGR))
	return mat
}

func requireReplicated(t *testing.T, mat gocv.Mat) {
	t.Helper()
	require.Equal(t, 3, mat.Channels())
	for y := 0; y < mat.Rows(); y++ {
		for x := 0; x < mat.Cols(); x++ {
			px := mat.GetVecbAt(y, x)
			if px[0] != px[1] || px[1] != px[2] {
				t.Fatalf("pixel (%d,%d) not gray: %v", y, x, px)
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{NameBlackAndWhite, NameGrayscale, NameSobel}, Names())
	assert.Equal(t, []string{NameGrayscale, NameBlackAndWhite, NameSobel}, DefaultOrder())

	for _, name := range DefaultOrder() {
		assert.True(t, IsValidTransform(name), name)
	}
	assert.False(t, IsValidTransform("lanczos"))

	_, err := Apply("lanczos", gocv.NewMat())
	assert.Error(t, err)
}

func TestColorOutput(t *testing.T) {
	tests := []struct {
		name  string
		color bool
	}{
		{NameGrayscale, false},
		{NameBlackAndWhite, true},
		{NameSobel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transform, ok := Get(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.color, transform.IsColorOutput())
		})
	}
}

func TestGrayscaleLuma(t *testing.T) {
	tests := []struct {
		name    string
		b, g, r float64
		want    uint8
	}{
		{"red", 0, 0, 255, 76},
		{"green", 0, 255, 0, 150},
		{"blue", 255, 0, 0, 29},
		{"white", 255, 255, 255, 255},
		{"black", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := solidBGR(t, tt.b, tt.g, tt.r, 8, 12)

			out, err := NewGrayscale().Apply(frame)
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, 1, out.Channels())
			assert.Equal(t, 8, out.Rows())
			assert.Equal(t, 12, out.Cols())
			assert.Equal(t, tt.want, out.GetUCharAt(0, 0))
			assert.Equal(t, tt.want, out.GetUCharAt(7, 11))
		})
	}
}

func TestGrayscaleDoesNotModifyInput(t *testing.T) {
	frame := solidBGR(t, 10, 20, 30, 4, 4)
	before := frame.Clone()
	defer before.Close()

	out, err := NewGrayscale().Apply(frame)
	require.NoError(t, err)
	out.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(frame, before, &diff)
	gray := gocv.NewMat()
	defer gray.Close()
	require.NoError(t, gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray))
	assert.Equal(t, 0, gocv.CountNonZero(gray))
}

func TestBlackAndWhiteCheckerboard(t *testing.T) {
	frame := checkerboard(t, 16, 16, 4, 50, 200)

	out, err := NewBlackAndWhite().Apply(frame)
	require.NoError(t, err)
	defer out.Close()

	requireReplicated(t, out)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			want := uint8(0)
			if frame.GetVecbAt(y, x)[0] == 200 {
				want = 255
			}
			require.Equal(t, want, out.GetVecbAt(y, x)[0], "pixel (%d,%d)", y, x)
		}
	}
}

func TestBlackAndWhiteIsBinaryAndIdempotent(t *testing.T) {
	frame := gocv.NewMatWithSize(32, 32, gocv.MatTypeCV8UC3)
	defer frame.Close()
	gocv.RandU(&frame, gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(256, 256, 256, 0))

	bw := NewBlackAndWhite()
	first, err := bw.Apply(frame)
	require.NoError(t, err)
	defer first.Close()

	requireReplicated(t, first)
	for y := 0; y < first.Rows(); y++ {
		for x := 0; x < first.Cols(); x++ {
			v := first.GetVecbAt(y, x)[0]
			require.True(t, v == 0 || v == 255, "pixel (%d,%d) = %d", y, x, v)
		}
	}

	second, err := bw.Apply(first)
	require.NoError(t, err)
	defer second.Close()

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(first, second, &diff)
	gray := gocv.NewMat()
	defer gray.Close()
	require.NoError(t, gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray))
	assert.Equal(t, 0, gocv.CountNonZero(gray))
}

func TestSobelUniformFrameIsZero(t *testing.T) {
	frame := solidBGR(t, 90, 120, 200, 20, 30)

	out, err := NewSobel().Apply(frame)
	require.NoError(t, err)
	defer out.Close()

	requireReplicated(t, out)
	assert.Equal(t, 20, out.Rows())
	assert.Equal(t, 30, out.Cols())
	assert.Equal(t, gocv.MatTypeCV8UC3, out.Type())

	gray := gocv.NewMat()
	defer gray.Close()
	require.NoError(t, gocv.CvtColor(out, &gray, gocv.ColorBGRToGray))
	assert.Equal(t, 0, gocv.CountNonZero(gray))
}

func TestSobelRespondsToCorners(t *testing.T) {
	frame := checkerboard(t, 32, 32, 8, 0, 255)

	out, err := NewSobel().Apply(frame)
	require.NoError(t, err)
	defer out.Close()

	requireReplicated(t, out)
	gray := gocv.NewMat()
	defer gray.Close()
	require.NoError(t, gocv.CvtColor(out, &gray, gocv.ColorBGRToGray))
	assert.Greater(t, gocv.CountNonZero(gray), 0)
}

func TestTransformsRejectEmptyFrames(t *testing.T) {
	for _, name := range DefaultOrder() {
		t.Run(name, func(t *testing.T) {
			empty := gocv.NewMat()
			defer empty.Close()

			out, err := Apply(name, empty)
			defer out.Close()
			assert.Error(t, err)
		})
	}
}

func TestTransformsRejectUnsupportedChannels(t *testing.T) {
	frame := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC2)
	defer frame.Close()

	for _, name := range DefaultOrder() {
		t.Run(name, func(t *testing.T) {
			out, err := Apply(name, frame)
			defer out.Close()
			assert.ErrorContains(t, err, "channel")
		})
	}
}
