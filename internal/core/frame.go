// Video stream parameters and frame validation
package core

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

// VideoParameters describes a decoded stream. Values are taken from the
// source as reported and are not validated.
type VideoParameters struct {
	FourCC int `json:"fourcc"`
	FPS    int `json:"fps"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Codec renders the FourCC tag as its four characters, least significant
// byte first.
func (vp VideoParameters) Codec() string {
	return string([]byte{
		byte(vp.FourCC),
		byte(vp.FourCC >> 8),
		byte(vp.FourCC >> 16),
		byte(vp.FourCC >> 24),
	})
}

func (vp VideoParameters) String() string {
	return fmt.Sprintf("%s %dx%d@%dfps", printableCodec(vp.Codec()), vp.Width, vp.Height, vp.FPS)
}

// FourCCFromCodec packs a four-character codec name into a FourCC tag.
func FourCCFromCodec(codec string) (int, error) {
	if len(codec) != 4 {
		return 0, fmt.Errorf("codec must be 4 characters, got %q", codec)
	}
	return int(codec[0]) | int(codec[1])<<8 | int(codec[2])<<16 | int(codec[3])<<24, nil
}

func printableCodec(codec string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '.'
		}
		return r
	}, codec)
}

// ValidateFrame checks a frame against the stream it belongs to. Color frames
// must carry 3 channels and mono frames 1.
func ValidateFrame(mat gocv.Mat, params VideoParameters, isColor bool) error {
	if mat.Empty() {
		return fmt.Errorf("frame is empty")
	}

	if mat.Cols() != params.Width || mat.Rows() != params.Height {
		return fmt.Errorf("frame is %dx%d, stream is %dx%d", mat.Cols(), mat.Rows(), params.Width, params.Height)
	}

	want := 1
	if isColor {
		want = 3
	}
	if mat.Channels() != want {
		return fmt.Errorf("frame has %d channels, stream expects %d", mat.Channels(), want)
	}

	return nil
}
