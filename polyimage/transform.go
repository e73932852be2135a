package polyimage

import (
	"fmt"
	"image"

	"github.com/jvlmdr/go-cv/rimg64"
)

// Transform adapts the extractor to the feat.Image interface so that it
// can be used as the feature transform of a sliding-window pipeline.
// Every call to Apply configures a fresh extractor, so a Transform is
// safe to share between goroutines.
type Transform struct {
	Order      int
	WindowSize int
	Downsample int
}

func (phi *Transform) Rate() int { return phi.Downsample }

func (phi *Transform) Channels() int { return numTerms(phi.Order) - 1 }

// Size returns the size of the descriptor grid extracted from an image
// of the given size.
func (phi *Transform) Size(im image.Point) image.Point {
	return image.Pt(
		gridLen(im.X, phi.WindowSize, phi.Downsample),
		gridLen(im.Y, phi.WindowSize, phi.Downsample),
	)
}

// Apply converts the image to grayscale intensities and extracts a
// descriptor at every sampled pixel.  Channel d of the result at
// (x, y) is element d of the descriptor at grid cell (y, x).
func (phi *Transform) Apply(im image.Image) (*rimg64.Multi, error) {
	if phi.Downsample < 1 {
		return nil, fmt.Errorf("downsample must be at least 1: %d", phi.Downsample)
	}
	f, err := ToGray(im)
	if err != nil {
		return nil, err
	}
	p := New(phi.Downsample)
	if err := p.Setup(phi.Order, phi.WindowSize); err != nil {
		return nil, err
	}
	p.Load(f)
	if p.Size() == 0 {
		return nil, fmt.Errorf(
			"image %dx%d smaller than %dx%d window",
			f.Width, f.Height, phi.WindowSize, phi.WindowSize,
		)
	}
	return p.Grid(), nil
}

// ToGray converts an image to a grayscale intensity grid using the
// usual luminance weights, with values in [0, 0xffff].
// Images with partial transparency are rejected since the alpha channel
// cannot be represented in the intensities.
func ToGray(im image.Image) (*rimg64.Image, error) {
	size := im.Bounds().Size()
	f := rimg64.New(size.X, size.Y)
	for x := 0; x < size.X; x++ {
		for y := 0; y < size.Y; y++ {
			q := im.At(im.Bounds().Min.X+x, im.Bounds().Min.Y+y)
			r, g, b, a := q.RGBA()
			if a != 0xffff {
				return nil, fmt.Errorf("pixel (%d, %d) not opaque: alpha %d", x, y, a)
			}
			f.Set(x, y, 0.299*float64(r)+0.587*float64(g)+0.114*float64(b))
		}
	}
	return f, nil
}
