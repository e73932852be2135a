package polyimage

import (
	"github.com/gonum/floats"
	"github.com/jvlmdr/go-cv/rimg64"
)

// Load computes the descriptor at every sampled location of an image,
// replacing any previously loaded grid.  Locations are the positions of
// all windows which lie entirely inside the image, taken every
// Downsample() pixels in each direction starting from the image border.
// After Load, At(row, col) fits an order Order() polynomial to the
// pixels of BlockRect(row, col).
//
// Each window is correlated with every kernel of the filter bank to
// obtain the polynomial coefficients.  The coefficients are divided by
// the constant term and the constant term is discarded.  A window whose
// constant term is exactly zero produces an all-zero descriptor.
//
// If the image is smaller than the window in either direction, the
// resulting grid is empty and Size() is zero.
func (p *PolyImage) Load(im *rimg64.Image) {
	var (
		nc    = gridLen(im.Width, p.windowSize, p.downsample)
		nr    = gridLen(im.Height, p.windowSize, p.downsample)
		terms = len(p.filters)
	)
	if nr == 0 || nc == 0 {
		p.grid = nil
		return
	}
	grid := rimg64.NewMulti(nc, nr, terms-1)
	coef := make([]float64, terms)
	for c := 0; c < nc; c++ {
		x0 := c * p.downsample
		for r := 0; r < nr; r++ {
			y0 := r * p.downsample
			for k, f := range p.filters {
				coef[k] = corrAt(im, f, x0, y0)
			}
			i := (c*nr + r) * (terms - 1)
			des := grid.Elems[i : i+terms-1]
			if coef[0] == 0 {
				// Degenerate window.  Leave the descriptor zero.
				continue
			}
			for d := range des {
				des[d] = coef[d+1] / coef[0]
			}
		}
	}
	p.grid = grid
}

// corrAt computes the inner product of the kernel g with the window of
// f whose top-left corner is (x0, y0).
// Elements of a column are contiguous, so go a column at a time.
func corrAt(f, g *rimg64.Image, x0, y0 int) float64 {
	var t float64
	for dx := 0; dx < g.Width; dx++ {
		i := (x0+dx)*f.Height + y0
		j := dx * g.Height
		t += floats.Dot(f.Elems[i:i+g.Height], g.Elems[j:j+g.Height])
	}
	return t
}

// gridLen returns the number of windows of the given size which fit
// inside an extent, sampled with the given stride.
func gridLen(extent, size, stride int) int {
	if extent < size {
		return 0
	}
	return (extent-size)/stride + 1
}
