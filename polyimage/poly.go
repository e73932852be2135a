package polyimage

import (
	"fmt"

	"github.com/jvlmdr/go-cv/rimg64"
)

// Default configuration established by New and Clear.
const (
	DefaultOrder      = 3
	DefaultWindowSize = 13
)

// PolyImage extracts a local feature descriptor at every pixel of an
// image (or every N-th pixel if constructed with downsample N).
// The descriptor at a pixel contains the coefficients of a polynomial
// surface fitted by least squares to the surrounding square window of
// intensities.  Coefficients are divided by the constant term of the
// fitted polynomial and the constant term is then discarded, making the
// descriptor invariant to scaling of the image intensities.
type PolyImage struct {
	order      int
	windowSize int
	downsample int
	// One kernel per polynomial basis term, constant term first.
	// Derived from (order, windowSize) alone.  Never modified by Load.
	filters []*rimg64.Image
	// Descriptor grid populated by Load.  Channels per cell is
	// NumDimensions().  Nil when nothing is loaded.
	grid *rimg64.Multi
}

// New creates an extractor with the given downsample rate and the
// default configuration (order 3, window size 13).
// Panics if downsample < 1.
func New(downsample int) *PolyImage {
	if downsample < 1 {
		panic(fmt.Sprintf("downsample must be at least 1: %d", downsample))
	}
	p := &PolyImage{downsample: downsample}
	p.Clear()
	return p
}

// Clear restores the initial configuration and discards any loaded
// descriptors.  The downsample rate is fixed at construction and is
// not affected.
func (p *PolyImage) Clear() {
	p.order = DefaultOrder
	p.windowSize = DefaultWindowSize
	p.filters = buildFilters(p.order, p.windowSize)
	p.grid = nil
}

// Setup changes the polynomial order and window size and rebuilds the
// filter bank.  Requires 1 <= order <= 6 and window size odd and at
// least 3.  On error the previous configuration is left intact.
// Any loaded descriptors are discarded on success.
func (p *PolyImage) Setup(order, windowSize int) error {
	if order < 1 || order > 6 {
		return fmt.Errorf("order out of range [1, 6]: %d", order)
	}
	if windowSize < 3 || windowSize%2 == 0 {
		return fmt.Errorf("window size must be odd and at least 3: %d", windowSize)
	}
	p.order = order
	p.windowSize = windowSize
	p.filters = buildFilters(order, windowSize)
	p.grid = nil
	return nil
}

// Order returns the order of the polynomial fitted to each window.
func (p *PolyImage) Order() int { return p.order }

// WindowSize returns the width and height in pixels of the window
// fitted at each sampled location.
func (p *PolyImage) WindowSize() int { return p.windowSize }

// Downsample returns the sampling stride given to New.
func (p *PolyImage) Downsample() int { return p.downsample }

// NumDimensions returns the length of the descriptor vectors.
// This is the number of coefficients of an order Order() polynomial in
// two variables, not counting the constant term.
func (p *PolyImage) NumDimensions() int {
	return numTerms(p.order) - 1
}

// CopyConfiguration copies the order, window size and filter bank of
// src into p, leaving any state populated by Load untouched.
// Given two extractors H1 and H2 with the same downsample rate,
//	H2.CopyConfiguration(H1)
//	H1.Load(im)
//	H2.Load(im)
// leaves H1 and H2 with identical descriptor grids.
//
// The filter bank is deep-copied, so many goroutines may concurrently
// copy the configuration of a shared extractor into their own
// instances, provided no other operation touches the shared one.
func (p *PolyImage) CopyConfiguration(src *PolyImage) {
	p.order = src.order
	p.windowSize = src.windowSize
	p.filters = make([]*rimg64.Image, len(src.filters))
	for i, f := range src.filters {
		p.filters[i] = cloneImage(f)
	}
}

// Unload discards the state populated by Load.
// After Unload, Nr() and Nc() are zero.  The configuration is kept, and
// loading the same image again reproduces the exact same descriptors.
func (p *PolyImage) Unload() {
	p.grid = nil
}

// Nr returns the number of rows in the descriptor grid.
func (p *PolyImage) Nr() int {
	if p.grid == nil {
		return 0
	}
	return p.grid.Height
}

// Nc returns the number of columns in the descriptor grid.
func (p *PolyImage) Nc() int {
	if p.grid == nil {
		return 0
	}
	return p.grid.Width
}

// Size returns Nr() * Nc().
func (p *PolyImage) Size() int {
	return p.Nr() * p.Nc()
}

// At returns the descriptor at a cell of the grid.
// The slice aliases internal storage and has NumDimensions() elements.
// It remains valid until the next call to Load, Unload, Clear, Setup or
// Deserialize.  Panics unless 0 <= row < Nr() and 0 <= col < Nc().
func (p *PolyImage) At(row, col int) []float64 {
	if row < 0 || row >= p.Nr() || col < 0 || col >= p.Nc() {
		panic(fmt.Sprintf(
			"cell (%d, %d) outside grid %dx%d",
			row, col, p.Nr(), p.Nc(),
		))
	}
	k := p.grid.Channels
	i := (col*p.grid.Height + row) * k
	return p.grid.Elems[i : i+k : i+k]
}

// Grid returns the loaded descriptor grid as a multi-channel image
// with NumDimensions() channels, or nil if nothing is loaded.
// Channel d at position (x, y) is element d of At(y, x).
// The image aliases internal storage.
func (p *PolyImage) Grid() *rimg64.Multi {
	return p.grid
}

func cloneImage(f *rimg64.Image) *rimg64.Image {
	g := rimg64.New(f.Width, f.Height)
	copy(g.Elems, f.Elems)
	return g
}
