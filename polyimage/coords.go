package polyimage

import "image"

// BlockRect returns the rectangle of the input image whose pixels
// determine the descriptor at cell (row, col) of the grid.  The
// rectangle is WindowSize() pixels wide and tall.  It is a function of
// the configuration alone and does not require a loaded image.
func (p *PolyImage) BlockRect(row, col int) image.Rectangle {
	x0 := col * p.downsample
	y0 := row * p.downsample
	return image.Rect(x0, y0, x0+p.windowSize, y0+p.windowSize)
}

// ImageToFeatSpace returns the grid cell whose window is closest to
// centered on the image point q, as (col, row) in the X and Y fields.
// Image points near the border or outside the image have no
// corresponding cell; for these the result lies outside
// [0, Nc()) x [0, Nr()) and it is up to the caller to test containment.
//
// The mapping divides by the downsample rate, so it is not injective
// when Downsample() > 1 and FeatToImageSpace does not exactly invert
// it.
func (p *PolyImage) ImageToFeatSpace(q image.Point) image.Point {
	b := p.windowSize / 2
	return image.Pt(
		floorDiv(q.X-b, p.downsample),
		floorDiv(q.Y-b, p.downsample),
	)
}

// ImageToFeatSpaceRect maps both corners of a rectangle with
// ImageToFeatSpace.
func (p *PolyImage) ImageToFeatSpaceRect(r image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: p.ImageToFeatSpace(r.Min),
		Max: p.ImageToFeatSpace(r.Max),
	}
}

// FeatToImageSpace returns the image point at the center of the window
// of the grid cell q, with q interpreted as (col, row) in the X and Y
// fields.  It inverts ImageToFeatSpace up to the resolution of the
// downsample rate.
func (p *PolyImage) FeatToImageSpace(q image.Point) image.Point {
	b := p.windowSize / 2
	return image.Pt(q.X*p.downsample+b, q.Y*p.downsample+b)
}

// FeatToImageSpaceRect maps both corners of a rectangle with
// FeatToImageSpace.
func (p *PolyImage) FeatToImageSpaceRect(r image.Rectangle) image.Rectangle {
	return image.Rectangle{
		Min: p.FeatToImageSpace(r.Min),
		Max: p.FeatToImageSpace(r.Max),
	}
}
