/*
Package polyimage extracts dense local descriptors by fitting a
polynomial surface to the window around every pixel of an image.

To extract a descriptor at every pixel:
	phi := polyimage.New(1)
	if err := phi.Setup(3, 13); err != nil {
		return err
	}
	phi.Load(im)
	for r := 0; r < phi.Nr(); r++ {
		for c := 0; c < phi.Nc(); c++ {
			use(phi.At(r, c))
		}
	}

The fit at every window is the same least-squares problem up to the
pixel values, so its solution is a fixed linear function of the window.
Setup computes this function once, as one correlation kernel per
polynomial coefficient, and Load only evaluates correlations.

To share one configuration between workers, give each its own copy:
	phi := polyimage.New(2)
	...
	for i := range workers {
		workers[i].CopyConfiguration(phi)
	}
*/
package polyimage
