package polyimage

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jvlmdr/go-cv/rimg64"
)

const testEps = 1e-9

func epsEq(want, got, eps float64) bool {
	return math.Abs(want-got) <= eps
}

func randImage(width, height int) *rimg64.Image {
	f := rimg64.New(width, height)
	for i := range f.Elems {
		f.Elems[i] = rand.NormFloat64()
	}
	return f
}

// rampImage gives pixel (x, y) the value ax*x + ay*y + b.
func rampImage(width, height int, ax, ay, b float64) *rimg64.Image {
	f := rimg64.New(width, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			f.Set(x, y, ax*float64(x)+ay*float64(y)+b)
		}
	}
	return f
}

func uniformImage(width, height int, v float64) *rimg64.Image {
	return rampImage(width, height, 0, 0, v)
}

func testGridDimsEq(t *testing.T, want, got *PolyImage) {
	t.Helper()
	if want.Nr() != got.Nr() || want.Nc() != got.Nc() {
		t.Fatalf(
			"grid sizes differ: want %dx%d, got %dx%d",
			want.Nr(), want.Nc(), got.Nr(), got.Nc(),
		)
	}
}

// testGridEq asserts element-wise exact equality of two loaded grids.
func testGridEq(t *testing.T, want, got *PolyImage) {
	t.Helper()
	testGridDimsEq(t, want, got)
	for r := 0; r < want.Nr(); r++ {
		for c := 0; c < want.Nc(); c++ {
			u, v := want.At(r, c), got.At(r, c)
			for d := range u {
				if u[d] != v[d] {
					t.Errorf("at (%d, %d) dim %d: want %g, got %g", r, c, d, u[d], v[d])
				}
			}
		}
	}
}
