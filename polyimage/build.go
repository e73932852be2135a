package polyimage

import (
	"math"

	"github.com/jvlmdr/go-cv/rimg64"
	"gonum.org/v1/gonum/mat"
)

// numTerms returns the number of monomials x^i y^j with i+j <= order.
func numTerms(order int) int {
	return (order + 1) * (order + 2) / 2
}

// basisAt evaluates the monomial basis at window offset (dx, dy).
// Terms are ordered by total degree, then by descending power of x:
// 1, x, y, x^2, xy, y^2, ...
// x is the column offset and y the row offset from the window center.
func basisAt(order int, dx, dy float64, out []float64) {
	i := 0
	out[i] = 1
	i++
	for deg := 1; deg <= order; deg++ {
		for k := 0; k <= deg; k++ {
			out[i] = math.Pow(dx, float64(deg-k)) * math.Pow(dy, float64(k))
			i++
		}
	}
}

// buildFilters constructs one correlation kernel per basis term such
// that correlating an image window with kernel k yields coefficient k
// of the least-squares polynomial fit to that window.
//
// The fit minimizes |D a - w|^2 where row (dy, dx) of D contains the
// basis evaluated at that offset and w holds the window's pixels in the
// same order.  The minimizer a = pinv(D) w is linear in w, so row k of
// pinv(D) reshaped to the window is the kernel for coefficient k.
// D depends only on the window geometry, never on pixel values.
func buildFilters(order, windowSize int) []*rimg64.Image {
	var (
		n      = windowSize * windowSize
		terms  = numTerms(order)
		border = windowSize / 2
	)
	d := mat.NewDense(n, terms, nil)
	row := make([]float64, terms)
	for dy := -border; dy <= border; dy++ {
		for dx := -border; dx <= border; dx++ {
			basisAt(order, float64(dx), float64(dy), row)
			d.SetRow((dy+border)*windowSize+(dx+border), row)
		}
	}
	pinv := pseudoInverse(d)

	filters := make([]*rimg64.Image, terms)
	for k := range filters {
		f := rimg64.New(windowSize, windowSize)
		for dy := 0; dy < windowSize; dy++ {
			for dx := 0; dx < windowSize; dx++ {
				f.Set(dx, dy, pinv.At(k, dy*windowSize+dx))
			}
		}
		filters[k] = f
	}
	return filters
}

// pseudoInverse computes the Moore-Penrose pseudo-inverse of a using
// the singular value decomposition.  Singular values below a relative
// tolerance are treated as zero, so rank-deficient design matrices
// (small windows with high orders) give the minimum-norm solution
// rather than failing.
func pseudoInverse(a *mat.Dense) *mat.Dense {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		panic("svd did not converge")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	m, n := a.Dims()
	tol := float64(max(m, n)) * s[0] * eps

	// Scale the columns of V by the inverted singular values.
	vs := mat.NewDense(n, len(s), nil)
	for j := range s {
		var inv float64
		if s[j] > tol {
			inv = 1 / s[j]
		}
		for i := 0; i < n; i++ {
			vs.Set(i, j, v.At(i, j)*inv)
		}
	}
	var pinv mat.Dense
	pinv.Mul(vs, u.T())
	return &pinv
}

// Double precision machine epsilon.
const eps = 0x1p-52
