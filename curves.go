package enginesim

import (
	"fmt"

	"github.com/gonum/matrix/mat64"
)

// veSource yields the volumetric efficiency as a fraction for an engine speed.
type veSource interface {
	Eval(rpm float64) float64
}

// bsfcSource yields the brake-specific fuel consumption in kg/J.
type bsfcSource interface {
	Eval(rpm float64) float64
}

// formulaVE is the built-in torque-like VE curve: a two-sided Gaussian bump
// peaking at VEPeakFrac of redline, falling off faster above the peak than
// below it.
type formulaVE struct {
	redline float64
	cal     Calibration
}

func (s formulaVE) Eval(rpm float64) float64 {
	peak := s.cal.VEPeakFrac * s.redline
	sigma := s.cal.VESigmaLowRatio * peak
	if rpm >= peak {
		sigma = s.cal.VESigmaHighRatio * peak
	}
	return s.cal.VEFloor + s.cal.VEAmplitude*gauss(rpm, peak, sigma)
}

// formulaBSFC applies the linear economy correction to the nominal BSFC:
// operating points breathing better than the pivot VE consume slightly less
// fuel per unit of brake energy.
type formulaBSFC struct {
	nominal float64 // kg/J at the torque peak
	ve      veSource
	cal     Calibration
}

func (s formulaBSFC) Eval(rpm float64) float64 {
	return s.nominal * (1 - s.cal.BSFCSlope*(s.ve.Eval(rpm)-s.cal.BSFCPivot))
}

// tableVE reads an external VE curve tabulated in percent.
type tableVE struct {
	curve *TableCurve
}

func (s tableVE) Eval(rpm float64) float64 {
	return s.curve.Eval(rpm) / 100
}

// tableBSFC reads an external BSFC curve tabulated in g/kWh. The economy
// correction is skipped: a measured map already carries it.
type tableBSFC struct {
	curve *TableCurve
}

func (s tableBSFC) Eval(rpm float64) float64 {
	return s.curve.Eval(rpm) * gPerKWhToKgPerJ
}

// TableCurve is a natural cubic spline through tabulated points. Queries
// outside the tabulated domain carry the end segment's cubic through, so the
// curve extrapolates instead of clipping.
type TableCurve struct {
	xs, ys []float64
	m      []float64 // second derivatives at the knots
}

// NewTableCurve fits a natural cubic spline to the provided points. The
// abscissae must be strictly increasing and at least four points long.
func NewTableCurve(xs, ys []float64) (*TableCurve, error) {
	n := len(xs)
	if n != len(ys) {
		return nil, fmt.Errorf("mismatched table: %d abscissae for %d ordinates", n, len(ys))
	}
	if n < 4 {
		return nil, fmt.Errorf("a cubic fit needs at least 4 points, got %d", n)
	}
	for i := 1; i < n; i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("abscissae not strictly increasing at index %d", i)
		}
	}
	c := &TableCurve{xs: make([]float64, n), ys: make([]float64, n), m: make([]float64, n)}
	copy(c.xs, xs)
	copy(c.ys, ys)
	// Natural boundary: zero curvature at both ends, interior second
	// derivatives from the standard tridiagonal system.
	sys := mat64.NewDense(n-2, n-2, nil)
	rhs := mat64.NewVector(n-2, nil)
	for i := 1; i < n-1; i++ {
		h0 := xs[i] - xs[i-1]
		h1 := xs[i+1] - xs[i]
		r := i - 1
		if r > 0 {
			sys.Set(r, r-1, h0)
		}
		sys.Set(r, r, 2*(h0+h1))
		if r < n-3 {
			sys.Set(r, r+1, h1)
		}
		rhs.SetVec(r, 6*((ys[i+1]-ys[i])/h1-(ys[i]-ys[i-1])/h0))
	}
	var sol mat64.Vector
	if err := sol.SolveVec(sys, rhs); err != nil {
		return nil, fmt.Errorf("singular spline system: %s", err)
	}
	for i := 0; i < n-2; i++ {
		c.m[i+1] = sol.At(i, 0)
	}
	return c, nil
}

// Domain returns the tabulated abscissa range.
func (c *TableCurve) Domain() (lo, hi float64) {
	return c.xs[0], c.xs[len(c.xs)-1]
}

// Eval evaluates the spline at x, extrapolating from the end segments beyond
// the tabulated domain.
func (c *TableCurve) Eval(x float64) float64 {
	n := len(c.xs)
	var i int
	switch {
	case x <= c.xs[1]:
		i = 0
	case x >= c.xs[n-2]:
		i = n - 2
	default:
		lo, hi := 1, n-2
		for hi-lo > 1 {
			mid := (lo + hi) / 2
			if c.xs[mid] <= x {
				lo = mid
			} else {
				hi = mid
			}
		}
		i = lo
	}
	h := c.xs[i+1] - c.xs[i]
	a := (c.xs[i+1] - x) / h
	b := (x - c.xs[i]) / h
	return a*c.ys[i] + b*c.ys[i+1] + ((a*a*a-a)*c.m[i]+(b*b*b-b)*c.m[i+1])*h*h/6
}
