// Package obstacle models tracked vessels as short timelines of Gaussian
// position distributions and scores collision likelihood for the planner.
package obstacle

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Distribution is a Gaussian belief about a vessel's position at a moment
// in time, plus its heading.
type Distribution struct {
	MeanX      float64
	MeanY      float64
	Covariance *mat.SymDense // 2x2, positive semi-definite
	Heading    float64
	Time       float64
}

// NewDistribution builds a distribution from mean, 2x2 covariance entries,
// heading and timestamp.
func NewDistribution(meanX, meanY, cxx, cxy, cyy, heading, t float64) Distribution {
	cov := mat.NewSymDense(2, []float64{cxx, cxy, cxy, cyy})
	return Distribution{MeanX: meanX, MeanY: meanY, Covariance: cov, Heading: heading, Time: t}
}

// Density evaluates the probability density at (x, y).
func (d *Distribution) Density(x, y float64) float64 {
	n, ok := distmv.NewNormal([]float64{d.MeanX, d.MeanY}, d.Covariance, nil)
	if !ok {
		return 0
	}
	return n.Prob([]float64{x, y})
}

// interpolate returns the belief between a and b at time t, with means
// blended linearly and the covariance taken from the nearer endpoint.
func interpolate(a, b Distribution, t float64) Distribution {
	if b.Time <= a.Time {
		return a
	}
	f := (t - a.Time) / (b.Time - a.Time)
	if f <= 0 {
		return a
	}
	if f >= 1 {
		return b
	}
	out := a
	if f > 0.5 {
		out = b
	}
	out.MeanX = a.MeanX + f*(b.MeanX-a.MeanX)
	out.MeanY = a.MeanY + f*(b.MeanY-a.MeanY)
	out.Time = t
	return out
}

// clone returns a deep copy of the distribution.
func (d Distribution) clone() Distribution {
	c := d
	if d.Covariance != nil {
		c.Covariance = mat.NewSymDense(2, nil)
		c.Covariance.CopySym(d.Covariance)
	}
	return c
}
