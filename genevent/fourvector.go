package genevent

import "math"

// FourVector is an immutable four-component value.
// It holds (px, py, pz, e) for momenta and (x, y, z, t) for positions.
type FourVector struct {
	v1, v2, v3, v4 float64
}

// NewFourVector is a factory method for FourVector.
func NewFourVector(v1, v2, v3, v4 float64) FourVector {
	return FourVector{v1: v1, v2: v2, v3: v3, v4: v4}
}

func (fv FourVector) Px() float64 { return fv.v1 }
func (fv FourVector) Py() float64 { return fv.v2 }
func (fv FourVector) Pz() float64 { return fv.v3 }
func (fv FourVector) E() float64  { return fv.v4 }

func (fv FourVector) X() float64 { return fv.v1 }
func (fv FourVector) Y() float64 { return fv.v2 }
func (fv FourVector) Z() float64 { return fv.v3 }
func (fv FourVector) T() float64 { return fv.v4 }

// M2 returns the invariant mass squared, e² - p².
func (fv FourVector) M2() float64 {
	return fv.v4*fv.v4 - (fv.v1*fv.v1 + fv.v2*fv.v2 + fv.v3*fv.v3)
}

// M returns the invariant mass. A negative M2 yields -sqrt(-M2).
func (fv FourVector) M() float64 {
	m2 := fv.M2()
	if m2 < 0 {
		return -math.Sqrt(-m2)
	}

	return math.Sqrt(m2)
}

// Pt returns the transverse momentum.
func (fv FourVector) Pt() float64 {
	return math.Hypot(fv.v1, fv.v2)
}

// P returns the length of the spatial component.
func (fv FourVector) P() float64 {
	return math.Sqrt(fv.v1*fv.v1 + fv.v2*fv.v2 + fv.v3*fv.v3)
}

// IsZero reports whether all four components are zero.
func (fv FourVector) IsZero() bool {
	return fv == FourVector{}
}
