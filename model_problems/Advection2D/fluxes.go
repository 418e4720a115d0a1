package Advection2D

import (
	"fmt"
	"math"
	"strings"
)

type VelocityType uint

const (
	VEL_Zero VelocityType = iota
	VEL_Rotation
	VEL_Uniform
)

var (
	VelocityNames = map[string]VelocityType{
		"zero":     VEL_Zero,
		"rotation": VEL_Rotation,
		"uniform":  VEL_Uniform,
	}
	VelocityPrintNames = []string{"Zero", "Solid Body Rotation", "Uniform X"}
)

func (vt VelocityType) Print() (txt string) {
	txt = VelocityPrintNames[vt]
	return
}

func NewVelocityType(label string) (vt VelocityType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if vt, ok = VelocityNames[label]; !ok {
		err = fmt.Errorf("unable to use velocity field named %s", label)
		panic(err)
	}
	return
}

// GetFunction returns the steady velocity field, fixed for the whole run.
func (vt VelocityType) GetFunction() (vel func(x, y float64) (vx, vy float64)) {
	switch vt {
	case VEL_Rotation:
		vel = func(x, y float64) (vx, vy float64) { return -y, x }
	case VEL_Uniform:
		vel = func(x, y float64) (vx, vy float64) { return 1, 0 }
	default:
		vel = func(x, y float64) (vx, vy float64) { return 0, 0 }
	}
	return
}

type InitType uint

const (
	IC_Bump InitType = iota
	IC_Gaussian
	IC_Uniform
)

var (
	InitNames = map[string]InitType{
		"bump":     IC_Bump,
		"gaussian": IC_Gaussian,
		"uniform":  IC_Uniform,
	}
	InitPrintNames = []string{"Cosine Bump", "Gaussian", "Uniform"}
)

func (it InitType) Print() (txt string) {
	txt = InitPrintNames[it]
	return
}

func NewInitType(label string) (it InitType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(label)
	if it, ok = InitNames[label]; !ok {
		err = fmt.Errorf("unable to use initial condition named %s", label)
		panic(err)
	}
	return
}

func (it InitType) GetFunction() (ic func(x, y float64) float64) {
	switch it {
	case IC_Bump:
		// Cosine bump of radius 0.25 centered at (0.5, 0)
		ic = func(x, y float64) (u float64) {
			r := math.Hypot(x-0.5, y)
			if r < 0.25 {
				u = 0.5 * (1 + math.Cos(4*math.Pi*r))
			}
			return
		}
	case IC_Gaussian:
		ic = func(x, y float64) float64 {
			r2 := (x-0.5)*(x-0.5) + y*y
			return math.Exp(-r2 / 0.02)
		}
	default:
		ic = func(x, y float64) float64 { return 1 }
	}
	return
}

/*
UpwindFlux evaluates the directional numerical flux at one point of an
edge: vn is the velocity projected on the unit normal pointing from the
"minus" side toward the "plus" side, uM and uP are the two traces. The
value is taken from the side the flow is leaving, so the product u*vn is
continuous across the edge no matter which cell got which label.
*/
func UpwindFlux(uM, uP, vn float64) (F float64) {
	if vn >= 0 {
		F = uM * vn
	} else {
		F = uP * vn
	}
	return
}
