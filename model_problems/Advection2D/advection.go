package Advection2D

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/notargets/goadvect/DG2D"
	"github.com/notargets/goadvect/types"
	"github.com/notargets/goadvect/utils"
)

/*
Advection2D advances the linear transport equation

	du/dt + div(v u) = 0

on a triangle mesh with a discontinuous Galerkin discretization of degree
0 or 1, upwind numerical fluxes on the edges, and explicit forward Euler
time stepping. Each step solves the per-cell mass system

	M du = dt * (cell flux + edge flux + boundary flux)

and adds the increment to the state in place. The mesh and the velocity
samples are immutable for the whole run; only U mutates, once per step.
*/
type Advection2D struct {
	El           *DG2D.Elements2D
	U            utils.Matrix // Np x K state, one column per cell
	VelType      VelocityType
	InitType     InitType
	InflowValue  float64 // Prescribed value used where v·n < 0 on the boundary
	SafetyFactor float64
	FinalTime    float64
	// ParallelDegree > 1 splits the edge pass across goroutines; the
	// scatter into cells stays sequential so there are no write races
	ParallelDegree int
	// Stop is polled between steps for a cooperative early exit; state is
	// never left mid-update
	Stop chan struct{}
	// PlotSteps is the number of steps between rendered frames
	PlotSteps int

	cellVel  [][3][2]float64 // velocity at the cell quadrature points
	edges    []edgeData      // per edge, in El.EdgeKeys order
	maxSpeed float64
	chart    *chartState
	PlotOnce sync.Once
}

// edgeData caches everything about one edge that does not change during
// the run: gauss weights, normal velocities and the basis traces of the
// connected cells at the gauss points.
type edgeData struct {
	e   *DG2D.Edge
	w   []float64
	vn  []float64       // v·n at each gauss point, n outward from slot 0
	phi [2][][3]float64 // [conn][point][basis]
}

func NewAdvection2D(N int, finalTime, safetyFactor float64,
	vt VelocityType, it InitType, inflowValue float64,
	VX, VY utils.Vector, EToV utils.Matrix,
	BCEdges map[types.BCTAG][]types.EdgeInt) (c *Advection2D, err error) {
	var (
		el *DG2D.Elements2D
	)
	if el, err = DG2D.NewElements2D(N, VX, VY, EToV, BCEdges); err != nil {
		return
	}
	if safetyFactor == 0 {
		safetyFactor = DG2D.DefaultSafetyFactor(N)
	}
	c = &Advection2D{
		El:             el,
		U:              utils.NewMatrix(el.Np, el.K),
		VelType:        vt,
		InitType:       it,
		InflowValue:    inflowValue,
		SafetyFactor:   safetyFactor,
		FinalTime:      finalTime,
		ParallelDegree: runtime.NumCPU(),
		Stop:           make(chan struct{}),
		PlotSteps:      1,
	}
	c.sampleVelocity()
	c.InitializeSolution()
	return
}

// sampleVelocity fixes the velocity at every quadrature point for the
// whole run and records the maximum speed for the CFL bound.
func (c *Advection2D) sampleVelocity() {
	var (
		el  = c.El
		vel = c.VelType.GetFunction()
	)
	c.cellVel = make([][3][2]float64, el.K)
	for k := 0; k < el.K; k++ {
		pts, _ := el.CellQuadrature(k)
		for q, pt := range pts {
			vx, vy := vel(pt[0], pt[1])
			c.cellVel[k][q] = [2]float64{vx, vy}
			c.maxSpeed = math.Max(c.maxSpeed, math.Hypot(vx, vy))
		}
	}
	c.edges = make([]edgeData, len(el.EdgeKeys))
	for ie, en := range el.EdgeKeys {
		var (
			e        = el.Edges[en]
			pts, wts = e.GaussPoints(el.N)
			ed       = edgeData{e: e, w: wts}
		)
		ed.vn = make([]float64, len(pts))
		for conn := 0; conn < int(e.NumConnectedTris); conn++ {
			ed.phi[conn] = make([][3]float64, len(pts))
		}
		for q, pt := range pts {
			vx, vy := vel(pt[0], pt[1])
			ed.vn[q] = vx*e.Normal[0] + vy*e.Normal[1]
			c.maxSpeed = math.Max(c.maxSpeed, math.Hypot(vx, vy))
			for conn := 0; conn < int(e.NumConnectedTris); conn++ {
				ed.phi[conn][q] = el.BasisAt(int(e.ConnectedTris[conn]), pt[0], pt[1])
			}
		}
		c.edges[ie] = ed
	}
}

// InitializeSolution projects the initial condition onto the discrete
// space: quadrature cell averages for degree 0, vertex interpolation for
// degree 1.
func (c *Advection2D) InitializeSolution() {
	var (
		el = c.El
		ic = c.InitType.GetFunction()
	)
	switch el.N {
	case 0:
		for k := 0; k < el.K; k++ {
			pts, _ := el.CellQuadrature(k)
			var sum float64
			for _, pt := range pts {
				sum += ic(pt[0], pt[1])
			}
			c.U.DataP[k] = sum / 3
		}
	case 1:
		for k := 0; k < el.K; k++ {
			for i := 0; i < 3; i++ {
				v := int(el.EToV.At(k, i))
				c.U.DataP[k+i*el.K] = ic(el.VX.AtVec(v), el.VY.AtVec(v))
			}
		}
	}
}

/*
RHS assembles the weak-form right hand side of the transport equation for
the current state: the volume flux against the basis gradients (zero for
degree 0), plus the upwind edge fluxes, interior and boundary. The mass
matrix is not applied here.
*/
func (c *Advection2D) RHS(U utils.Matrix) (RHSU utils.Matrix) {
	var (
		el = c.El
	)
	RHSU = utils.NewMatrix(el.Np, el.K)
	if el.N > 0 {
		for k := 0; k < el.K; k++ {
			pts, w := el.CellQuadrature(k)
			for q, pt := range pts {
				var (
					u  = el.FieldAt(U, k, pt[0], pt[1])
					fx = u * c.cellVel[k][q][0]
					fy = u * c.cellVel[k][q][1]
				)
				for i := 0; i < el.Np; i++ {
					RHSU.DataP[k+i*el.K] += w * (fx*el.GradX[k][i] + fy*el.GradY[k][i])
				}
			}
		}
	}

	contrib := make([][2][3]float64, len(c.edges))
	if c.ParallelDegree > 1 && len(c.edges) > c.ParallelDegree {
		var (
			wg = sync.WaitGroup{}
			pm = utils.NewPartitionMap(c.ParallelDegree, len(c.edges))
		)
		for np := 0; np < pm.ParallelDegree; np++ {
			wg.Add(1)
			go func(np int) {
				defer wg.Done()
				imin, imax := pm.GetBucketRange(np)
				for ie := imin; ie < imax; ie++ {
					contrib[ie] = c.edgeFlux(U, ie)
				}
			}(np)
		}
		wg.Wait()
	} else {
		for ie := range c.edges {
			contrib[ie] = c.edgeFlux(U, ie)
		}
	}
	// Sequential scatter: a cell can receive from up to three edges
	for ie, ed := range c.edges {
		for conn := 0; conn < int(ed.e.NumConnectedTris); conn++ {
			k := int(ed.e.ConnectedTris[conn])
			for i := 0; i < el.Np; i++ {
				RHSU.DataP[k+i*el.K] += contrib[ie][conn][i]
			}
		}
	}
	return
}

// edgeFlux integrates the upwind flux over one edge and returns the
// weak-form contribution to each connected cell. The stored normal points
// outward from slot 0, so slot 0 loses what slot 1 gains; flipping the
// slots flips both the normal velocity and the jump sign, leaving the
// contributions unchanged.
func (c *Advection2D) edgeFlux(U utils.Matrix, ie int) (contrib [2][3]float64) {
	var (
		el = c.El
		ed = &c.edges[ie]
		e  = ed.e
	)
	for q := range ed.w {
		var (
			vn = ed.vn[q]
			uM = c.trace(U, ed, 0, q)
			uP float64
		)
		if e.NumConnectedTris == 2 {
			uP = c.trace(U, ed, 1, q)
		} else {
			// Boundary: outflow uses the interior trace, inflow the
			// prescribed value
			uP = c.InflowValue
		}
		F := UpwindFlux(uM, uP, vn) * ed.w[q]
		for i := 0; i < el.Np; i++ {
			contrib[0][i] -= F * ed.phi[0][q][i]
		}
		if e.NumConnectedTris == 2 {
			for i := 0; i < el.Np; i++ {
				contrib[1][i] += F * ed.phi[1][q][i]
			}
		}
	}
	return
}

func (c *Advection2D) trace(U utils.Matrix, ed *edgeData, conn, q int) (u float64) {
	var (
		el = c.El
		k  = int(ed.e.ConnectedTris[conn])
	)
	for i := 0; i < el.Np; i++ {
		u += U.DataP[k+i*el.K] * ed.phi[conn][q][i]
	}
	return
}

// Step advances the state by one explicit Euler step: per cell,
// du = dt * Minv * rhs, added in place.
func (c *Advection2D) Step(dt float64) {
	var (
		el   = c.El
		rhs  = c.RHS(c.U)
		work = make([]float64, el.Np)
	)
	for k := 0; k < el.K; k++ {
		for i := 0; i < el.Np; i++ {
			work[i] = rhs.DataP[k+i*el.K]
		}
		for i := 0; i < el.Np; i++ {
			var du float64
			for j := 0; j < el.Np; j++ {
				du += el.MassInv[k].At(i, j) * work[j]
			}
			c.U.DataP[k+i*el.K] += dt * du
		}
	}
}

// TimeStep returns the fixed step size and count for the run: dt from the
// CFL bound, then rounded so the steps divide FinalTime exactly. A zero
// velocity field transports nothing, so a single step covers the run.
func (c *Advection2D) TimeStep() (dt float64, Nsteps int) {
	if c.maxSpeed < utils.NODETOL {
		return c.FinalTime, 1
	}
	dt = c.El.CFLTimeStep(c.maxSpeed, c.SafetyFactor)
	Ns := math.Ceil(c.FinalTime / dt)
	dt = c.FinalTime / Ns
	Nsteps = int(Ns)
	return
}

// Mass is the integral of the state over the domain, the conserved
// quantity of the scheme.
func (c *Advection2D) Mass() (mass float64) {
	mass = c.El.Integrate(c.U)
	return
}

func (c *Advection2D) Run(showGraph bool, graphDelay ...time.Duration) {
	var (
		logFrequency = 50
		dt, Nsteps   = c.TimeStep()
		mass0        = c.Mass()
		Time         float64
	)
	fmt.Printf("Velocity field: [%s], initial condition: [%s]\n",
		c.VelType.Print(), c.InitType.Print())
	fmt.Printf("K = %d, N = %d, dt = %8.6f, Nsteps = %d, mass = %10.8f\n",
		c.El.K, c.El.N, dt, Nsteps, mass0)

	start := time.Now()
	for tstep := 0; tstep < Nsteps; tstep++ {
		select {
		case <-c.Stop:
			fmt.Printf("Stopped at step %d, Time = %8.4f\n", tstep, Time)
			return
		default:
		}
		if tstep%c.PlotSteps == 0 {
			c.Plot(showGraph, graphDelay)
		}
		c.Step(dt)
		Time += dt
		if tstep%logFrequency == 0 {
			fmt.Printf("Time = %8.4f, step = %d, umin = %8.4f, umax = %8.4f, mass drift = %10.3e\n",
				Time, tstep, c.U.Min(), c.U.Max(), c.Mass()-mass0)
		}
	}
	elapsed := time.Since(start)
	rate := float64(elapsed.Microseconds()) / (float64(Nsteps * c.El.K))
	fmt.Printf("Total elapsed time = %5.2f seconds, %8.5f us/cell-step\n",
		elapsed.Seconds(), rate)
	fmt.Printf("Final mass drift = %10.3e\n", c.Mass()-mass0)
}
