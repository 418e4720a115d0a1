package DG2D

import (
	"fmt"
	"math"

	"github.com/notargets/goadvect/types"
	"github.com/notargets/goadvect/utils"
)

/*
Elements2D carries the discrete machinery for a piecewise polynomial field
of degree 0 or 1 on an unstructured triangle mesh: cell geometry, basis
gradients, local mass matrices with precomputed inverses, the global sparse
mass matrix and the shared-edge topology.

Fields are stored Np x K, one column per cell: for degree 0 the single row
is the cell value, for degree 1 the three rows are the nodal values at the
cell's vertices in EToV order. DataP[k+i*K] addresses node i of cell k.
*/
type Elements2D struct {
	K, N, Np int // Number of cells, polynomial degree, modes per cell
	VX, VY   utils.Vector
	EToV     utils.Matrix // K x 3 vertex indices, counter-clockwise
	Area     []float64
	Diam     []float64 // Inscribed circle diameter, used for the CFL bound
	CX, CY   []float64 // Centroids
	GradX    [][3]float64
	GradY    [][3]float64
	MassInv  []utils.Matrix
	MassCSR  utils.CSR
	Edges    map[types.EdgeKey]*Edge
	EdgeKeys EdgeKeySlice // Sorted for deterministic traversal
}

func NewElements2D(N int, VX, VY utils.Vector, EToV utils.Matrix,
	BCEdges map[types.BCTAG][]types.EdgeInt) (el *Elements2D, err error) {
	if N < 0 || N > 1 {
		err = fmt.Errorf("unsupported polynomial degree %d, must be 0 or 1", N)
		return
	}
	var (
		K, _ = EToV.Dims()
		Np   = 1
	)
	if N == 1 {
		Np = 3
	}
	el = &Elements2D{
		K:       K,
		N:       N,
		Np:      Np,
		VX:      VX,
		VY:      VY,
		EToV:    EToV,
		Area:    make([]float64, K),
		Diam:    make([]float64, K),
		CX:      make([]float64, K),
		CY:      make([]float64, K),
		GradX:   make([][3]float64, K),
		GradY:   make([][3]float64, K),
		MassInv: make([]utils.Matrix, K),
	}
	if err = el.computeGeometry(); err != nil {
		return
	}
	if err = el.computeMassMatrices(); err != nil {
		return
	}
	if err = el.buildEdges(BCEdges); err != nil {
		return
	}
	return
}

// computeGeometry fills areas, centroids, inscribed diameters and the
// degree 1 basis gradients. A non-positive area is the degenerate mesh
// condition and is fatal before any time stepping can begin.
func (el *Elements2D) computeGeometry() (err error) {
	for k := 0; k < el.K; k++ {
		var (
			x1, y1, x2, y2, x3, y3 = el.cellCoordinates(k)
		)
		area := 0.5 * ((x2-x1)*(y3-y1) - (x3-x1)*(y2-y1))
		if area <= 0 {
			err = fmt.Errorf("degenerate cell %d: signed area = %v", k, area)
			return
		}
		el.Area[k] = area
		el.CX[k] = (x1 + x2 + x3) / 3
		el.CY[k] = (y1 + y2 + y3) / 3
		perimeter := math.Hypot(x2-x1, y2-y1) +
			math.Hypot(x3-x2, y3-y2) + math.Hypot(x1-x3, y1-y3)
		el.Diam[k] = 4 * area / perimeter
		if el.N == 1 {
			oo2A := 1. / (2 * area)
			el.GradX[k] = [3]float64{(y2 - y3) * oo2A, (y3 - y1) * oo2A, (y1 - y2) * oo2A}
			el.GradY[k] = [3]float64{(x3 - x2) * oo2A, (x1 - x3) * oo2A, (x2 - x1) * oo2A}
		}
	}
	return
}

// computeMassMatrices builds the per-cell mass matrix inverse and the
// global sparse mass matrix. For degree 0 the local matrix is the cell
// area; for degree 1 it is the standard nodal triangle mass matrix
// area/12 * [[2,1,1],[1,2,1],[1,1,2]].
func (el *Elements2D) computeMassMatrices() (err error) {
	var (
		Np  = el.Np
		dok = utils.NewDOK(Np*el.K, Np*el.K)
	)
	for k := 0; k < el.K; k++ {
		var M utils.Matrix
		switch el.N {
		case 0:
			M = utils.NewMatrix(1, 1, []float64{el.Area[k]})
		case 1:
			s := el.Area[k] / 12
			M = utils.NewMatrix(3, 3, []float64{
				2 * s, s, s,
				s, 2 * s, s,
				s, s, 2 * s,
			})
		}
		if el.MassInv[k], err = M.Inverse(); err != nil {
			err = fmt.Errorf("singular mass matrix on cell %d: %w", k, err)
			return
		}
		for i := 0; i < Np; i++ {
			for j := 0; j < Np; j++ {
				el.dokAccumulate(dok, k, i, j, M.At(i, j))
			}
		}
	}
	el.MassCSR = dok.ToCSR()
	return
}

func (el *Elements2D) dokAccumulate(dok utils.DOK, k, i, j int, val float64) {
	// Global degrees of freedom share the Np x K field layout
	dok.Accumulate(k+i*el.K, k+j*el.K, val)
}

func (el *Elements2D) cellCoordinates(k int) (x1, y1, x2, y2, x3, y3 float64) {
	var (
		v1 = int(el.EToV.At(k, 0))
		v2 = int(el.EToV.At(k, 1))
		v3 = int(el.EToV.At(k, 2))
	)
	x1, y1 = el.VX.AtVec(v1), el.VY.AtVec(v1)
	x2, y2 = el.VX.AtVec(v2), el.VY.AtVec(v2)
	x3, y3 = el.VX.AtVec(v3), el.VY.AtVec(v3)
	return
}

// BasisAt evaluates the cell's basis functions at a physical point. The
// degree 1 nodal basis is expressed through the centroid: each function is
// 1/3 at the centroid and varies with its constant gradient, which keeps
// the evaluation independent of local vertex labeling conventions.
func (el *Elements2D) BasisAt(k int, x, y float64) (phi [3]float64) {
	if el.N == 0 {
		phi[0] = 1
		return
	}
	var (
		dx, dy = x - el.CX[k], y - el.CY[k]
	)
	for i := 0; i < 3; i++ {
		phi[i] = 1./3. + el.GradX[k][i]*dx + el.GradY[k][i]*dy
	}
	return
}

// FieldAt evaluates the field U at a physical point inside cell k.
func (el *Elements2D) FieldAt(U utils.Matrix, k int, x, y float64) (u float64) {
	phi := el.BasisAt(k, x, y)
	for i := 0; i < el.Np; i++ {
		u += U.DataP[k+i*el.K] * phi[i]
	}
	return
}

// CellQuadrature returns the edge-midpoint rule for cell k: three points
// with weight area/3, exact for quadratics.
func (el *Elements2D) CellQuadrature(k int) (pts [3][2]float64, w float64) {
	var (
		x1, y1, x2, y2, x3, y3 = el.cellCoordinates(k)
	)
	pts[0] = [2]float64{0.5 * (x1 + x2), 0.5 * (y1 + y2)}
	pts[1] = [2]float64{0.5 * (x2 + x3), 0.5 * (y2 + y3)}
	pts[2] = [2]float64{0.5 * (x3 + x1), 0.5 * (y3 + y1)}
	w = el.Area[k] / 3
	return
}

// Integrate computes the mass functional 1' * M * u over the whole domain
// through the global sparse mass matrix.
func (el *Elements2D) Integrate(U utils.Matrix) (mass float64) {
	b := el.MassCSR.MulVec(U.DataP)
	for _, val := range b {
		mass += val
	}
	return
}

func (el *Elements2D) MinDiameter() (d float64) {
	d = el.Diam[0]
	for _, diam := range el.Diam {
		if diam < d {
			d = diam
		}
	}
	return
}

// DefaultSafetyFactor returns the empirical CFL safety factor per degree.
// These are tunable starting points, not derived bounds; they do not
// generalize to higher degrees without separate calibration.
func DefaultSafetyFactor(N int) (sf float64) {
	switch N {
	case 0:
		sf = 2
	default:
		sf = 16
	}
	return
}

// CFLTimeStep returns dt = minDiam / maxSpeed / safetyFactor. A zero
// maxSpeed means nothing is transported and any dt is stable; the caller
// handles that case.
func (el *Elements2D) CFLTimeStep(maxSpeed, safetyFactor float64) (dt float64) {
	dt = el.MinDiameter() / maxSpeed / safetyFactor
	return
}
