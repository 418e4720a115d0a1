package geometry2D

import (
	"fmt"
	"math"

	"github.com/notargets/goadvect/types"
	"github.com/notargets/goadvect/utils"
)

/*
Built-in structured triangulations used when no grid file is supplied. Both
generators emit counter-clockwise triangles so downstream signed areas are
positive, and tag every boundary edge so the solver can apply inflow or
outflow treatment by the sign of the normal velocity.
*/

// NewUnitDiskMesh triangulates the unit disk from nRings concentric rings.
// Ring i carries 6i vertices at radius i/nRings, giving 6*nRings^2
// triangles total. The outer ring is tagged "far".
func NewUnitDiskMesh(nRings int) (VX, VY utils.Vector, EToV utils.Matrix, BCEdges map[types.BCTAG][]types.EdgeInt) {
	if nRings < 1 {
		panic(fmt.Errorf("unable to build disk mesh with %d rings", nRings))
	}
	var (
		Nv = 1 + 3*nRings*(nRings+1) // center plus sum of 6i per ring
		K  = 6 * nRings * nRings
		x  = make([]float64, Nv)
		y  = make([]float64, Nv)
	)
	ringBase := func(i int) int { // index of the first vertex on ring i
		return 1 + 3*i*(i-1)
	}
	for i := 1; i <= nRings; i++ {
		var (
			m    = 6 * i
			r    = float64(i) / float64(nRings)
			base = ringBase(i)
		)
		for j := 0; j < m; j++ {
			theta := 2 * math.Pi * float64(j) / float64(m)
			x[base+j] = r * math.Cos(theta)
			y[base+j] = r * math.Sin(theta)
		}
	}
	VX, VY = utils.NewVector(Nv, x), utils.NewVector(Nv, y)

	EToV = utils.NewMatrix(K, 3)
	var k int
	addTri := func(v1, v2, v3 int) {
		EToV.Set(k, 0, float64(v1))
		EToV.Set(k, 1, float64(v2))
		EToV.Set(k, 2, float64(v3))
		orientCCW(EToV, k, x, y)
		k++
	}
	// Center fan against ring 1
	for j := 0; j < 6; j++ {
		addTri(0, ringBase(1)+j, ringBase(1)+(j+1)%6)
	}
	// Annulus between ring i-1 and ring i, merged by angle fraction
	for i := 2; i <= nRings; i++ {
		var (
			m         = 6 * (i - 1)
			n         = 6 * i
			inner     = ringBase(i - 1)
			outer     = ringBase(i)
			iIn, iOut int
		)
		for iIn < m || iOut < n {
			advanceOuter := iOut < n &&
				(iIn == m || float64(iOut+1)/float64(n) <= float64(iIn+1)/float64(m))
			if advanceOuter {
				addTri(outer+iOut%n, outer+(iOut+1)%n, inner+iIn%m)
				iOut++
			} else {
				addTri(inner+(iIn+1)%m, inner+iIn%m, outer+iOut%n)
				iIn++
			}
		}
	}
	if k != K {
		panic(fmt.Errorf("disk triangulation produced %d triangles, expected %d", k, K))
	}

	BCEdges = make(map[types.BCTAG][]types.EdgeInt)
	var (
		tag  = types.NewBCTAG("far")
		m    = 6 * nRings
		base = ringBase(nRings)
	)
	for j := 0; j < m; j++ {
		BCEdges[tag] = append(BCEdges[tag],
			types.NewEdgeInt([2]int{base + j, base + (j+1)%m}))
	}
	return
}

// NewRectangleMesh splits an nx x ny grid of quads into triangle pairs.
// Boundary tags: left "in", right "out", bottom and top "wall".
func NewRectangleMesh(nx, ny int, xmin, xmax, ymin, ymax float64) (VX, VY utils.Vector, EToV utils.Matrix, BCEdges map[types.BCTAG][]types.EdgeInt) {
	if nx < 1 || ny < 1 {
		panic(fmt.Errorf("unable to build rectangle mesh %d x %d", nx, ny))
	}
	var (
		Nv = (nx + 1) * (ny + 1)
		K  = 2 * nx * ny
		x  = make([]float64, Nv)
		y  = make([]float64, Nv)
	)
	vid := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			x[vid(i, j)] = xmin + (xmax-xmin)*float64(i)/float64(nx)
			y[vid(i, j)] = ymin + (ymax-ymin)*float64(j)/float64(ny)
		}
	}
	VX, VY = utils.NewVector(Nv, x), utils.NewVector(Nv, y)

	EToV = utils.NewMatrix(K, 3)
	var k int
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			var (
				a = vid(i, j)
				b = vid(i+1, j)
				c = vid(i+1, j+1)
				d = vid(i, j+1)
			)
			EToV.Set(k, 0, float64(a))
			EToV.Set(k, 1, float64(b))
			EToV.Set(k, 2, float64(c))
			k++
			EToV.Set(k, 0, float64(a))
			EToV.Set(k, 1, float64(c))
			EToV.Set(k, 2, float64(d))
			k++
		}
	}

	BCEdges = make(map[types.BCTAG][]types.EdgeInt)
	var (
		in   = types.NewBCTAG("in")
		out  = types.NewBCTAG("out")
		wall = types.NewBCTAG("wall")
	)
	for j := 0; j < ny; j++ {
		BCEdges[in] = append(BCEdges[in], types.NewEdgeInt([2]int{vid(0, j+1), vid(0, j)}))
		BCEdges[out] = append(BCEdges[out], types.NewEdgeInt([2]int{vid(nx, j), vid(nx, j+1)}))
	}
	for i := 0; i < nx; i++ {
		BCEdges[wall] = append(BCEdges[wall], types.NewEdgeInt([2]int{vid(i, 0), vid(i+1, 0)}))
		BCEdges[wall] = append(BCEdges[wall], types.NewEdgeInt([2]int{vid(i+1, ny), vid(i, ny)}))
	}
	return
}

// orientCCW swaps the second and third vertices of triangle k when the
// signed area is negative.
func orientCCW(EToV utils.Matrix, k int, x, y []float64) {
	var (
		v1 = int(EToV.At(k, 0))
		v2 = int(EToV.At(k, 1))
		v3 = int(EToV.At(k, 2))
	)
	area2 := (x[v2]-x[v1])*(y[v3]-y[v1]) - (x[v3]-x[v1])*(y[v2]-y[v1])
	if area2 < 0 {
		EToV.Set(k, 1, float64(v3))
		EToV.Set(k, 2, float64(v2))
	}
}
