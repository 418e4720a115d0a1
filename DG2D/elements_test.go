package DG2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/goadvect/geometry2D"
	"github.com/notargets/goadvect/types"
	"github.com/notargets/goadvect/utils"
)

// twoTriMesh is the unit square split along its diagonal, both cells CCW.
func twoTriMesh() (VX, VY utils.Vector, EToV utils.Matrix) {
	VX = utils.NewVector(4, []float64{0, 1, 1, 0})
	VY = utils.NewVector(4, []float64{0, 0, 1, 1})
	EToV = utils.NewMatrix(2, 3, []float64{
		0, 1, 2,
		0, 2, 3,
	})
	return
}

func TestElementGeometry(t *testing.T) {
	VX, VY, EToV := twoTriMesh()
	for _, N := range []int{0, 1} {
		el, err := NewElements2D(N, VX, VY, EToV, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, el.K)
		assert.InDelta(t, 0.5, el.Area[0], 1.e-14)
		assert.InDelta(t, 0.5, el.Area[1], 1.e-14)
		// Inscribed diameter of the right isoceles unit triangle
		dExpected := 4 * 0.5 / (2 + math.Sqrt2)
		assert.InDelta(t, dExpected, el.Diam[0], 1.e-14)
		assert.InDelta(t, dExpected, el.MinDiameter(), 1.e-14)
	}
}

func TestDegenerateMeshIsFatal(t *testing.T) {
	// Three collinear vertices: zero area must be reported at setup
	VX := utils.NewVector(3, []float64{0, 1, 2})
	VY := utils.NewVector(3, []float64{0, 0, 0})
	EToV := utils.NewMatrix(1, 3, []float64{0, 1, 2})
	_, err := NewElements2D(0, VX, VY, EToV, nil)
	assert.Error(t, err)
	_, err = NewElements2D(1, VX, VY, EToV, nil)
	assert.Error(t, err)
}

func TestEdgeTopology(t *testing.T) {
	VX, VY, EToV := twoTriMesh()
	BCEdges := map[types.BCTAG][]types.EdgeInt{
		types.NewBCTAG("wall"): {types.NewEdgeInt([2]int{0, 1})},
	}
	el, err := NewElements2D(0, VX, VY, EToV, BCEdges)
	require.NoError(t, err)
	assert.Equal(t, 5, len(el.Edges))

	var nInterior, nBoundary int
	for _, en := range el.EdgeKeys {
		e := el.Edges[en]
		// Unit normal
		assert.InDelta(t, 1., math.Hypot(e.Normal[0], e.Normal[1]), 1.e-14)
		// Outward from the first connected cell: positive projection of
		// the centroid-to-edge-midpoint direction
		k := int(e.ConnectedTris[0])
		mx := 0.5 * (e.X1[0] + e.X2[0])
		my := 0.5 * (e.X1[1] + e.X2[1])
		dot := (mx-el.CX[k])*e.Normal[0] + (my-el.CY[k])*e.Normal[1]
		assert.True(t, dot > 0)
		switch e.NumConnectedTris {
		case 1:
			nBoundary++
		case 2:
			nInterior++
			assert.NotEqual(t, e.ConnectedTris[0], e.ConnectedTris[1])
		}
	}
	assert.Equal(t, 1, nInterior)
	assert.Equal(t, 4, nBoundary)
	assert.Equal(t, types.BC_Wall, el.Edges[types.NewEdgeKey([2]int{0, 1})].BCType)

	// Tagging an edge absent from the mesh is a setup error
	bad := map[types.BCTAG][]types.EdgeInt{
		types.NewBCTAG("in"): {types.NewEdgeInt([2]int{1, 3})},
	}
	_, err = NewElements2D(0, VX, VY, EToV, bad)
	assert.Error(t, err)
}

func TestBasis(t *testing.T) {
	VX, VY, EToV := twoTriMesh()
	{ // Degree 0: constant basis, zero gradient everywhere
		el, err := NewElements2D(0, VX, VY, EToV, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, el.Np)
		for k := 0; k < el.K; k++ {
			assert.Equal(t, [3]float64{}, el.GradX[k])
			assert.Equal(t, [3]float64{}, el.GradY[k])
			phi := el.BasisAt(k, el.CX[k], el.CY[k])
			assert.Equal(t, 1., phi[0])
		}
	}
	{ // Degree 1: nodal at the vertices, partition of unity
		el, err := NewElements2D(1, VX, VY, EToV, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, el.Np)
		for k := 0; k < el.K; k++ {
			for i := 0; i < 3; i++ {
				v := int(el.EToV.At(k, i))
				phi := el.BasisAt(k, VX.AtVec(v), VY.AtVec(v))
				for j := 0; j < 3; j++ {
					expected := 0.
					if i == j {
						expected = 1.
					}
					assert.InDelta(t, expected, phi[j], 1.e-14)
				}
			}
			phi := el.BasisAt(k, el.CX[k]+0.05, el.CY[k]-0.03)
			assert.InDelta(t, 1., phi[0]+phi[1]+phi[2], 1.e-14)
		}
	}
}

func TestMassMatrix(t *testing.T) {
	VX, VY, EToV, BCEdges := geometry2D.NewUnitDiskMesh(4)
	for _, N := range []int{0, 1} {
		el, err := NewElements2D(N, VX, VY, EToV, BCEdges)
		require.NoError(t, err)

		// Integral of the constant 1 field is the mesh area
		ones := utils.NewMatrix(el.Np, el.K)
		for i := range ones.DataP {
			ones.DataP[i] = 1
		}
		var total float64
		for _, a := range el.Area {
			total += a
		}
		assert.InDelta(t, total, el.Integrate(ones), 1.e-12)

		// Local inverse really inverts: M^-1 * (M * x) == x
		for _, k := range []int{0, el.K / 2, el.K - 1} {
			x := utils.NewMatrix(el.Np, 1)
			for i := 0; i < el.Np; i++ {
				x.DataP[i] = float64(i + 1)
			}
			var M utils.Matrix
			if N == 0 {
				M = utils.NewMatrix(1, 1, []float64{el.Area[k]})
			} else {
				s := el.Area[k] / 12
				M = utils.NewMatrix(3, 3, []float64{
					2 * s, s, s,
					s, 2 * s, s,
					s, s, 2 * s,
				})
			}
			y := el.MassInv[k].Mul(M.Mul(x))
			for i := 0; i < el.Np; i++ {
				assert.InDelta(t, x.DataP[i], y.DataP[i], 1.e-12)
			}
		}
	}
}

func TestCFLTimeStep(t *testing.T) {
	VX, VY, EToV := twoTriMesh()
	el, err := NewElements2D(0, VX, VY, EToV, nil)
	require.NoError(t, err)
	dt := el.CFLTimeStep(2, DefaultSafetyFactor(0))
	assert.InDelta(t, el.MinDiameter()/2/2, dt, 1.e-14)
	assert.Equal(t, 2., DefaultSafetyFactor(0))
	assert.Equal(t, 16., DefaultSafetyFactor(1))
}
