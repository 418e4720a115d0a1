package DG2D

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/goadvect/types"
)

/*
An Edge records the one or two cells sharing it. The stored unit normal
points outward from ConnectedTris[0]; for the second cell the same normal
is inward, so flux formulas flip the sign for slot 1. Which cell occupies
slot 0 depends only on EToV traversal order and carries no meaning - the
assembled contributions are invariant to the labeling.
*/
type Edge struct {
	NumConnectedTris uint8 // Either 1 or 2
	ConnectedTris    [2]uint32
	BCType           types.BCFLAG // Used when only one cell is connected
	Normal           [2]float64   // Unit, outward from ConnectedTris[0]
	Length           float64
	X1, X2           [2]float64 // Endpoints, in slot 0 traversal order
}

// GaussPoints returns the points and weights integrating polynomials on
// the edge: the midpoint rule for degree 0, two-point Gauss for degree 1.
func (e *Edge) GaussPoints(N int) (pts [][2]float64, wts []float64) {
	lerp := func(t float64) [2]float64 {
		return [2]float64{
			e.X1[0] + t*(e.X2[0]-e.X1[0]),
			e.X1[1] + t*(e.X2[1]-e.X1[1]),
		}
	}
	if N == 0 {
		pts = [][2]float64{lerp(0.5)}
		wts = []float64{e.Length}
		return
	}
	var (
		offset = 0.5 / math.Sqrt(3)
	)
	pts = [][2]float64{lerp(0.5 - offset), lerp(0.5 + offset)}
	wts = []float64{0.5 * e.Length, 0.5 * e.Length}
	return
}

type EdgeKeySlice []types.EdgeKey

func (p EdgeKeySlice) Len() int           { return len(p) }
func (p EdgeKeySlice) Less(i, j int) bool { return p[i] < p[j] }
func (p EdgeKeySlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// Sort is a convenience method.
func (p EdgeKeySlice) Sort() { sort.Sort(p) }

// buildEdges traverses every cell's edges in counter-clockwise order,
// pairing shared edges through their order-independent key, then applies
// boundary tags.
func (el *Elements2D) buildEdges(BCEdges map[types.BCTAG][]types.EdgeInt) (err error) {
	el.Edges = make(map[types.EdgeKey]*Edge)
	for k := 0; k < el.K; k++ {
		var (
			v1 = int(el.EToV.At(k, 0))
			v2 = int(el.EToV.At(k, 1))
			v3 = int(el.EToV.At(k, 2))
		)
		for _, verts := range [3][2]int{{v1, v2}, {v2, v3}, {v3, v1}} {
			if err = el.addEdge(k, verts); err != nil {
				return
			}
		}
	}
	el.EdgeKeys = make(EdgeKeySlice, 0, len(el.Edges))
	for en := range el.Edges {
		el.EdgeKeys = append(el.EdgeKeys, en)
	}
	el.EdgeKeys.Sort()

	for tag, edges := range BCEdges {
		bf := tag.GetFLAG()
		for _, eInt := range edges {
			e, ok := el.Edges[eInt.GetKey()]
			if !ok {
				verts := eInt.GetVertices()
				err = fmt.Errorf("boundary edge [%d,%d] tagged %s is not in the mesh",
					verts[0], verts[1], tag)
				return
			}
			e.BCType = bf
		}
	}
	return
}

func (el *Elements2D) addEdge(k int, verts [2]int) (err error) {
	var (
		en    = types.NewEdgeKey(verts)
		e, ok = el.Edges[en]
	)
	if !ok {
		var (
			x1 = [2]float64{el.VX.AtVec(verts[0]), el.VY.AtVec(verts[0])}
			x2 = [2]float64{el.VX.AtVec(verts[1]), el.VY.AtVec(verts[1])}
			dx = [2]float64{x2[0] - x1[0], x2[1] - x1[1]}
		)
		length := math.Hypot(dx[0], dx[1])
		if length == 0 {
			err = fmt.Errorf("zero length edge [%d,%d] on cell %d", verts[0], verts[1], k)
			return
		}
		// CCW traversal puts the cell interior on the left, so the
		// right-hand perpendicular points outward
		e = &Edge{
			Normal: [2]float64{dx[1] / length, -dx[0] / length},
			Length: length,
			X1:     x1,
			X2:     x2,
		}
		el.Edges[en] = e
	} else if e.NumConnectedTris > 1 {
		err = fmt.Errorf("edge [%d,%d] is shared by more than two cells", verts[0], verts[1])
		return
	}
	e.ConnectedTris[e.NumConnectedTris] = uint32(k)
	e.NumConnectedTris++
	return
}
