package Advection2D

import (
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	avsUtils "github.com/notargets/avs/utils"
)

type chartState struct {
	ch *chart2d.Chart2D
	gm geometry.TriMesh
}

// Plot renders the current state as a shaded vertex scalar over the mesh.
// Strictly output side: nothing feeds back into the solve.
func (c *Advection2D) Plot(showGraph bool, graphDelay []time.Duration) {
	if !showGraph {
		return
	}
	c.PlotOnce.Do(func() {
		var (
			el = c.El
			gm = geometry.TriMesh{
				XY:       make([]float32, 2*el.VX.Len()),
				TriVerts: make([][3]int64, el.K),
			}
		)
		for i, x := range el.VX.DataP {
			gm.XY[2*i] = float32(x)
			gm.XY[2*i+1] = float32(el.VY.DataP[i])
		}
		for k := 0; k < el.K; k++ {
			for n := 0; n < 3; n++ {
				gm.TriVerts[k][n] = int64(el.EToV.At(k, n))
			}
		}
		xMin, xMax, yMin, yMax := getSquareBoundingBox(
			float32(el.VX.Min()), float32(el.VX.Max()),
			float32(el.VY.Min()), float32(el.VY.Max()))
		ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
			1280, 1024, avsUtils.WHITE, avsUtils.BLACK)
		ch.AddTriMesh(gm)
		c.chart = &chartState{ch: ch, gm: gm}
	})

	field := c.VertexField()
	vs := geometry.VertexScalar{
		TMesh:       &c.chart.gm,
		FieldValues: field,
	}
	c.chart.ch.AddShadedVertexScalar(&vs, c.fieldMin(field), c.fieldMax(field))
	if len(graphDelay) != 0 {
		time.Sleep(graphDelay[0])
	}
}

// VertexField averages the discontinuous state onto the mesh vertices for
// rendering: adjacent cell values for degree 0, adjacent nodal values for
// degree 1.
func (c *Advection2D) VertexField() (field []float32) {
	var (
		el    = c.El
		sum   = make([]float64, el.VX.Len())
		count = make([]float64, el.VX.Len())
	)
	for k := 0; k < el.K; k++ {
		for n := 0; n < 3; n++ {
			v := int(el.EToV.At(k, n))
			switch el.N {
			case 0:
				sum[v] += c.U.DataP[k]
			case 1:
				sum[v] += c.U.DataP[k+n*el.K]
			}
			count[v]++
		}
	}
	field = make([]float32, len(sum))
	for i := range sum {
		if count[i] > 0 {
			field[i] = float32(sum[i] / count[i])
		}
	}
	return
}

func (c *Advection2D) fieldMin(field []float32) (fMin float32) {
	fMin = field[0]
	for _, f := range field {
		if f < fMin {
			fMin = f
		}
	}
	return
}

func (c *Advection2D) fieldMax(field []float32) (fMax float32) {
	fMax = field[0]
	for _, f := range field {
		if f > fMax {
			fMax = f
		}
	}
	return
}

func getSquareBoundingBox(xMin, xMax, yMin, yMax float32) (xBMin,
	xBMax, yBMin, yBMax float32) {
	xRange := xMax - xMin
	yRange := yMax - yMin
	if yRange > xRange {
		yBMin = yMin
		yBMax = yMax
		xCent := xRange/2. + xMin
		xBMin = xCent - yRange/2.
		xBMax = xCent + yRange/2.
	} else {
		xBMin = xMin
		xBMax = xMax
		yCent := yRange/2. + yMin
		yBMin = yCent - xRange/2.
		yBMax = yCent + xRange/2.
	}
	return
}
