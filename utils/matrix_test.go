package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestMatrix(t *testing.T) {
	{ // Row-major storage: (i,j) lives at DataP[j+i*nc]
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, 2., M.At(0, 1))
		assert.Equal(t, 4., M.DataP[3])
		assert.Equal(t, 6., M.Max())
		assert.Equal(t, 1., M.Min())
	}
	{ // Chainable mutators act in place
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A := NewMatrix(2, 2, []float64{1, 1, 1, 1})
		M.Add(A).Scale(2)
		assert.Equal(t, []float64{4, 6, 8, 10}, M.DataP)
		M.Subtract(A).Apply(func(v float64) float64 { return v - 1 })
		assert.Equal(t, []float64{2, 4, 6, 8}, M.DataP)
		M.ElMul(A)
		assert.Equal(t, []float64{2, 4, 6, 8}, M.DataP)
	}
	{ // Copy does not alias
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		C := M.Copy()
		C.Scale(0)
		assert.Equal(t, 4., M.At(1, 1))
	}
	{ // Mul and Transpose
		M := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		Mt := M.Transpose()
		P := M.Mul(Mt)
		assert.Equal(t, 14., P.At(0, 0))
		assert.Equal(t, 32., P.At(0, 1))
		assert.Equal(t, 77., P.At(1, 1))
	}
	{ // Row and Col extraction
		M := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		assert.Equal(t, []float64{4, 5, 6}, M.Row(1).DataP)
		assert.Equal(t, []float64{2, 5}, M.Col(1).DataP)
	}
}

func TestMatrixSolve(t *testing.T) {
	{ // Inverse of a P1 style mass matrix
		M := NewMatrix(3, 3, []float64{
			2, 1, 1,
			1, 2, 1,
			1, 1, 2,
		})
		Minv, err := M.Inverse()
		assert.NoError(t, err)
		I := M.Mul(Minv)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				expected := 0.
				if i == j {
					expected = 1.
				}
				assert.True(t, near(expected, I.At(i, j), 1.e-12))
			}
		}
	}
	{ // LUSolve recovers a known solution
		A := NewMatrix(2, 2, []float64{4, 1, 1, 3})
		b := NewMatrix(2, 1, []float64{9, 7})
		X, err := A.LUSolve(b)
		assert.NoError(t, err)
		assert.True(t, near(2., X.At(0, 0), 1.e-12))
		assert.True(t, near(1., X.At(1, 0), 1.e-12))
	}
	{ // Singular systems report an error rather than garbage
		A := NewMatrix(2, 2, []float64{1, 2, 2, 4})
		_, err := A.Inverse()
		assert.Error(t, err)
	}
}

func TestVector(t *testing.T) {
	v := NewVector(4, []float64{1, -2, 3, -4})
	assert.Equal(t, -4., v.Min())
	assert.Equal(t, 3., v.Max())
	assert.Equal(t, -2., v.Sum())
	w := v.Copy().Apply(math.Abs)
	assert.Equal(t, 10., w.Sum())
	assert.Equal(t, -2., v.AtVec(1)) // Copy did not alias
	assert.Equal(t, 30., w.Dot(w.Copy()))
}

func TestPartitionMap(t *testing.T) {
	pm := NewPartitionMap(4, 10)
	var total int
	var prevEnd int
	for np := 0; np < pm.ParallelDegree; np++ {
		imin, imax := pm.GetBucketRange(np)
		assert.Equal(t, prevEnd, imin) // contiguous, no gaps
		assert.Equal(t, imax-imin, pm.GetBucketDimension(np))
		total += imax - imin
		prevEnd = imax
	}
	assert.Equal(t, 10, total)
	// More workers than indices collapses to one index per bucket
	pm = NewPartitionMap(64, 3)
	assert.Equal(t, 3, pm.ParallelDegree)
}

func TestSparse(t *testing.T) {
	d := NewDOK(3, 3)
	d.Set(0, 0, 2)
	d.Accumulate(0, 0, 1) // assembly-style accumulation
	d.Set(1, 2, 4)
	d.Set(2, 1, 5)
	c := d.ToCSR()
	assert.Equal(t, 3, c.NNZ())
	b := c.MulVec([]float64{1, 2, 3})
	assert.Equal(t, []float64{3, 12, 10}, b)
}
