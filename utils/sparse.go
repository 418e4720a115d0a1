package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

/*
DOK is the assembly-stage wrapper for a sparse matrix: cheap random access
writes while cell blocks accumulate, then frozen into CSR for products.
*/
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		M: sparse.NewDOK(nr, nc),
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) { m.M.Set(i, j, val) }

// Accumulate adds val into entry (i,j), the usual finite element
// assembly operation.
func (m DOK) Accumulate(i, j int, val float64) {
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) ToCSR() (R CSR) {
	R = CSR{
		M: m.M.ToCSR(),
	}
	return
}

type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m CSR) NNZ() int { return m.M.NNZ() }

// MulVec computes b = M * x over the stored non-zeros only.
func (m CSR) MulVec(x []float64) (b []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc {
		panic(fmt.Errorf("dimension mismatch: matrix is %dx%d, vector is %d", nr, nc, len(x)))
	}
	b = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, val float64) {
		b[i] += val * x[j]
	})
	return
}
