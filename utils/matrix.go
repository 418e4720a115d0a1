package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

/*
Matrix wraps a gonum dense matrix with a direct alias of the backing store
in DataP. Storage is row-major: element (i,j) of an nr x nc matrix lives at
DataP[j+i*nc], so a field stored Np x K addresses point i of element k at
DataP[k+i*K].
*/
type Matrix struct {
	M     *mat.Dense
	DataP []float64
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var (
		m *mat.Dense
	)
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v",
				nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{
		M:     m,
		DataP: m.RawMatrix().Data,
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Data() []float64           { return m.DataP }
func (m Matrix) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m Matrix) IsEmpty() bool { return m.M == nil }

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	copy(R.DataP, m.DataP)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.DataP[i+j*nr] = m.DataP[j+i*nc]
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.Dims()
		_, ncA = A.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

// Chainable methods below mutate the receiver and return it

func (m Matrix) Scale(a float64) Matrix {
	for i := range m.DataP {
		m.DataP[i] *= a
	}
	return m
}

func (m Matrix) AddScalar(a float64) Matrix {
	for i := range m.DataP {
		m.DataP[i] += a
	}
	return m
}

func (m Matrix) Add(A Matrix) Matrix {
	m.checkDims(A)
	for i, val := range A.DataP {
		m.DataP[i] += val
	}
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix {
	m.checkDims(A)
	for i, val := range A.DataP {
		m.DataP[i] -= val
	}
	return m
}

func (m Matrix) ElMul(A Matrix) Matrix {
	m.checkDims(A)
	for i, val := range A.DataP {
		m.DataP[i] *= val
	}
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix {
	for i, val := range m.DataP {
		m.DataP[i] = f(val)
	}
	return m
}

func (m Matrix) Min() (min float64) {
	min = m.DataP[0]
	for _, val := range m.DataP {
		if val < min {
			min = val
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	max = m.DataP[0]
	for _, val := range m.DataP {
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) Row(i int) (R Vector) { // Does not change receiver
	var (
		_, nc = m.Dims()
	)
	R = NewVector(nc)
	for j := 0; j < nc; j++ {
		R.DataP[j] = m.DataP[j+i*nc]
	}
	return
}

func (m Matrix) Col(j int) (R Vector) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewVector(nr)
	for i := 0; i < nr; i++ {
		R.DataP[i] = m.DataP[j+i*nc]
	}
	return
}

// Inverse returns a newly allocated inverse. A singular input surfaces
// gonum's error, which callers treat as fatal.
func (m Matrix) Inverse() (R Matrix, err error) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	err = R.M.Inverse(m.M)
	return
}

// LUSolve solves m * X = b through an LU decomposition. The error reports
// a singular or ill-conditioned left-hand side.
func (m Matrix) LUSolve(b Matrix) (X Matrix, err error) {
	var (
		lu     mat.LU
		nr, _  = m.Dims()
		_, ncB = b.Dims()
	)
	lu.Factorize(m.M)
	X = NewMatrix(nr, ncB)
	err = lu.SolveTo(X.M, false, b.M)
	return
}

func (m Matrix) checkDims(A Matrix) {
	var (
		nr, nc   = m.Dims()
		nrA, ncA = A.Dims()
	)
	if nr != nrA || nc != ncA {
		panic(fmt.Errorf("dimension mismatch: have %dx%d and %dx%d", nr, nc, nrA, ncA))
	}
}
