package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/notargets/goadvect/InputParameters"
)

func TestRunAdvect(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
PolynomialOrder: 1
FinalTime: 0.25
VelocityType: rotation # Can be zero or uniform
InitType: bump # Can be gaussian or uniform
MeshRings: 2
BCs:
  far:
      inflowValue: 0.5
`)
	var input InputParameters.AdvectionParameters
	if err = input.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, input.BCs["far"]["inflowValue"], 0.5)
	input.Print()
	assert.Equal(t, input.FinalTime, 0.25)

	ma := &ModelAdvect{PlotSteps: 1}
	RunAdvect(ma, &input)
	assert.Equal(t, input.InflowValue, 0.5)
}
