package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type AdvectionParameters struct {
	Title           string                        `yaml:"Title"`
	PolynomialOrder int                           `yaml:"PolynomialOrder"`
	FinalTime       float64                       `yaml:"FinalTime"`
	SafetyFactor    float64                       `yaml:"SafetyFactor"` // 0 selects the default for the order
	VelocityType    string                        `yaml:"VelocityType"`
	InitType        string                        `yaml:"InitType"`
	InflowValue     float64                       `yaml:"InflowValue"`
	MeshRings       int                           `yaml:"MeshRings"` // Rings of the generated disk mesh when no grid file is given
	GridFile        string                        `yaml:"GridFile"`
	BCs             map[string]map[string]float64 `yaml:"BCs"` // First key is BC name/type, second is parameter name
}

func (ap *AdvectionParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ap); err != nil {
		return err
	}
	if ap.PolynomialOrder < 0 || ap.PolynomialOrder > 1 {
		return fmt.Errorf("polynomial order must be 0 or 1, have %d", ap.PolynomialOrder)
	}
	if ap.FinalTime < 0 {
		return fmt.Errorf("final time must not be negative, have %v", ap.FinalTime)
	}
	if ap.VelocityType == "" {
		ap.VelocityType = "rotation"
	}
	if ap.InitType == "" {
		ap.InitType = "bump"
	}
	if ap.MeshRings == 0 {
		ap.MeshRings = 8
	}
	return nil
}

func (ap *AdvectionParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ap.Title)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ap.FinalTime)
	fmt.Printf("%8.5f\t\t= SafetyFactor\n", ap.SafetyFactor)
	fmt.Printf("[%s]\t\t= Velocity Type\n", ap.VelocityType)
	fmt.Printf("[%s]\t\t= InitType\n", ap.InitType)
	fmt.Printf("[%d]\t\t\t\t= Polynomial Order\n", ap.PolynomialOrder)
	if len(ap.GridFile) != 0 {
		fmt.Printf("[%s]\t\t= Grid File\n", ap.GridFile)
	} else {
		fmt.Printf("[%d]\t\t\t\t= Disk Mesh Rings\n", ap.MeshRings)
	}
	keys := make([]string, len(ap.BCs))
	i := 0
	for k := range ap.BCs {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ap.BCs[key])
	}
}
