package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	for _, cs := range studies {
		fmt.Printf("Title = %s, Order = %d, SafetyFactor = %5.2f\n", cs.title, cs.order, cs.safetyFactor)
		for i := range cs.numPTS {
			fmt.Printf("%d, %v, %v", cs.numPTS[i], cs.uRMS[i], cs.uMAX[i])
			if i > 0 {
				// Observed order from successive refinements, assuming the
				// point count scales like h^-2 in 2D
				h := math.Sqrt(float64(cs.numPTS[i-1]) / float64(cs.numPTS[i]))
				fmt.Printf(", order = %5.2f", math.Log(cs.uRMS[i]/cs.uRMS[i-1])/math.Log(h))
			}
			fmt.Printf("\n")
		}
	}
}

type ConvergenceStudy struct {
	title        string
	order        int
	numPTS       []int
	safetyFactor float64
	uRMS, uMAX   []float64
}

func NewConvergenceStudy(title string, order int, safetyFactor float64) *ConvergenceStudy {
	return &ConvergenceStudy{
		title:        title,
		order:        order,
		safetyFactor: safetyFactor,
	}
}

func (cs *ConvergenceStudy) Add(numPTS int, uRMS, uMAX float64) {
	cs.numPTS = append(cs.numPTS, numPTS)
	cs.uRMS = append(cs.uRMS, uRMS)
	cs.uMAX = append(cs.uMAX, uMAX)
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy) {
	var (
		records    [][]string
		err        error
		f          *os.File
		ok         bool
		cs         *ConvergenceStudy
		sf         float64
		uRMS, uMAX float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title, nptstxt, ntxt, sftxt := rec[0], rec[1], rec[2], rec[3]
		n, _ := strconv.Atoi(ntxt)
		npts, _ := strconv.Atoi(nptstxt)
		_, _ = fmt.Sscanf(sftxt, "%f", &sf)
		combTitle := title + ntxt
		if cs, ok = studies[combTitle]; !ok {
			cs = NewConvergenceStudy(title, n, sf)
			studies[combTitle] = cs
		}
		_, _ = fmt.Sscanf(rec[4], "%f", &uRMS)
		_, _ = fmt.Sscanf(rec[5], "%f", &uMAX)
		cs.Add(npts, uRMS, uMAX)
	}
	return
}
