package types

import "strings"

//go:generate stringer -type=BCFLAG

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Out
	BC_Wall
	BC_Far
)

var BCNameMap = map[string]BCFLAG{
	"inflow":  BC_In,
	"in":      BC_In,
	"out":     BC_Out,
	"outflow": BC_Out,
	"wall":    BC_Wall,
	"far":     BC_Far,
}

/*
A BCTAG is the normalized form of a boundary label read from a mesh file or
attached by a mesh generator. Tags compare case-insensitively, so "FAR",
"Far" and "far" address the same boundary group.
*/
type BCTAG string

func NewBCTAG(label string) (bt BCTAG) {
	bt = BCTAG(strings.ToLower(strings.TrimSpace(label)))
	return
}

func (bt BCTAG) GetFLAG() (bf BCFLAG) {
	var (
		ok bool
	)
	if bf, ok = BCNameMap[string(bt)]; !ok {
		bf = BC_None
	}
	return
}
