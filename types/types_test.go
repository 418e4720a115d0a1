package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgePacking(t *testing.T) {
	{ // EdgeKey is direction independent
		ek1 := NewEdgeKey([2]int{10, 250})
		ek2 := NewEdgeKey([2]int{250, 10})
		assert.Equal(t, ek1, ek2)
		verts := ek1.GetVertices(false)
		assert.Equal(t, [2]int{10, 250}, verts)
		verts = ek1.GetVertices(true)
		assert.Equal(t, [2]int{250, 10}, verts)
	}
	{ // Large vertex indices survive the round trip
		ek := NewEdgeKey([2]int{1<<31 - 1, 3})
		assert.Equal(t, [2]int{3, 1<<31 - 1}, ek.GetVertices(false))
	}
	{ // EdgeInt preserves direction
		e := NewEdgeInt([2]int{250, 10})
		assert.Equal(t, [2]int{250, 10}, e.GetVertices())
		e = NewEdgeInt([2]int{10, 250})
		assert.Equal(t, [2]int{10, 250}, e.GetVertices())
		// Both directions map to the same key
		assert.Equal(t, NewEdgeInt([2]int{250, 10}).GetKey(), e.GetKey())
	}
}

func TestBCTags(t *testing.T) {
	tokens := []string{"In", "OUT", "wall", "Far", "inFlow", "mystery"}
	flags := []BCFLAG{BC_In, BC_Out, BC_Wall, BC_Far, BC_In, BC_None}
	for i, token := range tokens {
		bt := NewBCTAG(token)
		assert.Equal(t, flags[i], bt.GetFLAG())
	}
	// Tags normalize case and surrounding space
	assert.Equal(t, NewBCTAG("  FAR "), NewBCTAG("far"))
}
