package utils

import "fmt"

/*
PartitionMap splits the index range [0,MaxIndex) into ParallelDegree
near-equal buckets. The first (MaxIndex mod ParallelDegree) buckets carry
one extra index, so every index belongs to exactly one bucket.
*/
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 || maxIndex < 0 {
		panic(fmt.Errorf("invalid partition map request: NP = %d, maxIndex = %d",
			ParallelDegree, maxIndex))
	}
	if ParallelDegree > maxIndex && maxIndex > 0 {
		ParallelDegree = maxIndex
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	var (
		baseSize  = maxIndex / ParallelDegree
		remainder = maxIndex % ParallelDegree
		begin     int
	)
	for np := 0; np < ParallelDegree; np++ {
		size := baseSize
		if np < remainder {
			size++
		}
		pm.Partitions[np] = [2]int{begin, begin + size}
		begin += size
	}
	return
}

func (pm *PartitionMap) GetBucketRange(np int) (imin, imax int) {
	imin, imax = pm.Partitions[np][0], pm.Partitions[np][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(np int) (size int) {
	size = pm.Partitions[np][1] - pm.Partitions[np][0]
	return
}
