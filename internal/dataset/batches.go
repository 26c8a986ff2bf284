package dataset

import (
	"math/rand"

	"github.com/samber/lo"
)

// Batches partitions one split into minibatches. When shuffle is set the
// split is reshuffled with the given seed before chunking, so an epoch's
// batch order is a deterministic function of the seed. When dropLast is set
// the trailing short batch is discarded and every batch holds exactly
// batchSize records.
func (d *Dataset) Batches(split string, batchSize int, shuffle, dropLast bool, seed int64) [][]Review {
	recs := d.bySplit[split]
	if len(recs) == 0 || batchSize <= 0 {
		return nil
	}

	ordered := make([]Review, len(recs))
	copy(ordered, recs)
	if shuffle {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(ordered), func(a, b int) { ordered[a], ordered[b] = ordered[b], ordered[a] })
	}

	batches := lo.Chunk(ordered, batchSize)
	if dropLast && len(batches) > 0 && len(batches[len(batches)-1]) < batchSize {
		batches = batches[:len(batches)-1]
	}
	return batches
}

// NumBatches returns how many full batches of batchSize one split yields.
func (d *Dataset) NumBatches(split string, batchSize int) int {
	if batchSize <= 0 {
		return 0
	}
	return len(d.bySplit[split]) / batchSize
}
