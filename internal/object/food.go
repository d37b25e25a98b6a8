package object

import (
	"math/rand"

	"github.com/tomz197/snake/internal/physics"
)

// defaultMaxSamples is how many uniform samples FoodSpawner tries before it
// falls back to enumerating free cells.
const defaultMaxSamples = 32

// FoodSpawner places food uniformly at random on cells the snake does not occupy.
type FoodSpawner struct {
	rng        *rand.Rand
	bounds     physics.Bounds
	maxSamples int
	free       []int // reused between fallbacks
}

// NewFoodSpawner creates a spawner for bounds b drawing from rng.
func NewFoodSpawner(b physics.Bounds, rng *rand.Rand) *FoodSpawner {
	return &FoodSpawner{
		rng:        rng,
		bounds:     b,
		maxSamples: defaultMaxSamples,
	}
}

// Place picks a free cell. Returns false only when every cell is occupied.
//
// Rejection sampling keeps the choice uniform over free cells; once the board
// is crowded enough that samples keep hitting the snake, the remaining free
// cells are listed and one is picked directly.
func (f *FoodSpawner) Place(occ *physics.Occupancy) (Cell, bool) {
	if occ.Full() {
		return Cell{}, false
	}

	size := f.bounds.Size()
	for range f.maxSamples {
		x := f.rng.Intn(size) + f.bounds.Min()
		z := f.rng.Intn(size) + f.bounds.Min()
		if !occ.Occupied(x, z) {
			return Cell{X: x, Z: z}, true
		}
	}

	f.free = occ.AppendFree(f.free[:0])
	x, z := f.bounds.At(f.free[f.rng.Intn(len(f.free))])
	return Cell{X: x, Z: z}, true
}
