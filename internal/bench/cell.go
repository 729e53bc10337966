package bench

import "time"

// Cell accumulates the samples of one (algorithm, size) pair. Once Total
// reaches the runtime limit the cell is exhausted and takes no more samples.
type Cell struct {
	Samples   []time.Duration
	Total     time.Duration
	Exhausted bool
}

// Cells is indexed [algorithm][size].
type Cells [][]Cell

func newCells(algs, sizes int) Cells {
	c := make(Cells, algs)
	for i := range c {
		c[i] = make([]Cell, sizes)
	}
	return c
}

func (c Cells) at(j Job) *Cell {
	return &c[j.Algorithm][j.Size]
}
