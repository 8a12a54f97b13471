package kpm

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/qkpm/statevec"
)

// forEachRealization runs R logically independent realizations. With
// conc<=1 they execute sequentially (one set of recursion buffers alive at
// a time); otherwise up to conc run concurrently on an errgroup. run(r)
// must write only into per-realization storage — merging into shared
// accumulators happens after every realization has completed, never under
// concurrent writes.
func forEachRealization(total, conc int, run func(r int) error) error {
	if conc <= 1 {
		for r := 0; r < total; r++ {
			if err := run(r); err != nil {
				return err
			}
		}

		return nil
	}

	g := new(errgroup.Group)
	g.SetLimit(conc)
	for r := 0; r < total; r++ {
		r := r
		g.Go(func() error { return run(r) })
	}

	return g.Wait()
}

// prepareProbe fills phi for realization r: the configured probe function
// if any, otherwise a fresh random-phase vector from the realization's
// derived stream.
func (o Options) prepareProbe(r int, seed int64, phi *statevec.Vector) error {
	if o.prep != nil {
		return o.prep(r, phi)
	}
	phi.FillRandomPhase(realizationRNG(seed, r))

	return nil
}
