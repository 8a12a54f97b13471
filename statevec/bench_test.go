package statevec_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/qkpm/statevec"
)

// benchPair allocates two filled vectors of dimension n with the given
// partition width, failing the benchmark on setup errors.
func benchPair(b *testing.B, n, workers int) (*statevec.Vector, *statevec.Vector) {
	b.Helper()
	lay, err := statevec.NewLayout(n, workers)
	if err != nil {
		b.Fatalf("layout: %v", err)
	}
	x, err := statevec.NewFromLayout(lay)
	if err != nil {
		b.Fatalf("vector: %v", err)
	}
	y, err := statevec.NewFromLayout(lay)
	if err != nil {
		b.Fatalf("vector: %v", err)
	}
	x.FillRandomPhase(rand.New(rand.NewSource(1)))
	y.FillRandomPhase(rand.New(rand.NewSource(2)))

	return x, y
}

// BenchmarkAdd_1M_Serial measures the axpy kernel without partitioning.
func BenchmarkAdd_1M_Serial(b *testing.B) {
	x, y := benchPair(b, 1<<20, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := x.Add(y, 0.5); err != nil {
			b.Fatalf("add: %v", err)
		}
	}
}

// BenchmarkAdd_1M_Parallel measures the axpy kernel with the default
// partition width.
func BenchmarkAdd_1M_Parallel(b *testing.B) {
	x, y := benchPair(b, 1<<20, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := x.Add(y, 0.5); err != nil {
			b.Fatalf("add: %v", err)
		}
	}
}

// BenchmarkInnerProduct_1M_Serial measures the composed reduction without
// partitioning.
func BenchmarkInnerProduct_1M_Serial(b *testing.B) {
	x, y := benchPair(b, 1<<20, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x.InnerProduct(y); err != nil {
			b.Fatalf("inner product: %v", err)
		}
	}
}

// BenchmarkInnerProduct_1M_Parallel measures the composed reduction with
// the default partition width.
func BenchmarkInnerProduct_1M_Parallel(b *testing.B) {
	x, y := benchPair(b, 1<<20, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := x.InnerProduct(y); err != nil {
			b.Fatalf("inner product: %v", err)
		}
	}
}

// BenchmarkSwap confirms rotation stays O(1) regardless of dimension.
func BenchmarkSwap(b *testing.B) {
	x, y := benchPair(b, 1<<20, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := x.Swap(y); err != nil {
			b.Fatalf("swap: %v", err)
		}
	}
}
