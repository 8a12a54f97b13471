package statevec_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qkpm/statevec"
)

// newLayout is a test helper building a Layout or failing the test.
func newLayout(t *testing.T, n, workers int) *statevec.Layout {
	t.Helper()
	lay, err := statevec.NewLayout(n, workers)
	require.NoError(t, err)

	return lay
}

// randomVector fills a fresh vector with reproducible noise in [-1,1).
func randomVector(t *testing.T, lay *statevec.Layout, seed int64) *statevec.Vector {
	t.Helper()
	v, err := statevec.NewFromLayout(lay)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < v.Dim(); i++ {
		v.Re()[i] = 2*rng.Float64() - 1
		v.Im()[i] = 2*rng.Float64() - 1
	}

	return v
}

// TestNewLayout_Validation covers dimension and worker normalization.
func TestNewLayout_Validation(t *testing.T) {
	_, err := statevec.NewLayout(0, 1)
	assert.ErrorIs(t, err, statevec.ErrBadDimension, "n=0 must be rejected")

	lay, err := statevec.NewLayout(4, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, lay.Workers, 1, "workers=0 must resolve to a positive width")
	assert.LessOrEqual(t, lay.Workers, 4, "workers must be capped at n")

	lay, err = statevec.NewLayout(3, 64)
	require.NoError(t, err)
	assert.Equal(t, 3, lay.Workers, "workers beyond n must be capped")
}

// TestNew_Validation covers the constructor error paths.
func TestNew_Validation(t *testing.T) {
	lay := newLayout(t, 8, 2)

	_, err := statevec.New(0, lay)
	assert.ErrorIs(t, err, statevec.ErrBadDimension)

	_, err = statevec.New(8, nil)
	assert.ErrorIs(t, err, statevec.ErrNilLayout)

	_, err = statevec.Clone(nil)
	assert.ErrorIs(t, err, statevec.ErrNilVector)
}

// TestClone_Independent verifies a clone owns independent storage.
func TestClone_Independent(t *testing.T) {
	lay := newLayout(t, 8, 2)
	a := randomVector(t, lay, 1)

	b, err := statevec.Clone(a)
	require.NoError(t, err)
	assert.Equal(t, a.Re(), b.Re(), "clone must start identical")

	b.Re()[0] = 42
	assert.NotEqual(t, a.Re()[0], b.Re()[0], "mutating the clone must not touch the original")
}

// TestNewFromHost_DeviceCopiesHostViewBorrows pins down the residency
// semantics of the host constructor.
func TestNewFromHost_DeviceCopiesHostViewBorrows(t *testing.T) {
	lay := newLayout(t, 4, 2)
	re := []float64{1, 2, 3, 4}
	im := []float64{5, 6, 7, 8}

	dev, err := statevec.NewFromHost(re, im, lay, statevec.Device)
	require.NoError(t, err)
	re[0] = 99
	assert.Equal(t, 1.0, dev.Re()[0], "Device residency must deep-copy host content")

	view, err := statevec.NewFromHost(re, im, lay, statevec.HostView)
	require.NoError(t, err)
	assert.Equal(t, statevec.HostView, view.Residency())
	re[1] = 77
	assert.Equal(t, 77.0, view.Re()[1], "HostView must borrow the caller's buffers")

	_, err = statevec.NewFromHost(re[:3], im, lay, statevec.Device)
	assert.ErrorIs(t, err, statevec.ErrDimensionMismatch, "short host buffer must be rejected")
}

// TestCopyHostStaging verifies the exact-N staging contract in both
// directions.
func TestCopyHostStaging(t *testing.T) {
	lay := newLayout(t, 4, 2)
	v := randomVector(t, lay, 2)

	outRe := make([]float64, 4)
	outIm := make([]float64, 4)
	require.NoError(t, v.CopyToHost(outRe, outIm))
	assert.Equal(t, v.Re(), outRe)
	assert.Equal(t, v.Im(), outIm)

	w, err := statevec.NewFromLayout(lay)
	require.NoError(t, err)
	require.NoError(t, w.CopyFromHost(outRe, outIm))
	assert.Equal(t, v.Re(), w.Re())

	assert.ErrorIs(t, v.CopyToHost(outRe[:2], outIm), statevec.ErrDimensionMismatch)
	assert.ErrorIs(t, v.CopyFromHost(outRe, outIm[:1]), statevec.ErrDimensionMismatch)
}

// TestSwap_IsO1AndSelfInverse verifies swap exchanges storage handles
// (no elementwise copy) and that swapping twice restores both vectors.
func TestSwap_IsO1AndSelfInverse(t *testing.T) {
	lay := newLayout(t, 16, 4)
	a := randomVector(t, lay, 3)
	b := randomVector(t, lay, 4)

	aRe0 := &a.Re()[0]
	bRe0 := &b.Re()[0]

	require.NoError(t, a.Swap(b))
	assert.True(t, &a.Re()[0] == bRe0, "swap must move b's buffer into a by handle")
	assert.True(t, &b.Re()[0] == aRe0, "swap must move a's buffer into b by handle")

	require.NoError(t, a.Swap(b))
	assert.True(t, &a.Re()[0] == aRe0, "double swap must restore a's original buffer")
	assert.True(t, &b.Re()[0] == bRe0, "double swap must restore b's original buffer")
}

// TestSwap_DimensionMismatch verifies the precondition is enforced before
// any exchange.
func TestSwap_DimensionMismatch(t *testing.T) {
	lay := newLayout(t, 8, 2)
	a := randomVector(t, lay, 5)
	short, err := statevec.New(4, lay)
	require.NoError(t, err)

	aRe0 := &a.Re()[0]
	assert.ErrorIs(t, a.Swap(short), statevec.ErrDimensionMismatch)
	assert.True(t, &a.Re()[0] == aRe0, "failed swap must leave operands untouched")
}
