package geom

import (
	"testing"

	"github.com/nullform/gscore/endian"
	"github.com/stretchr/testify/require"
)

func TestCoordArraySetAt(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	arr := NewCoordArray(2, true, false)

	arr.Set(0, Point4D{X: 1, Y: 2, Z: 3}, engine)
	arr.Set(1, Point4D{X: 4, Y: 5, Z: 6}, engine)

	p0 := arr.At(0, engine)
	require.Equal(t, Point4D{X: 1, Y: 2, Z: 3}, p0)

	p1 := arr.At(1, engine)
	require.Equal(t, Point4D{X: 4, Y: 5, Z: 6}, p1)
}

func TestCoordArrayPointSize(t *testing.T) {
	require.Equal(t, 16, PointSize(false, false))
	require.Equal(t, 24, PointSize(true, false))
	require.Equal(t, 24, PointSize(false, true))
	require.Equal(t, 32, PointSize(true, true))
}

func TestBorrowCoordArrayTruncated(t *testing.T) {
	_, err := BorrowCoordArray([]byte{1, 2, 3}, 1, false, false)
	require.Error(t, err)
}

func TestCoordArrayCloneIsOwnedAndIndependent(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	backing := make([]byte, 16)
	engine.PutUint64(backing[0:8], 0x3FF0000000000000) // 1.0
	engine.PutUint64(backing[8:16], 0x4000000000000000) // 2.0

	borrowed, err := BorrowCoordArray(backing, 1, false, false)
	require.NoError(t, err)
	require.False(t, borrowed.Owned())

	cloned := borrowed.Clone()
	require.True(t, cloned.Owned())

	cloned.Set(0, Point4D{X: 99, Y: 99}, engine)
	// Mutating the clone must not affect the borrowed view's backing bytes.
	p := borrowed.At(0, engine)
	require.Equal(t, 1.0, p.X)
}

func TestBulkCopyRequiresMatchingDims(t *testing.T) {
	dst := NewCoordArray(2, false, false)
	src := NewCoordArray(2, true, false)
	require.False(t, BulkCopy(dst, src))

	src2 := NewCoordArray(2, false, false)
	require.True(t, BulkCopy(dst, src2))
}
