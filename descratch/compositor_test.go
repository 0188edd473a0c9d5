package descratch

import (
	"testing"

	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/testcommon"
	"github.com/stretchr/testify/assert"
)

func TestMarkScratches(t *testing.T) {
	dst := testcommon.UniformPlane(8, 2, 200)
	mask := NewMask(8, 2)
	mask.SetAt(3, 0, Accepted)
	mask.SetAt(3, 1, Accepted)
	mask.SetAt(6, 1, Rejected)
	mask.SetAt(1, 1, Traced)

	assert.Equal(t, 2, MarkScratches(dst, mask, Accepted, markDark))
	assert.Equal(t, 1, MarkScratches(dst, mask, Rejected, markRejected))

	assert.Equal(t, uint8(0), dst.At(3, 0))
	assert.Equal(t, uint8(0), dst.At(3, 1))
	assert.Equal(t, uint8(127), dst.At(6, 1))
	assert.Equal(t, uint8(200), dst.At(1, 1))
	assert.Equal(t, uint8(200), dst.At(0, 0))
}

// repairRow runs RemoveScratches on a single row with accepted cells at cols.
func repairRow(src *image.Plane, blurred *image.Plane, maxwidth int, keep int, border int, cols ...int) *image.Plane {
	dst := src.Clone()
	mask := NewMask(src.Width, 1)
	for _, x := range cols {
		mask.SetAt(x, 0, Accepted)
	}
	RemoveScratches(src, dst, blurred, mask, maxwidth, keep, border)
	return dst
}

func TestRemoveScratchesSymmetricAnchors(t *testing.T) {
	src := testcommon.UniformPlane(20, 1, 100)
	testcommon.DrawVerticalLine(src, 10, 3, 0, 0, 40)
	blurred := testcommon.UniformPlane(20, 1, 90)
	testcommon.DrawVerticalLine(blurred, 10, 3, 0, 0, 60)

	dst := repairRow(src, blurred, 3, 50, 1, 10)
	assert.Equal(t, []uint8{100, 100, 100, 100, 100, 100, 100, 100, 100, 85, 85, 85, 100, 100, 100, 100, 100, 100, 100, 100}, dst.Row(0))
}

func TestRemoveScratchesWeightsNearerAnchor(t *testing.T) {
	src := testcommon.UniformPlane(20, 1, 100)
	testcommon.DrawVerticalLine(src, 10, 3, 0, 0, 40)
	src.Set(7, 0, 60)
	blurred := testcommon.UniformPlane(20, 1, 90)
	testcommon.DrawVerticalLine(blurred, 10, 3, 0, 0, 60)

	dst := repairRow(src, blurred, 3, 50, 1, 10)
	row := dst.Row(0)
	// anchor itself is untouched
	assert.Equal(t, uint8(60), row[7])
	assert.Equal(t, uint8(80), row[8])
	assert.Equal(t, []uint8{70, 75, 80}, row[9:12])
	assert.Equal(t, uint8(100), row[12])
	assert.Equal(t, uint8(100), row[13])
}

func TestRemoveScratchesKeepExtremes(t *testing.T) {
	src := testcommon.UniformPlane(20, 1, 100)
	testcommon.DrawVerticalLine(src, 10, 3, 0, 0, 40)
	blurred := testcommon.UniformPlane(20, 1, 90)
	testcommon.DrawVerticalLine(blurred, 10, 3, 0, 0, 60)

	// keep 0: plain copy of the background anchors
	dst := repairRow(src, blurred, 3, 0, 1, 10)
	assert.Equal(t, []uint8{100, 100, 100, 100, 100}, dst.Row(0)[8:13])

	// keep 100: anchor blur plus local detail 40-60
	dst = repairRow(src, blurred, 3, 100, 1, 10)
	assert.Equal(t, []uint8{100, 70, 70, 70, 100}, dst.Row(0)[8:13])
}

func TestRemoveScratchesClamps(t *testing.T) {
	src := testcommon.UniformPlane(20, 1, 250)
	blurred := testcommon.UniformPlane(20, 1, 255)
	testcommon.DrawVerticalLine(blurred, 10, 3, 0, 0, 0)

	dst := repairRow(src, blurred, 3, 100, 1, 10)
	assert.Equal(t, []uint8{250, 255, 255, 255, 250}, dst.Row(0)[8:13])

	src = testcommon.UniformPlane(20, 1, 100)
	testcommon.DrawVerticalLine(src, 10, 3, 0, 0, 0)
	blurred = testcommon.UniformPlane(20, 1, 0)
	testcommon.DrawVerticalLine(blurred, 10, 3, 0, 0, 255)

	dst = repairRow(src, blurred, 3, 100, 1, 10)
	assert.Equal(t, []uint8{100, 0, 0, 0, 100}, dst.Row(0)[8:13])
}

func TestRemoveScratchesRunCentre(t *testing.T) {
	// a run of accepted cells is repaired around its middle
	src := testcommon.UniformPlane(30, 1, 100)
	testcommon.DrawVerticalLine(src, 15, 5, 0, 0, 40)
	blurred := src.Clone()

	dst := repairRow(src, blurred, 5, 100, 0, 14, 15, 16)
	for x, v := range dst.Row(0) {
		if x >= 13 && x <= 17 {
			// 65536/6 is truncated in the weight normalisation
			assert.Equal(t, uint8(99), v, "column %d", x)
			continue
		}
		assert.Equal(t, uint8(100), v, "column %d", x)
	}
}

func TestRemoveScratchesIgnoresRunsNearEdges(t *testing.T) {
	src := testcommon.UniformPlane(20, 1, 100)
	testcommon.DrawVerticalLine(src, 3, 3, 0, 0, 40)
	blurred := testcommon.UniformPlane(20, 1, 90)

	// centre 3 is inside the rad+border+2 margin
	dst := repairRow(src, blurred, 3, 100, 1, 3)
	assert.True(t, dst.Equals(src))
}

func TestRemoveScratchesNoAcceptedIsNoop(t *testing.T) {
	src := testcommon.UniformPlane(32, 4, 100)
	testcommon.DrawVerticalLine(src, 10, 3, 0, 3, 40)
	blurred := testcommon.UniformPlane(32, 4, 90)

	dst := src.Clone()
	mask := NewMask(32, 4)
	mask.SetAt(10, 1, Rejected)
	mask.SetAt(10, 2, Traced)

	assert.Equal(t, 0, RemoveScratches(src, dst, blurred, mask, 3, 100, 2))
	assert.True(t, dst.Equals(src))
}
