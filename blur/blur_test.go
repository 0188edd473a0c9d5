package blur

import (
	"errors"
	"testing"

	"github.com/kpfaulkner/descratch-go/image"
	"github.com/kpfaulkner/descratch-go/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNear(t *testing.T, expected uint8, actual uint8, delta int, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, int(expected), int(actual), float64(delta), msgAndArgs...)
}

func TestDownHeight(t *testing.T) {
	for _, tc := range []struct {
		name     string
		height   int
		blurLen  int
		expected int
	}{
		{name: "default", height: 1080, blurLen: 15, expected: 66},
		{name: "odd result", height: 100, blurLen: 10, expected: 8},
		{name: "tiny", height: 10, blurLen: 100, expected: 2},
		{name: "no blur", height: 100, blurLen: 0, expected: 100},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBlurrer(64, tc.height, tc.blurLen)
			require.Nil(t, err)
			assert.Equal(t, tc.expected, b.DownHeight())
		})
	}
}

func TestNewBlurrerErrors(t *testing.T) {
	_, err := NewBlurrer(0, 10, 1)
	assert.True(t, errors.Is(err, image.ErrPlaneGeometry))
	_, err = NewBlurrer(10, 10, -1)
	assert.NotNil(t, err)
}

func TestUniformFrameStaysUniform(t *testing.T) {
	src := testcommon.UniformFrame(64, 100, 200)
	b, err := NewBlurrer(64, 100, 15)
	require.Nil(t, err)

	dst, err := b.Frame(src)
	require.Nil(t, err)
	for i, p := range dst.Planes {
		expected := src.Planes[i].At(0, 0)
		for y := 0; y < p.Height; y++ {
			for x, v := range p.Row(y) {
				assertNear(t, expected, v, 1, "plane %d (%d,%d)", i, x, y)
			}
		}
	}
}

func TestVerticalLineSurvives(t *testing.T) {
	src := testcommon.UniformFrame(64, 100, 200)
	testcommon.DrawVerticalLine(src.Y(), 30, 3, 0, 99, 150)
	b, err := NewBlurrer(64, 100, 15)
	require.Nil(t, err)

	dst, err := b.Frame(src)
	require.Nil(t, err)
	for y := 0; y < 100; y++ {
		assertNear(t, 150, dst.Y().At(30, y), 1, "row %d", y)
		assertNear(t, 200, dst.Y().At(20, y), 1, "row %d", y)
	}
}

func TestHorizontalDetailIsSmoothed(t *testing.T) {
	src := testcommon.UniformFrame(64, 100, 200)
	for y := 0; y < 100; y += 2 {
		for x := 0; x < 64; x++ {
			src.Y().Set(x, y, 100)
		}
	}
	b, err := NewBlurrer(64, 100, 15)
	require.Nil(t, err)

	dst, err := b.Frame(src)
	require.Nil(t, err)
	for y := 10; y < 90; y++ {
		v := dst.Y().At(32, y)
		assert.Greater(t, v, uint8(120), "row %d", y)
		assert.Less(t, v, uint8(180), "row %d", y)
	}
}

func TestZeroBlurLenCopies(t *testing.T) {
	src := testcommon.ScratchedFrame(64, 100)
	b, err := NewBlurrer(64, 100, 0)
	require.Nil(t, err)

	dst, err := b.Frame(src)
	require.Nil(t, err)
	assert.True(t, dst.Equals(src))
}

func TestPlaneWithStride(t *testing.T) {
	src := image.NewPlaneWithStride(40, 60, image.AlignedStride(40))
	src.Fill(90)
	dst := image.NewPlane(40, 60)
	b, err := NewBlurrer(40, 60, 5)
	require.Nil(t, err)

	require.Nil(t, b.Plane(dst, src))
	assertNear(t, 90, dst.At(39, 59), 1)
	assertNear(t, 90, dst.At(0, 0), 1)
}

func TestFrameGeometryMismatch(t *testing.T) {
	b, err := NewBlurrer(64, 100, 15)
	require.Nil(t, err)

	_, err = b.Frame(testcommon.UniformFrame(32, 100, 0))
	assert.True(t, errors.Is(err, image.ErrPlaneGeometry))

	err = b.Plane(image.NewPlane(10, 10), image.NewPlane(10, 12))
	assert.True(t, errors.Is(err, image.ErrPlaneGeometry))
}
