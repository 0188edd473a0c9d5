package descratch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceStraightRunLengthBounds(t *testing.T) {
	for _, tc := range []struct {
		length   int
		minlen   int
		maxlen   int
		accepted bool
	}{
		{10, 10, 20, true},
		{20, 10, 20, true},
		{15, 10, 20, true},
		{9, 10, 20, false},
		{21, 10, 20, false},
		{1, 1, 1, true},
	} {
		t.Run(fmt.Sprintf("len %d in [%d,%d]", tc.length, tc.minlen, tc.maxlen), func(t *testing.T) {
			mask := columnMask(32, 100, 10, rowRange(5, 5+tc.length-1)...)

			threads := TraceScratches(mask, 3, tc.minlen, tc.maxlen, 5)
			require.Len(t, threads, 1)
			assert.Equal(t, Thread{Column: 10, Row: 5, Length: tc.length, Accepted: tc.accepted}, threads[0])

			want := Rejected
			if tc.accepted {
				want = Accepted
			}
			assert.Equal(t, tc.length, mask.Count(want))
			assert.Equal(t, 0, mask.Count(Candidate))
			assert.Equal(t, 0, mask.Count(Traced))
		})
	}
}

func TestTraceRunReachingBottom(t *testing.T) {
	mask := columnMask(16, 40, 6, rowRange(25, 39)...)
	threads := TraceScratches(mask, 1, 10, 100, 0)
	require.Len(t, threads, 1)
	assert.Equal(t, 15, threads[0].Length)
	assert.True(t, threads[0].Accepted)
}

func TestTraceAngleLimit(t *testing.T) {
	// one column per row to the right
	mask := NewMask(64, 40)
	for i := 0; i < 20; i++ {
		mask.SetAt(10+i, i, Candidate)
	}

	threads := TraceScratches(mask, 3, 1, 100, 0)
	require.NotEmpty(t, threads)
	// drift of 3 columns is not below maxwidth 3
	assert.Equal(t, Thread{Column: 10, Row: 0, Length: 3, Accepted: true}, threads[0])
	// the row that broke the thread was still consumed
	assert.Equal(t, Accepted, mask.At(13, 3))
	assert.Equal(t, 14, threads[1].Column)
	assert.Equal(t, 4, threads[1].Row)
}

func TestTraceSteepAngleAllowed(t *testing.T) {
	mask := NewMask(64, 40)
	for i := 0; i < 20; i++ {
		mask.SetAt(10+i, i, Candidate)
	}

	threads := TraceScratches(mask, 3, 1, 100, 90)
	require.Len(t, threads, 1)
	assert.Equal(t, 20, threads[0].Length)
	assert.Equal(t, 20, mask.Count(Accepted))
}

func TestTraceNarrowWindow(t *testing.T) {
	// a jump of two columns is only followed with the wide window
	build := func() *Mask {
		mask := NewMask(32, 20)
		for y := 0; y < 5; y++ {
			mask.SetAt(10, y, Candidate)
		}
		for y := 5; y < 10; y++ {
			mask.SetAt(12, y, Candidate)
		}
		return mask
	}

	wide := TraceScratches(build(), 3, 1, 100, 5)
	require.Len(t, wide, 1)
	assert.Equal(t, 10, wide[0].Length)

	narrow := TraceScratches(build(), 1, 1, 100, 90)
	require.Len(t, narrow, 2)
	assert.Equal(t, 5, narrow[0].Length)
	assert.Equal(t, Thread{Column: 12, Row: 5, Length: 5, Accepted: true}, narrow[1])
}

func TestTraceLastMatchBecomesCentre(t *testing.T) {
	mask := NewMask(32, 10)
	mask.SetAt(10, 0, Candidate)
	// offsets -1 and +1 from the centre; +1 is tested later
	mask.SetAt(9, 1, Candidate)
	mask.SetAt(11, 1, Candidate)
	// only reachable from column 11
	mask.SetAt(13, 2, Candidate)

	threads := TraceScratches(mask, 3, 1, 100, 5)
	require.Len(t, threads, 1)
	assert.Equal(t, 3, threads[0].Length)
	assert.Equal(t, Accepted, mask.At(13, 2))
	assert.Equal(t, Accepted, mask.At(9, 1))
}

func TestTraceCentreWinsOverOffsets(t *testing.T) {
	mask := NewMask(32, 10)
	mask.SetAt(10, 0, Candidate)
	// centre is tested last, so it wins over +2
	mask.SetAt(10, 1, Candidate)
	mask.SetAt(12, 1, Candidate)
	// reachable from column 10 only
	mask.SetAt(8, 2, Candidate)

	threads := TraceScratches(mask, 3, 1, 100, 5)
	require.Len(t, threads, 1)
	assert.Equal(t, 3, threads[0].Length)
	assert.Equal(t, Accepted, mask.At(8, 2))
}

func TestTraceConsumedCellsDoNotReseed(t *testing.T) {
	// two adjacent columns form one thread, not two
	mask := NewMask(32, 30)
	for y := 0; y < 20; y++ {
		mask.SetAt(10, y, Candidate)
		mask.SetAt(11, y, Candidate)
	}

	threads := TraceScratches(mask, 3, 1, 100, 5)
	require.Len(t, threads, 1)
	assert.Equal(t, 20, threads[0].Length)
	assert.Equal(t, 40, mask.Count(Accepted))
}

func TestTraceIgnoresEdgeColumns(t *testing.T) {
	mask := NewMask(16, 10)
	mask.SetAt(1, 0, Candidate)
	mask.SetAt(14, 0, Candidate)

	threads := TraceScratches(mask, 3, 1, 100, 5)
	assert.Empty(t, threads)
	assert.Equal(t, 2, mask.Count(Candidate))
}
