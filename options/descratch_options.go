package options

import (
	"errors"
	"fmt"

	"github.com/kpfaulkner/descratch-go/util"
)

// ErrInvalidOptions is wrapped by every configuration error.
var ErrInvalidOptions = errors.New("descratch: invalid options")

// PlaneMode selects which scratch polarities are removed from a plane.
type PlaneMode int

const (
	ModeNone PlaneMode = iota
	ModeLow            // dark scratches
	ModeHigh           // light scratches
	ModeBoth
)

func (m PlaneMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeLow:
		return "low"
	case ModeHigh:
		return "high"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("PlaneMode(%d)", int(m))
	}
}

// ParsePlaneMode accepts either the name or the numeric value of a mode.
func ParsePlaneMode(s string) (PlaneMode, error) {
	switch s {
	case "none", "0":
		return ModeNone, nil
	case "low", "1":
		return ModeLow, nil
	case "high", "2":
		return ModeHigh, nil
	case "both", "all", "3":
		return ModeBoth, nil
	}
	return ModeNone, fmt.Errorf("%w: unknown plane mode %q", ErrInvalidOptions, s)
}

type DescratchOptions struct {
	// minimal difference of pixel value in scratch from neighbours
	MinDif int
	// maximal asymmetry of the neighbours at both sides of the scratch
	Asym int
	// maximal vertical gap (in luma rows) bridged inside a scratch
	MaxGap int
	// maximal (and template) scratch width, odd
	MaxWidth int
	// minimal and maximal scratch length in luma rows
	MinLen int
	MaxLen int
	// maximal angle of the scratch to vertical, degrees
	MaxAngle float32
	// vertical blur radius for the reference clip
	BlurLen int
	// percent of original detail kept in repaired pixels
	Keep int
	// width of the blended border on each side of a scratch
	Border int

	ModeY PlaneMode
	ModeU PlaneMode
	ModeV PlaneMode

	// chroma threshold, 0 means use MinDif
	MinDifUV int
	// mark scratches instead of removing them
	Mark bool
	// minimal scratch width, odd
	MinWidth int

	// processing window in luma columns, [Left, Right)
	Left  int
	Right int
}

// NewDescratchOptions returns the default configuration.
func NewDescratchOptions() *DescratchOptions {
	return &DescratchOptions{
		MinDif:   5,
		Asym:     10,
		MaxGap:   2,
		MaxWidth: 3,
		MinLen:   100,
		MaxLen:   2048,
		MaxAngle: 5.0,
		BlurLen:  15,
		Keep:     100,
		Border:   2,
		ModeY:    ModeLow,
		ModeU:    ModeNone,
		ModeV:    ModeNone,
		MinDifUV: 0,
		Mark:     false,
		MinWidth: 1,
		Left:     0,
		Right:    4096,
	}
}

func (o *DescratchOptions) Clone() *DescratchOptions {
	c := *o
	return &c
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}

func isOddInRange(v int, lo int, hi int) bool {
	return v%2 == 1 && v >= lo && v <= hi
}

// Validate checks every parameter that does not depend on the video geometry.
func (o *DescratchOptions) Validate() error {
	if o.MinDif <= 0 {
		return invalid("mindif must be positive, got %d", o.MinDif)
	}
	if o.Asym < 0 {
		return invalid("asym must not be negative, got %d", o.Asym)
	}
	if o.MinDifUV < 0 {
		return invalid("mindifUV must not be negative, got %d", o.MinDifUV)
	}
	if o.MaxGap < 0 || o.MaxGap > 255 {
		return invalid("maxgap must be from 0 to 255, got %d", o.MaxGap)
	}
	if !isOddInRange(o.MaxWidth, 1, 15) {
		return invalid("maxwidth must be odd from 1 to 15, got %d", o.MaxWidth)
	}
	if o.MinLen <= 0 {
		return invalid("minlen must be > 0, got %d", o.MinLen)
	}
	if o.MaxLen <= 0 {
		return invalid("maxlen must be > 0, got %d", o.MaxLen)
	}
	if o.MaxAngle < 0 || o.MaxAngle > 90 {
		return invalid("maxangle must be from 0 to 90, got %g", o.MaxAngle)
	}
	if o.BlurLen < 0 || o.BlurLen > 200 {
		return invalid("blurlen must be from 0 to 200, got %d", o.BlurLen)
	}
	if o.Keep < 0 || o.Keep > 100 {
		return invalid("keep must be from 0 to 100, got %d", o.Keep)
	}
	if o.Border < 0 || o.Border > 5 {
		return invalid("border must be from 0 to 5, got %d", o.Border)
	}
	for _, m := range []PlaneMode{o.ModeY, o.ModeU, o.ModeV} {
		if m < ModeNone || m > ModeBoth {
			return invalid("modeY, modeU, modeV must be from 0 to 3, got %d", int(m))
		}
	}
	if o.MinWidth > o.MaxWidth {
		return invalid("minwidth must not be above maxwidth, got %d > %d", o.MinWidth, o.MaxWidth)
	}
	if !isOddInRange(o.MinWidth, 1, 15) {
		return invalid("minwidth must be odd from 1 to 15, got %d", o.MinWidth)
	}
	return nil
}

// ChromaMinDif is the threshold used on the U and V planes.
func (o *DescratchOptions) ChromaMinDif() int {
	return util.IfThenElse(o.MinDifUV == 0, o.MinDif, o.MinDifUV)
}

// Mode returns the processing mode of plane 0 (Y), 1 (U) or 2 (V).
func (o *DescratchOptions) Mode(plane int) PlaneMode {
	switch plane {
	case 0:
		return o.ModeY
	case 1:
		return o.ModeU
	default:
		return o.ModeV
	}
}

// Window clips the working window to a luma width: a negative left becomes
// zero, right is limited to width, and both are aligned down to even columns.
func (o *DescratchOptions) Window(width int) (int, int, error) {
	left := util.RoundDownToEven(max(o.Left, 0))
	right := util.RoundDownToEven(min(o.Right, width))
	if left >= right {
		return 0, 0, invalid("must be: left < right <= width, got left %d right %d width %d", left, right, width)
	}
	return left, right, nil
}
