package descratch

import (
	"github.com/kpfaulkner/descratch-go/image"
	log "github.com/sirupsen/logrus"
)

// pass runs detection, tracing and compositing for one plane window and one
// polarity. src, blurred and dst are views of identical size. hscale is the
// vertical subsampling of the plane relative to luma.
func (f *Filter) pass(plane int, src *image.Plane, blurred *image.Plane, dst *image.Plane, mindif int, hscale int) PassReport {
	report := PassReport{Plane: plane, Polarity: polarityOf(mindif)}

	if src.Width < f.opts.MaxWidth+3 {
		report.Skipped = true
		return report
	}

	mask := acquireMask(src.Width, src.Height)
	defer mask.release()

	// detection runs on the blurred reference, which has the same columns
	// but less vertical noise
	report.Candidates = FindExtrema(blurred, mask, mindif, f.opts.Asym, f.opts.MaxWidth)
	if f.opts.MinWidth > 1 {
		report.Demoted = RemoveNarrowExtrema(blurred, mask, mindif, f.opts.Asym, f.opts.MinWidth)
	}
	CloseGaps(mask, f.opts.MaxGap/hscale)
	report.Threads = TraceScratches(mask, f.opts.MaxWidth, f.opts.MinLen/hscale, f.opts.MaxLen/hscale, f.opts.MaxAngle)

	if f.opts.Mark {
		value := markLight
		if mindif > 0 {
			value = markDark
		}
		report.Marked = MarkScratches(dst, mask, Accepted, value)
		report.Marked += MarkScratches(dst, mask, Rejected, markRejected)
	} else {
		report.Repaired = RemoveScratches(src, dst, blurred, mask, f.opts.MaxWidth, f.opts.Keep, f.opts.Border)
	}

	log.Debugf("descratch %s", &report)
	return report
}
