package main

import (
	"sort"

	"github.com/kpfaulkner/descratch-go/descratch"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// summary accumulates scratch statistics over a run.
type summary struct {
	frames   int
	accepted int
	rejected int
	lengths  []float64
}

func (s *summary) add(r *descratch.Report) {
	s.frames++
	s.accepted += r.Accepted()
	s.rejected += r.Rejected()
	s.lengths = append(s.lengths, r.AcceptedLengths()...)
}

// lengthStats returns mean, standard deviation and median of the accepted
// scratch lengths.
func (s *summary) lengthStats() (float64, float64, float64) {
	if len(s.lengths) == 0 {
		return 0, 0, 0
	}
	sorted := append([]float64(nil), s.lengths...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted) == 1 {
		return sorted[0], 0, median
	}
	mean, std := stat.MeanStdDev(sorted, nil)
	return mean, std, median
}

func (s *summary) log() {
	log.Infof("%d frames, %d scratches removed, %d rejected", s.frames, s.accepted, s.rejected)
	if len(s.lengths) > 0 {
		mean, std, median := s.lengthStats()
		log.Infof("scratch length mean %.1f std %.1f median %.1f", mean, std, median)
	}
}
