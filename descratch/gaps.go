package descratch

// CloseGaps bridges vertical dropouts shorter than maxgap rows: every
// Candidate copies itself into the maxgap-1 rows above it.
func CloseGaps(mask *Mask, maxgap int) {
	for y := maxgap; y < mask.Height; y++ {
		row := mask.GetRow(y)
		for x, s := range row {
			if s != Candidate {
				continue
			}
			for j := 1; j < maxgap; j++ {
				mask.Set(y-j, x, Candidate)
			}
		}
	}
}
