package heatmap

import "math"

// BandScale maps each value of a discrete domain onto an equal-width band of
// a pixel range, in domain order.
type BandScale[K comparable] struct {
	domain    []K
	index     map[K]int
	start     float64
	step      float64
	bandwidth float64
	r0, r1    float64
}

// NewBandScale partitions [r0, r1] into one band per distinct domain value.
// Duplicate values keep their first position. With round set, the step is
// floored to whole pixels, the leftover is split evenly between both ends and
// the start is snapped to the nearest pixel.
func NewBandScale[K comparable](domain []K, r0, r1 float64, round bool) *BandScale[K] {
	s := &BandScale[K]{
		index: make(map[K]int, len(domain)),
		r0:    r0,
		r1:    r1,
	}
	for _, k := range domain {
		if _, seen := s.index[k]; seen {
			continue
		}
		s.index[k] = len(s.domain)
		s.domain = append(s.domain, k)
	}

	n := float64(len(s.domain))
	span := r1 - r0
	s.start = r0
	s.step = span / math.Max(1, n)
	if round {
		s.step = math.Floor(s.step)
		s.start += (span - s.step*n) / 2
		s.start = roundHalfUp(s.start)
	}
	s.bandwidth = s.step
	if len(s.domain) == 0 {
		s.bandwidth = 0
	}
	return s
}

// Pos returns the leading pixel edge of k's band. ok is false when k is not
// part of the domain.
func (s *BandScale[K]) Pos(k K) (pos float64, ok bool) {
	i, ok := s.index[k]
	if !ok {
		return 0, false
	}
	return s.start + s.step*float64(i), true
}

// Bandwidth is the pixel size of every band.
func (s *BandScale[K]) Bandwidth() float64 { return s.bandwidth }

// Domain returns the distinct domain values in band order.
func (s *BandScale[K]) Domain() []K {
	out := make([]K, len(s.domain))
	copy(out, s.domain)
	return out
}

// Range returns the pixel range the scale was built over.
func (s *BandScale[K]) Range() (r0, r1 float64) { return s.r0, s.r1 }

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
