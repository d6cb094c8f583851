package domain

import "math"

// LinearToLog converts a linear scale (pixels per parsec) to its log form.
func LinearToLog(linear float64) float64 {
	return 1 + math.Log2(linear)
}

// LogToLinear converts a log scale back to pixels per parsec.
func LogToLinear(log float64) float64 {
	return math.Pow(2, log-1)
}

// Scale holds a zoom level in both representations. Only the one set last
// is authoritative; the other is computed on first read and cached until
// the next mutation. The zero value is invalid; use NewLinearScale or
// NewLogScale.
type Scale struct {
	linear    float64
	log       float64
	hasLinear bool
	hasLog    bool
}

// NewLinearScale returns a Scale set from pixels per parsec.
func NewLinearScale(linear float64) Scale {
	return Scale{linear: linear, hasLinear: true}
}

// NewLogScale returns a Scale set from its log form.
func NewLogScale(log float64) Scale {
	return Scale{log: log, hasLog: true}
}

// Linear returns pixels per parsec.
func (s *Scale) Linear() float64 {
	if !s.hasLinear && s.hasLog {
		s.linear = LogToLinear(s.log)
		s.hasLinear = true
	}
	return s.linear
}

// Log returns the log form of the scale.
func (s *Scale) Log() float64 {
	if !s.hasLog && s.hasLinear {
		s.log = LinearToLog(s.linear)
		s.hasLog = true
	}
	return s.log
}

// SetLinear sets the scale in pixels per parsec.
func (s *Scale) SetLinear(linear float64) {
	s.linear = linear
	s.hasLinear = true
	s.hasLog = false
}

// SetLog sets the scale in log form.
func (s *Scale) SetLog(log float64) {
	s.log = log
	s.hasLog = true
	s.hasLinear = false
}

// Valid reports whether the scale is a usable, strictly positive zoom.
func (s *Scale) Valid() bool {
	l := s.Linear()
	return (s.hasLinear || s.hasLog) && l > 0 && !math.IsInf(l, 0) && !math.IsNaN(l)
}
