package overlay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Rational is an aspect ratio Num:Den with both terms positive.
type Rational struct {
	Num int
	Den int
}

var (
	// MinAspect is the tallest ratio handed to the host.
	MinAspect = Rational{Num: 1, Den: 2}
	// MaxAspect is the widest ratio handed to the host.
	MaxAspect = Rational{Num: 239, Den: 100}
	// DefaultAspect is used while the video size is unknown.
	DefaultAspect = Rational{Num: 16, Den: 9}
)

var errBadRatio = errors.New("invalid aspect ratio")

// ParseRatio parses "W:H" or "W/H".
func ParseRatio(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":/")
	if sep < 0 {
		return Rational{}, fmt.Errorf("%w: %q", errBadRatio, s)
	}
	num, err1 := strconv.Atoi(strings.TrimSpace(s[:sep]))
	den, err2 := strconv.Atoi(strings.TrimSpace(s[sep+1:]))
	if err1 != nil || err2 != nil || num <= 0 || den <= 0 {
		return Rational{}, fmt.Errorf("%w: %q", errBadRatio, s)
	}
	return Rational{Num: num, Den: den}, nil
}

// String formats the ratio as "W:H".
func (r Rational) String() string {
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

// Float returns Num/Den, or 0 for an invalid ratio.
func (r Rational) Float() float64 {
	if r.Den <= 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Valid reports whether both terms are positive.
func (r Rational) Valid() bool {
	return r.Num > 0 && r.Den > 0
}

// Less reports whether r is narrower than o.
func (r Rational) Less(o Rational) bool {
	return int64(r.Num)*int64(o.Den) < int64(o.Num)*int64(r.Den)
}

// ClampAspectRatio replaces ratios outside [MinAspect, MaxAspect] by the
// nearest bound. Invalid ratios become DefaultAspect.
func ClampAspectRatio(r Rational) Rational {
	switch {
	case !r.Valid():
		return DefaultAspect
	case r.Less(MinAspect):
		return MinAspect
	case MaxAspect.Less(r):
		return MaxAspect
	default:
		return r
	}
}

// CalculateAspectRatio returns width:height reduced to lowest terms, or
// false when either dimension is not positive.
func CalculateAspectRatio(width, height int) (Rational, bool) {
	if width <= 0 || height <= 0 {
		return Rational{}, false
	}
	g := gcd(width, height)
	return Rational{Num: width / g, Den: height / g}, true
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
