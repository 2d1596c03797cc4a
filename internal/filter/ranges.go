package filter

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
)

var (
	rangeCharsRe = regexp.MustCompile(`[^,0-9\-]`)
	rangeNumRe   = regexp.MustCompile(`[0-9]+`)
	rangeSpanRe  = regexp.MustCompile(`([0-9]+)-([0-9]+)`)
)

type span struct {
	lo, hi int
}

// LengthSet is an immutable set of non-negative integers stored as sorted,
// disjoint inclusive spans.
type LengthSet struct {
	spans []span
}

// NewLengthSet builds a set from individual values.
func NewLengthSet(values ...int) (LengthSet, error) {
	spans := make([]span, 0, len(values))
	for _, v := range values {
		if v < 0 {
			return LengthSet{}, fmt.Errorf("%w: negative length %d", ErrInvalidRange, v)
		}
		spans = append(spans, span{lo: v, hi: v})
	}
	return newLengthSet(spans)
}

// ParseRangeString parses a comma-separated list of lengths and inclusive
// "a-b" ranges, e.g. "0,1,5-8" is {0,1,5,6,7,8}. Only digits, commas and
// hyphens are allowed. Both ends of a range are members even when the range
// itself is reversed.
func ParseRangeString(s string) (LengthSet, error) {
	if rangeCharsRe.MatchString(s) {
		return LengthSet{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	var spans []span
	for _, num := range rangeNumRe.FindAllString(s, -1) {
		v, err := strconv.Atoi(num)
		if err != nil {
			return LengthSet{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		spans = append(spans, span{lo: v, hi: v})
	}
	for _, m := range rangeSpanRe.FindAllStringSubmatch(s, -1) {
		lo, err := strconv.Atoi(m[1])
		if err != nil {
			return LengthSet{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		hi, err := strconv.Atoi(m[2])
		if err != nil {
			return LengthSet{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
		if lo <= hi {
			spans = append(spans, span{lo: lo, hi: hi})
		}
	}
	return newLengthSet(spans)
}

func newLengthSet(spans []span) (LengthSet, error) {
	if len(spans) == 0 {
		return LengthSet{}, ErrEmptyRange
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })
	merged := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		// Adjacent spans merge too: {1-3, 4} is 1-4.
		if last.hi == math.MaxInt || s.lo <= last.hi+1 {
			if s.hi > last.hi {
				last.hi = s.hi
			}
			continue
		}
		merged = append(merged, s)
	}
	return LengthSet{spans: merged}, nil
}

// Contains reports whether n is in the set.
func (s LengthSet) Contains(n int) bool {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].hi >= n })
	return i < len(s.spans) && s.spans[i].lo <= n
}

// Len returns the number of members, saturating at math.MaxInt.
func (s LengthSet) Len() int {
	n := 0
	for _, sp := range s.spans {
		width := sp.hi - sp.lo
		if width >= math.MaxInt-n {
			return math.MaxInt
		}
		n += width + 1
	}
	return n
}

// Values returns up to limit members in ascending order.
func (s LengthSet) Values(limit int) []int {
	if limit <= 0 {
		return nil
	}
	out := make([]int, 0, min(limit, s.Len()))
	for _, sp := range s.spans {
		for v := sp.lo; len(out) < limit; v++ {
			out = append(out, v)
			if v == sp.hi {
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}
