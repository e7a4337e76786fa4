package layout

import "math"

// ScaleKind tells a renderer how to read a scale.
type ScaleKind string

const (
	Linear ScaleKind = "linear"
	Band   ScaleKind = "band"
)

// LinearScale maps a numeric domain onto a pixel range. Magnitude axes
// always start their domain at 0.
type LinearScale struct {
	Kind   ScaleKind  `json:"kind"`
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

// NewLinearScale builds a magnitude scale over [0, max]. A non-positive max
// falls back to empty so the scale never collapses.
func NewLinearScale(max, empty float64, rng [2]float64) LinearScale {
	if !(max > 0) || math.IsInf(max, 0) {
		max = empty
	}
	if !(max > 0) {
		max = 1
	}
	return LinearScale{Kind: Linear, Domain: [2]float64{0, max}, Range: rng}
}

// Map converts a value to a pixel offset.
func (s LinearScale) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d1 == d0 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Ticks returns round tick values inside the domain, roughly count of them.
func (s LinearScale) Ticks(count int) []float64 {
	return ticks(s.Domain[0], s.Domain[1], count)
}

func ticks(start, stop float64, count int) []float64 {
	if count <= 0 || stop <= start {
		return []float64{start}
	}
	i1, i2, inc := tickSpec(start, stop, count)
	if i2 < i1 || inc == 0 || math.IsInf(inc, 0) || math.IsNaN(inc) {
		return []float64{start}
	}
	out := make([]float64, 0, int(i2-i1)+1)
	for i := i1; i <= i2; i++ {
		if inc < 0 {
			out = append(out, cleanFloat(i/-inc))
		} else {
			out = append(out, cleanFloat(i*inc))
		}
	}
	return out
}

// tickSpec picks a step of 1, 2 or 5 times a power of ten and returns the
// first and last tick index. A negative inc means ticks are i / -inc, which
// keeps fractional steps such as 0.2 exact.
func tickSpec(start, stop float64, count int) (i1, i2, inc float64) {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	factor := step / math.Pow(10, power)
	switch {
	case factor >= math.Sqrt(50):
		factor = 10
	case factor >= math.Sqrt(10):
		factor = 5
	case factor >= math.Sqrt(2):
		factor = 2
	default:
		factor = 1
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		return i1, i2, -inc
	}
	inc = math.Pow(10, power) * factor
	i1 = math.Round(start / inc)
	i2 = math.Round(stop / inc)
	if i1*inc < start {
		i1++
	}
	if i2*inc > stop {
		i2--
	}
	return i1, i2, inc
}

// cleanFloat trims binary noise such as 0.30000000000000004.
func cleanFloat(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// BandScale splits a pixel range into equal slots, one per category, with
// padding between and around the slots.
type BandScale struct {
	Kind      ScaleKind  `json:"kind"`
	Domain    []string   `json:"domain"`
	Range     [2]float64 `json:"range"`
	Padding   float64    `json:"padding"`
	Step      float64    `json:"step"`
	Bandwidth float64    `json:"bandwidth"`
	Start     float64    `json:"start"`

	index map[string]int
}

// NewBandScale lays domain out across the ascending range rng. The same
// padding is applied inside and outside the bands and the bands are centred.
func NewBandScale(domain []string, rng [2]float64, padding float64) BandScale {
	b := BandScale{
		Kind:    Band,
		Domain:  append([]string(nil), domain...),
		Range:   rng,
		Padding: padding,
		index:   make(map[string]int, len(domain)),
	}
	for i, k := range b.Domain {
		if _, dup := b.index[k]; !dup {
			b.index[k] = i
		}
	}

	n := float64(len(b.Domain))
	lo, hi := rng[0], rng[1]
	b.Step = (hi - lo) / math.Max(1, n-padding+2*padding)
	b.Start = lo + (hi-lo-b.Step*(n-padding))*0.5
	b.Bandwidth = b.Step * (1 - padding)
	return b
}

// Map returns the start offset of key's band.
func (b BandScale) Map(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.Start + b.Step*float64(i), true
}

// Center returns the middle of key's band.
func (b BandScale) Center(key string) (float64, bool) {
	x, ok := b.Map(key)
	return x + b.Bandwidth/2, ok
}
