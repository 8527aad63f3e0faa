package charts

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return max(r.F, r.T)
}

func (r Range) Min() float64 {
	return min(r.F, r.T)
}

// Normalize gives the relative position of v in the range. An empty
// range puts every value in its middle.
func (r Range) Normalize(v float64) float64 {
	if r.Len() == 0 {
		return 0.5
	}
	return (v - r.F) / r.Len()
}

// Values splits the range in c parts and returns the c+1 bounds of
// these parts.
func (r Range) Values(c int) []float64 {
	if c <= 0 {
		return []float64{r.F, r.T}
	}
	var (
		all  = make([]float64, c)
		step = r.Len() / float64(c)
	)
	for i := 0; i < c; i++ {
		all[i] = r.F + float64(i)*step
	}
	return append(all, r.T)
}

func (r Range) extend(v float64) Range {
	r.F = min(r.F, v)
	r.T = max(r.T, v)
	return r
}

type Normalizer interface {
	Normalize(float64) float64
}

// Scaler projects values of a domain onto a range of pixels.
type Scaler struct {
	Domain Normalizer
	Range
}

func NewScaler(dom Normalizer, rg Range) Scaler {
	return Scaler{
		Domain: dom,
		Range:  rg,
	}
}

func (s Scaler) Scale(v float64) float64 {
	return round2(s.F + s.Len()*s.Domain.Normalize(v))
}
