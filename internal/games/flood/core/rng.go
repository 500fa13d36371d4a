package core

// Mulberry32 is a small deterministic PRNG with 32 bits of state.
// The same seed always yields the same stream on every platform.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 seeds a generator. Only the low 32 bits of seed are used.
func NewMulberry32(seed int64) *Mulberry32 {
	return &Mulberry32{state: uint32(seed)}
}

// Uint32 returns the next raw 32-bit value.
func (r *Mulberry32) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t = (t + (t^t>>7)*(t|61)) ^ t
	return t ^ t>>14
}

// Float returns a value in [0, 1).
func (r *Mulberry32) Float() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// Intn returns a value in [0, n). Returns 0 for n <= 0.
func (r *Mulberry32) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Float() * float64(n))
}
