package core

// Prng is a 32-bit linear congruential generator. Games share nothing but
// the seed, so equal seeds replay equal games.
type Prng struct {
	state uint32
}

// NewPrng seeds a generator.
func NewPrng(seed uint32) *Prng {
	return &Prng{state: seed}
}

// Next advances the generator and returns bits 16-23 of the new state.
func (p *Prng) Next() uint8 {
	p.state = p.state*1103515245 + 12345
	return uint8(p.state >> 16)
}

// NextRange returns a value in [0, max). max <= 0 yields 0 without advancing.
// Only the low byte of entropy is used, so max above 256 behaves as 256.
func (p *Prng) NextRange(max int) int {
	if max <= 0 {
		return 0
	}
	return int(p.Next()) % max
}

// State returns the current generator state.
func (p *Prng) State() uint32 {
	return p.state
}
