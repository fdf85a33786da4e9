package domain

const (
	// DefaultFuzzIterations is how many seeds a fuzz test is swept over
	// unless configured otherwise.
	DefaultFuzzIterations = 500
	// FuzzStartSeed is the seed every fuzz test starts from.
	FuzzStartSeed uint32 = 0xDEADBEEF

	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Fuzzer is the linear congruential generator that drives fuzz sweeps.
type Fuzzer struct {
	seed uint32
}

// NewFuzzer returns a Fuzzer positioned at FuzzStartSeed.
func NewFuzzer() *Fuzzer {
	return &Fuzzer{seed: FuzzStartSeed}
}

// Reset repositions the generator.
func (f *Fuzzer) Reset(seed uint32) {
	f.seed = seed
}

// Seed returns the current generator state.
func (f *Fuzzer) Seed() uint32 {
	return f.seed
}

// Next advances the generator and returns the new state.
func (f *Fuzzer) Next() uint32 {
	next := (lcgMultiplier*uint64(f.seed) + lcgIncrement) % lcgModulus
	f.seed = uint32(next & 0xFFFFFFFF)

	return f.seed
}

// NextRandom advances the generator and reduces the result by modulus. A
// zero modulus returns the raw value.
func (f *Fuzzer) NextRandom(modulus uint32) uint32 {
	v := f.Next()
	if modulus == 0 {
		return v
	}

	return v % modulus
}
