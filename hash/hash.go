// Package hash implements the fast modular hash used to spread terms over
// feature buckets.
package hash

// Hash mixes n with salt s and reduces the result into [0, max).
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mix input with salt using subtraction
	var m = uint32(n) - uint32(s)

	// xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mix again using addition
	m += s

	// multiply shift instead of modulo, see
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// StringHash folds every byte of str into a 32 bit value salted by seed.
func StringHash(seed uint32, str string) uint32 {
	var ret = seed
	for i := 0; i < len(str); i++ {
		ret = Hash(ret, uint32(str[i]), 0xFFFFFFFF)
	}
	return ret
}

// Bucket maps a term onto one of buckets slots. Zero buckets yields zero.
func Bucket(term string, buckets int) int {
	return int(Hash(StringHash(0, term), uint32(len(term)), uint32(buckets)))
}
