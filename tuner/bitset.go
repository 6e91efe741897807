// tuner/bitset.go
package tuner

// bitset is a packed bit array addressed by global feature index. At
// one bit per parameter the canonical-index flags cost about 25MB,
// against some 200MB for a []bool over the same space.
type bitset []uint64

func newBitset(n uint64) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i uint64) {
	b[i>>6] |= 1 << (i & 63)
}

func (b bitset) get(i uint64) bool {
	return b[i>>6]&(1<<(i&63)) != 0
}
