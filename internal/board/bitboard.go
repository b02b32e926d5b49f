package board

import "math/bits"

// Bitboard represents the 225 cells of a gomoku board, one bit per cell.
// Bit i corresponds to the cell at (i%Size, i/Size); bits 225-255 stay zero.
type Bitboard [4]uint64

// Set sets the bit at the given cell index.
func (b *Bitboard) Set(i int) {
	b[i>>6] |= 1 << (i & 63)
}

// Clear clears the bit at the given cell index.
func (b *Bitboard) Clear(i int) {
	b[i>>6] &^= 1 << (i & 63)
}

// IsSet returns true if the bit at the given cell index is set.
func (b *Bitboard) IsSet(i int) bool {
	return b[i>>6]&(1<<(i&63)) != 0
}

// Reset clears all bits.
func (b *Bitboard) Reset() {
	b[0], b[1], b[2], b[3] = 0, 0, 0, 0
}

// PopCount returns the number of set bits.
func (b *Bitboard) PopCount() int {
	return bits.OnesCount64(b[0]) + bits.OnesCount64(b[1]) +
		bits.OnesCount64(b[2]) + bits.OnesCount64(b[3])
}

// Empty returns true if no bits are set.
func (b *Bitboard) Empty() bool {
	return b[0]|b[1]|b[2]|b[3] == 0
}

// ForEach calls f for each set cell index in ascending order.
func (b *Bitboard) ForEach(f func(int)) {
	for w := 0; w < 4; w++ {
		word := b[w]
		for word != 0 {
			f(w<<6 + bits.TrailingZeros64(word))
			word &= word - 1
		}
	}
}
