package common

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

var (
	whitePawnAttacks, blackPawnAttacks [64]uint64
	SquareMask                         [64]uint64
	KnightAttacks                      [64]uint64
	KingAttacks                        [64]uint64
	// squares strictly ahead of a square on its own file
	ForwardFileMasks [COLOUR_NB][64]uint64
	// squares strictly ahead of a square on its own and adjacent files
	PassedPawnMasks [COLOUR_NB][64]uint64
)

var FileMask = [8]uint64{
	FileAMask, FileBMask, FileCMask, FileDMask, FileEMask, FileFMask, FileGMask, FileHMask,
}

var RankMask = [8]uint64{
	Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask, Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask,
}

func BitboardString(b uint64) string {
	var s = ""
	for x := b; x != 0; x &= x - 1 {
		sq := FirstOne(x)
		if s != "" {
			s += ","
		}
		s += SquareName(sq)
	}
	return "(" + s + ")"
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func MoreThanOne(value uint64) bool {
	return value&(value-1) != 0
}

func Up(b uint64) uint64 {
	return b << 8
}

func Down(b uint64) uint64 {
	return b >> 8
}

func Right(b uint64) uint64 {
	return (b & ^FileHMask) << 1
}

func Left(b uint64) uint64 {
	return (b & ^FileAMask) >> 1
}

func UpRight(b uint64) uint64 {
	return Up(Right(b))
}

func UpLeft(b uint64) uint64 {
	return Up(Left(b))
}

func DownRight(b uint64) uint64 {
	return Down(Right(b))
}

func DownLeft(b uint64) uint64 {
	return Down(Left(b))
}

func UpFill(gen uint64) uint64 {
	gen |= (gen << 8)
	gen |= (gen << 16)
	gen |= (gen << 32)
	return gen
}

func DownFill(gen uint64) uint64 {
	gen |= (gen >> 8)
	gen |= (gen >> 16)
	gen |= (gen >> 32)
	return gen
}

func PawnAttacks(from int, side int) uint64 {
	if side == SideWhite {
		return whitePawnAttacks[from]
	}
	return blackPawnAttacks[from]
}

// PawnPushes returns the quiet pushes of a pawn, the double push included.
func PawnPushes(from int, side int, occ uint64) uint64 {
	var empty = ^occ
	if side == SideWhite {
		var single = Up(SquareMask[from]) & empty
		return single | Up(single&Rank3Mask)&empty
	}
	var single = Down(SquareMask[from]) & empty
	return single | Down(single&Rank6Mask)&empty
}

func BishopAttacks(from int, occ uint64) uint64 {
	return dragontoothmg.CalculateBishopMoveBitboard(uint8(from), occ)
}

func RookAttacks(from int, occ uint64) uint64 {
	return dragontoothmg.CalculateRookMoveBitboard(uint8(from), occ)
}

func QueenAttacks(from int, occ uint64) uint64 {
	return BishopAttacks(from, occ) | RookAttacks(from, occ)
}

func init() {
	for sq := 0; sq < 64; sq++ {
		var b = uint64(1) << uint(sq)
		SquareMask[sq] = b

		whitePawnAttacks[sq] = Up(Left(b) | Right(b))
		blackPawnAttacks[sq] = Down(Left(b) | Right(b))

		KnightAttacks[sq] = Right(UpRight(b)) | Up(UpRight(b)) |
			Up(UpLeft(b)) | Left(UpLeft(b)) |
			Left(DownLeft(b)) | Down(DownLeft(b)) |
			Down(DownRight(b)) | Right(DownRight(b))

		KingAttacks[sq] = UpRight(b) | Up(b) | UpLeft(b) | Left(b) |
			DownLeft(b) | Down(b) | DownRight(b) | Right(b)

		ForwardFileMasks[SideWhite][sq] = UpFill(Up(b))
		ForwardFileMasks[SideBlack][sq] = DownFill(Down(b))

		for side := SideWhite; side <= SideBlack; side++ {
			var front = ForwardFileMasks[side][sq]
			PassedPawnMasks[side][sq] = front | Left(front) | Right(front)
		}
	}
}

func FlipBitboard(b uint64) uint64 {
	return bits.ReverseBytes64(b)
}
