package common

import "testing"

func TestMoreThanOne(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		want  bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"far one", 1 << 60, false},
		{"two ones", 3, true},
		{"two ones apart", 1<<6 | 1<<25, true},
		{"three ones apart", 1<<6 | 1<<25 | 1<<36, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoreThanOne(tt.value); got != tt.want {
				t.Errorf("MoreThanOne(%x) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestPawnPushes(t *testing.T) {
	tests := []struct {
		name string
		from int
		side int
		occ  uint64
		want uint64
	}{
		{"white start", SquareE2, SideWhite, 0, SquareMask[SquareE3] | SquareMask[SquareE4]},
		{"white blocked double", SquareE2, SideWhite, SquareMask[SquareE4], SquareMask[SquareE3]},
		{"white blocked", SquareE2, SideWhite, SquareMask[SquareE3], 0},
		{"white advanced", SquareE5, SideWhite, 0, SquareMask[SquareE6]},
		{"black start", SquareD7, SideBlack, 0, SquareMask[SquareD6] | SquareMask[SquareD5]},
		{"black advanced", SquareD4, SideBlack, 0, SquareMask[SquareD3]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PawnPushes(tt.from, tt.side, tt.occ); got != tt.want {
				t.Errorf("PawnPushes = %v, want %v", BitboardString(got), BitboardString(tt.want))
			}
		})
	}
}

func TestPassedPawnMasks(t *testing.T) {
	var mask = PassedPawnMasks[SideWhite][SquareE5]
	for _, sq := range []int{SquareD6, SquareE6, SquareF6, SquareD7, SquareE7, SquareF7, SquareE8} {
		if mask&SquareMask[sq] == 0 {
			t.Errorf("%v missing from white e5 mask", SquareName(sq))
		}
	}
	for _, sq := range []int{SquareE5, SquareD5, SquareD3, SquareC6, SquareG7} {
		if mask&SquareMask[sq] != 0 {
			t.Errorf("%v unexpected in white e5 mask", SquareName(sq))
		}
	}
	if PassedPawnMasks[SideBlack][SquareE4] != FlipBitboard(PassedPawnMasks[SideWhite][SquareE5]) {
		t.Error("black mask is not the mirror of the white mask")
	}
}

func TestSliderAttacks(t *testing.T) {
	var occ = SquareMask[SquareD4] | SquareMask[SquareA4]
	var got = RookAttacks(SquareA1, occ)
	var want = (FileAMask & (Rank2Mask | Rank3Mask | Rank4Mask)) | (Rank1Mask &^ SquareMask[SquareA1])
	if got != want {
		t.Errorf("RookAttacks = %v, want %v", BitboardString(got), BitboardString(want))
	}
	if PopCount(QueenAttacks(SquareD4, 0)) != 27 {
		t.Errorf("queen on d4 should attack 27 squares")
	}
}
