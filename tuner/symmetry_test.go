// tuner/symmetry_test.go
package tuner

import (
	"slices"
	"sync"
	"testing"

	"shogi-kppt/kppt"
	"shogi-kppt/shogi"
)

// testTables shares one symmetry context across the package's tests;
// building it scans the whole index space once.
var testTables = sync.OnceValue(NewTables)

func TestPieceInvolutions(t *testing.T) {
	st := testTables()
	for p := kppt.BonaPiece(0); p < kppt.FEEnd; p++ {
		if got := st.InvPiece(st.InvPiece(p)); got != p {
			t.Fatalf("inv(inv(%d)) = %d", p, got)
		}
		if got := st.MirPiece(st.MirPiece(p)); got != p {
			t.Fatalf("mir(mir(%d)) = %d", p, got)
		}
		if st.InvPiece(p) >= kppt.FEEnd || st.MirPiece(p) >= kppt.FEEnd {
			t.Fatalf("involution of %d escapes the code space", p)
		}
	}
}

func TestInvPieceKnownCodes(t *testing.T) {
	st := testTables()
	if got := st.InvPiece(kppt.FHandPawn); got != kppt.EHandPawn {
		t.Fatalf("inv(FHandPawn) = %d, want %d", got, kppt.EHandPawn)
	}
	if got := st.InvPiece(kppt.EHandRook + 1); got != kppt.FHandRook+1 {
		t.Fatalf("inv(second white hand rook) = %d, want %d", got, kppt.FHandRook+1)
	}

	// A black pawn on a square turns into a white pawn on the rotated
	// square.
	sq := shogi.NewSquare(2, 6)
	want := kppt.EPawn + kppt.BonaPiece(shogi.InverseSquare(sq))
	if got := st.InvPiece(kppt.FPawn + kppt.BonaPiece(sq)); got != want {
		t.Fatalf("inv(black pawn on %d) = %d, want %d", sq, got, want)
	}
}

func TestMirPieceKnownCodes(t *testing.T) {
	st := testTables()
	// Hand codes are their own mirror image.
	if got := st.MirPiece(kppt.FHandRook); got != kppt.FHandRook {
		t.Fatalf("mir(FHandRook) = %d", got)
	}
	if got := st.MirPiece(kppt.EHandGold + 2); got != kppt.EHandGold+2 {
		t.Fatalf("mir(third white hand gold) = %d", got)
	}

	// Board codes flip the file and keep the owner.
	sq := shogi.NewSquare(2, 6)
	want := kppt.FPawn + kppt.BonaPiece(shogi.MirrorSquare(sq))
	if got := st.MirPiece(kppt.FPawn + kppt.BonaPiece(sq)); got != want {
		t.Fatalf("mir(black pawn on %d) = %d, want %d", sq, got, want)
	}
	want = kppt.EDragon + kppt.BonaPiece(shogi.MirrorSquare(sq))
	if got := st.MirPiece(kppt.EDragon + kppt.BonaPiece(sq)); got != want {
		t.Fatalf("mir(white dragon on %d) = %d, want %d", sq, got, want)
	}
}

func TestKKAllCanonical(t *testing.T) {
	st := testTables()
	for i := KKMinIndex; i < KKMaxIndex; i++ {
		if !st.IsMinIndex(i) {
			t.Fatalf("KK index %d not flagged canonical", i)
		}
	}
}

func TestKKPMinIndexFlag(t *testing.T) {
	st := testTables()
	flagged := 0
	for i := KKPMinIndex; i < KKPMaxIndex; i += 7919 {
		lows := KKPFromIndex(i).LowerDimensions(st)
		min := lows[0].Index()
		if j := lows[1].Index(); j < min {
			min = j
		}
		if got := st.IsMinIndex(i); got != (i == min) {
			t.Fatalf("index %d: canonical flag = %v, class minimum = %d", i, got, min)
		}
		if i == min {
			flagged++
		}
	}
	if flagged == 0 {
		t.Fatal("probe found no canonical KKP index")
	}
}

// classIndexes returns the sorted distinct indices of a KPP feature's
// symmetry class.
func classIndexes(st *Tables, f KPP) []uint64 {
	lows := f.LowerDimensions(st)
	ids := make([]uint64, 0, len(lows))
	for _, m := range lows {
		ids = append(ids, m.Index())
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func TestKPPClassClosure(t *testing.T) {
	st := testTables()
	for i := KPPMinIndex; i < KPPMaxIndex; i += 1000003 {
		f := KPPFromIndex(i)
		base := classIndexes(st, f)

		// Every member sees the same class.
		for _, m := range f.LowerDimensions(st) {
			if !slices.Equal(classIndexes(st, m), base) {
				t.Fatalf("index %d: class of member %+v differs from the class of %+v", i, m, f)
			}
		}

		// Exactly the smallest member carries the canonical flag.
		for j, id := range base {
			if got := st.IsMinIndex(id); got != (j == 0) {
				t.Fatalf("index %d: class %v has flag %v on member %d", i, base, got, id)
			}
		}
	}
}

func TestSelfSymmetricKPPFlagged(t *testing.T) {
	st := testTables()
	// A pair of identical hand codes under a center-file king mirrors
	// and swaps onto itself: a one-member class, necessarily canonical.
	f := KPP{shogi.NewSquare(4, 4), kppt.FHandPawn, kppt.FHandPawn}
	if got := classIndexes(st, f); len(got) != 1 {
		t.Fatalf("class of %+v has %d members, want 1", f, len(got))
	}
	if !st.IsMinIndex(f.Index()) {
		t.Fatalf("self-symmetric index %d not flagged canonical", f.Index())
	}
}
