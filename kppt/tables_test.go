package kppt

import (
	"testing"

	"shogi-kppt/shogi"
)

func TestEvaluate(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates the full table set")
	}
	ev := NewEvalTable()

	pos, err := shogi.ParseSFEN("4k4/9/9/9/9/9/9/9/4K4 b 2P 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}
	bk := pos.KingSquare(shogi.Black)
	wk := pos.KingSquare(shogi.White)

	ev.KK[bk][wk] = KKValue{3200, 64}
	ev.KKP[bk][wk][FHandPawn] = KKPValue{320, 32}
	ev.KKP[bk][wk][FHandPawn+1] = KKPValue{100, 10}
	ev.KPP[bk][FHandPawn+1][FHandPawn] = KPPValue{160, 16}
	ev.KPP[shogi.InverseSquare(wk)][EHandPawn+1][EHandPawn] = KPPValue{-40, 8}

	// board = 3200 + 320 + 100 + (160 - (-40)) = 3820
	// turn  = 64 + 32 + 10 + (16 + 8) = 130
	if got := Evaluate(pos, ev); got != (3820+130)/FVScale {
		t.Fatalf("black to move: got %d, want %d", got, (3820+130)/FVScale)
	}

	pos.Side = shogi.White
	if got := Evaluate(pos, ev); got != (-3820+130)/FVScale {
		t.Fatalf("white to move: got %d, want %d", got, (-3820+130)/FVScale)
	}
}

func TestEvalTableSaveLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates two full table sets and writes them to disk")
	}
	ev := NewEvalTable()
	ev.KK[0][1] = KKValue{-123, 45}
	ev.KK[shogi.SquareNB-1][shogi.SquareNB-1] = KKValue{7, -8}
	ev.KKP[3][4][FEEnd-1] = KKPValue{99, -100}
	ev.KPP[shogi.SquareNB-1][FEEnd-1][FEEnd-1] = KPPValue{-32768, 32767}
	ev.KPP[5][FHandPawn][EHandPawn] = KPPValue{11, -12}

	dir := t.TempDir()
	if err := ev.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := NewEvalTable()
	if err := loaded.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.KK[0][1] != ev.KK[0][1] || loaded.KK[shogi.SquareNB-1][shogi.SquareNB-1] != ev.KK[shogi.SquareNB-1][shogi.SquareNB-1] {
		t.Fatalf("KK entries did not survive the roundtrip")
	}
	if loaded.KKP[3][4][FEEnd-1] != ev.KKP[3][4][FEEnd-1] {
		t.Fatalf("KKP entry did not survive the roundtrip")
	}
	if loaded.KPP[shogi.SquareNB-1][FEEnd-1][FEEnd-1] != ev.KPP[shogi.SquareNB-1][FEEnd-1][FEEnd-1] {
		t.Fatalf("KPP corner entry did not survive the roundtrip")
	}
	if loaded.KPP[5][FHandPawn][EHandPawn] != ev.KPP[5][FHandPawn][EHandPawn] {
		t.Fatalf("KPP entry did not survive the roundtrip")
	}
}

func TestLoadMissingDir(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates the full table set")
	}
	ev := NewEvalTable()
	if err := ev.Load(t.TempDir()); err == nil {
		t.Fatalf("Load from empty dir: expected error")
	}
}
