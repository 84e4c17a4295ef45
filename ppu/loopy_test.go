package ppu

import "testing"

func TestLoopyAccessors(t *testing.T) {
	cases := []struct {
		data                           uint16
		wantCoarseX, wantCoarseY       uint16
		wantNameTableX, wantNameTableY uint16
		wantFineY                      uint16
	}{
		{0b0000_0000_0000_0000, 0, 0, 0, 0, 0},
		{0b0111_1011_1001_1000, 0b11000, 0b11100, 0, 1, 0b111},
		{0b0011_0111_1001_0111, 0b10111, 0b11100, 1, 0, 0b011},
		{0b0011_1111_1001_0111, 0b10111, 0b11100, 1, 1, 0b011},
		{0b0011_0011_1011_0111, 0b10111, 0b11101, 0, 0, 0b011},
	}

	for i, tc := range cases {
		l := &loopy{tc.data}
		cx, cy, ntx, nty, fy := l.coarseX(), l.coarseY(), l.nametableX(), l.nametableY(), l.fineY()
		if cx != tc.wantCoarseX || cy != tc.wantCoarseY || ntx != tc.wantNameTableX || nty != tc.wantNameTableY || fy != tc.wantFineY {
			t.Errorf("%d: got %05b,%05b,%b,%b,%03b; want %05b,%05b,%b,%b,%03b",
				i, cx, cy, ntx, nty, fy, tc.wantCoarseX, tc.wantCoarseY, tc.wantNameTableX, tc.wantNameTableY, tc.wantFineY)
		}
	}
}

func TestLoopyIncXWrapsAndTogglesNametable(t *testing.T) {
	l := &loopy{}
	l.setCoarseX(31)
	ntBefore := l.nametableX()
	l.incX()
	if l.coarseX() != 0 {
		t.Fatalf("coarseX after wrap = %d, want 0", l.coarseX())
	}
	if l.nametableX() == ntBefore {
		t.Fatalf("nametableX did not toggle on coarseX wrap")
	}
}

func TestLoopyIncX32TimesIsIdentityAndTogglesOnce(t *testing.T) {
	l := &loopy{}
	l.setCoarseX(17)
	start := l.nametableX()
	startCX := l.coarseX()
	toggles := 0
	prevNT := start
	for i := 0; i < 32; i++ {
		l.incX()
		if l.nametableX() != prevNT {
			toggles++
			prevNT = l.nametableX()
		}
	}
	if l.coarseX() != startCX {
		t.Errorf("coarseX after 32 incX = %d, want %d", l.coarseX(), startCX)
	}
	if toggles != 1 {
		t.Errorf("nametableX toggled %d times over 32 incX, want 1", toggles)
	}
}

func TestLoopyIncYHardwareQuirk(t *testing.T) {
	// coarse_y == 29 wraps and toggles nametable_y.
	l := &loopy{}
	l.setFineY(7)
	l.setCoarseY(29)
	l.incY()
	if l.fineY() != 0 || l.coarseY() != 0 || l.nametableY() != 1 {
		t.Errorf("got fineY=%d coarseY=%d ntY=%d, want 0,0,1", l.fineY(), l.coarseY(), l.nametableY())
	}

	// coarse_y == 31 wraps WITHOUT toggling nametable_y (the documented
	// hardware quirk for out-of-range coarse_y values).
	l2 := &loopy{}
	l2.setFineY(7)
	l2.setCoarseY(31)
	l2.incY()
	if l2.fineY() != 0 || l2.coarseY() != 0 || l2.nametableY() != 0 {
		t.Errorf("got fineY=%d coarseY=%d ntY=%d, want 0,0,0", l2.fineY(), l2.coarseY(), l2.nametableY())
	}
}

func TestLoopyTransferXY(t *testing.T) {
	from := &loopy{0b0111_1011_1001_1000}
	to := &loopy{0}

	to.transferX(from)
	if to.coarseX() != from.coarseX() || to.nametableX() != from.nametableX() {
		t.Errorf("transferX did not copy coarseX/nametableX")
	}
	if to.coarseY() != 0 || to.fineY() != 0 {
		t.Errorf("transferX touched vertical bits")
	}

	to2 := &loopy{0}
	to2.transferY(from)
	if to2.coarseY() != from.coarseY() || to2.nametableY() != from.nametableY() || to2.fineY() != from.fineY() {
		t.Errorf("transferY did not copy coarseY/nametableY/fineY")
	}
	if to2.coarseX() != 0 {
		t.Errorf("transferY touched coarseX")
	}
}
