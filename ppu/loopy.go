package ppu

// loopy is the 15-bit VRAM address register shared by v and t:
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
//
// This is nesdev's documented "loopy" register, named after the forum
// post that reverse-engineered it. incX/incY/transferX/transferY
// implement the per-dot scroll-increment and t->v copy operations the
// PPU's rendering pipeline drives at fixed points in the scanline.
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) get() uint16 { return l.data & 0x7FFF }

func (l *loopy) set(v uint16) { l.data = v & 0x7FFF }

func (l *loopy) coarseX() uint16 { return l.data & 0x001F }

func (l *loopy) setCoarseX(n uint16) { l.data = (l.data &^ 0x001F) | (n & 0x001F) }

func (l *loopy) coarseY() uint16 { return (l.data & 0x03E0) >> 5 }

func (l *loopy) setCoarseY(n uint16) { l.data = (l.data &^ 0x03E0) | ((n & 0x001F) << 5) }

func (l *loopy) nametableX() uint16 { return (l.data & 0x0400) >> 10 }

func (l *loopy) nametableY() uint16 { return (l.data & 0x0800) >> 11 }

func (l *loopy) fineY() uint16 { return (l.data & 0x7000) >> 12 }

func (l *loopy) setFineY(n uint16) { l.data = (l.data &^ 0x7000) | ((n & 0x0007) << 12) }

// incX implements the coarse-X scroll increment at the end of each tile
// fetch: wrap coarse_x at 31 and toggle nametable_x instead of letting it
// run into the nametable-select bits.
func (l *loopy) incX() {
	if l.coarseX() == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
	} else {
		l.data++
	}
}

// incY implements the dot-256 fine/coarse-Y increment, including the
// documented hardware quirk: coarse_y==31 wraps to 0 without toggling
// nametable_y (coarse_y is allowed to hold an out-of-range value there on
// real hardware, reachable by writing it directly via PPUSCROLL/PPUADDR).
func (l *loopy) incY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}
	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.data ^= 0x0800
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(l.coarseY() + 1)
	}
}

// transferX copies the horizontal scroll bits (coarse_x, nametable_x) from
// t into v, per the dot-257 copy.
func (l *loopy) transferX(from *loopy) {
	const mask = 0x041F
	l.data = (l.data &^ mask) | (from.data & mask)
}

// transferY copies the vertical scroll bits (coarse_y, nametable_y, fine_y)
// from t into v, per the pre-render dots 280-304 copy.
func (l *loopy) transferY(from *loopy) {
	const mask = 0x7BE0
	l.data = (l.data &^ mask) | (from.data & mask)
}
