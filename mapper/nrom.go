package mapper

import "github.com/bdwalton/nescore/cartridge"

// nrom implements mapper 0. PRG is 16KB (mirrored across $8000-$FFFF) or
// 32KB, fixed; CHR is 8KB ROM or RAM, also fixed. No bank switching, no
// IRQ. The simplest cartridge board.
type nrom struct {
	cartState
}

func newNROM(desc *cartridge.Descriptor) *nrom {
	return &nrom{cartState: newCartState(desc)}
}

func (m *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readSav(addr)
	case addr >= 0x8000:
		return m.prg[int(addr-0x8000)%len(m.prg)]
	default:
		return 0
	}
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writeSav(addr, val)
	}
	// Writes to $8000-$FFFF are ignored: NROM has no registers.
}

func (m *nrom) PPURead(addr uint16) uint8 {
	return m.chr[int(addr)%len(m.chr)]
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	m.writeCHR(addr, val)
}

func (m *nrom) Reset() {}
