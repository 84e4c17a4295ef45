package mapper

import "github.com/bdwalton/nescore/cartridge"

// uxrom implements mapper 2. Writes to $8000-$FFFF select the 16KB PRG
// bank mapped at $8000-$BFFF; $C000-$FFFF is fixed to the last bank. CHR
// is unbanked: 8KB of RAM when the descriptor has no CHR, otherwise the
// descriptor's CHR-ROM.
type uxrom struct {
	cartState
	bank uint8
}

func newUxROM(desc *cartridge.Descriptor) *uxrom {
	return &uxrom{cartState: newCartState(desc)}
}

func (m *uxrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readSav(addr)
	case addr >= 0x8000 && addr < 0xC000:
		bank := int(m.bank) % m.prgBanks16k()
		return m.prg[bank*0x4000+int(addr-0x8000)]
	case addr >= 0xC000:
		last := m.prgBanks16k() - 1
		return m.prg[last*0x4000+int(addr-0xC000)]
	default:
		return 0
	}
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writeSav(addr, val)
	case addr >= 0x8000:
		m.bank = val
	}
}

func (m *uxrom) PPURead(addr uint16) uint8 {
	return m.chr[int(addr)%len(m.chr)]
}

func (m *uxrom) PPUWrite(addr uint16, val uint8) {
	m.writeCHR(addr, val)
}

func (m *uxrom) Reset() { m.bank = 0 }
