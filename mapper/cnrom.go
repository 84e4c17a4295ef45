package mapper

import "github.com/bdwalton/nescore/cartridge"

// cnrom implements mapper 3. PRG is fixed (16 or 32KB, mirrored if 16KB,
// exactly as NROM); writes to $8000-$FFFF select an 8KB CHR-ROM window.
type cnrom struct {
	cartState
	chrBank uint8
}

func newCNROM(desc *cartridge.Descriptor) *cnrom {
	return &cnrom{cartState: newCartState(desc)}
}

func (m *cnrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readSav(addr)
	case addr >= 0x8000:
		return m.prg[int(addr-0x8000)%len(m.prg)]
	default:
		return 0
	}
}

func (m *cnrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writeSav(addr, val)
	case addr >= 0x8000:
		banks := m.chrBanks8k()
		if banks == 0 {
			banks = 1
		}
		m.chrBank = val % uint8(banks)
	}
}

func (m *cnrom) PPURead(addr uint16) uint8 {
	base := int(m.chrBank) * 0x2000
	return m.chr[(base+int(addr))%len(m.chr)]
}

func (m *cnrom) PPUWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		base := int(m.chrBank) * 0x2000
		m.chr[(base+int(addr))%len(m.chr)] = val
	}
}

func (m *cnrom) Reset() { m.chrBank = 0 }
