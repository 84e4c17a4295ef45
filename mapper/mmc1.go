package mapper

import "github.com/bdwalton/nescore/cartridge"

// mmc1 implements mapper 1: a 5-bit serial shift register feeding four
// internal registers (control, two CHR banks, one PRG bank), selected by
// bits 14-13 of the destination address once the fifth bit has shifted in.
//
// Two correctness traps real MMC1 hardware has, both handled
// explicitly rather than incidentally:
//   - a write with bit 7 set resets the shift register and forces PRG mode
//     to 3 via a direct assignment to just those two control bits, never a
//     blind `control |= mask` over the whole register;
//   - two writes landing on consecutive CPU cycles (the second half of a
//     read-modify-write instruction hitting $8000-$FFFF) count as one write,
//     tracked via the cycle stamp the Bus feeds through SetCPUCycle.
type mmc1 struct {
	cartState

	shift      uint8
	shiftCount uint8

	control  uint8 // cppmm: mirroring(2) | prgMode(2) | chrMode(1), low to high
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgRAMEnabled bool

	cycle          uint64
	lastWriteCycle uint64
	haveLastWrite  bool
}

func newMMC1(desc *cartridge.Descriptor) *mmc1 {
	m := &mmc1{cartState: newCartState(desc)}
	m.Reset()
	return m
}

// SetCPUCycle lets the Bus stamp the mapper with the current master cycle
// count so adjacent-cycle writes from RMW instructions can be collapsed.
// Mappers that don't need cycle awareness simply don't implement this
// method; the Bus checks for it with a type assertion.
func (m *mmc1) SetCPUCycle(cycle uint64) { m.cycle = cycle }

func (m *mmc1) Reset() {
	m.shift = 0
	m.shiftCount = 0
	m.control = 0x0C // power-on: PRG mode 3, mirroring/CHR mode 0
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
	m.prgRAMEnabled = true
	m.haveLastWrite = false
}

func (m *mmc1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *mmc1) chrMode() uint8 { return (m.control >> 4) & 0x01 }

func (m *mmc1) Mirroring() cartridge.Mirroring {
	switch m.control & 0x03 {
	case 0:
		return cartridge.SingleScreenLow
	case 1:
		return cartridge.SingleScreenHigh
	case 2:
		return cartridge.Vertical
	default:
		return cartridge.Horizontal
	}
}

func (m *mmc1) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		if m.prgRAMEnabled {
			return m.readSav(addr)
		}
		return 0
	case addr >= 0x8000 && addr < 0xC000:
		switch m.prgMode() {
		case 0, 1:
			bank := (int(m.prgBank) >> 1) % max1(m.prgBanks16k()/2)
			return m.prg[bank*0x8000+int(addr-0x8000)]
		case 2:
			return m.prg[int(addr-0x8000)]
		default: // 3
			bank := int(m.prgBank) % m.prgBanks16k()
			return m.prg[bank*0x4000+int(addr-0x8000)]
		}
	case addr >= 0xC000:
		switch m.prgMode() {
		case 0, 1:
			bank := (int(m.prgBank) >> 1) % max1(m.prgBanks16k()/2)
			return m.prg[bank*0x8000+0x4000+int(addr-0xC000)]
		case 2:
			bank := int(m.prgBank) % m.prgBanks16k()
			return m.prg[bank*0x4000+int(addr-0xC000)]
		default: // 3
			last := m.prgBanks16k() - 1
			return m.prg[last*0x4000+int(addr-0xC000)]
		}
	default:
		return 0
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		if m.prgRAMEnabled {
			m.writeSav(addr, val)
		}
		return
	}
	if addr < 0x8000 {
		return
	}

	if val&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control = (m.control &^ 0x0C) | (3 << 2) // direct assignment: PRG mode <- 3
		m.haveLastWrite = false
		return
	}

	if m.haveLastWrite && m.cycle == m.lastWriteCycle+1 {
		// Second half of a read-modify-write instruction touching the
		// same serial port; hardware only sees the first write.
		return
	}
	m.lastWriteCycle = m.cycle
	m.haveLastWrite = true

	m.shift = (m.shift >> 1) | ((val & 1) << 4)
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	data := m.shift
	switch (addr >> 13) & 0x03 {
	case 0:
		m.control = data & 0x1F
	case 1:
		m.chrBank0 = data & 0x1F
	case 2:
		m.chrBank1 = data & 0x1F
	case 3:
		m.prgBank = data & 0x0F
		m.prgRAMEnabled = data&0x10 == 0
	}
	m.shift = 0
	m.shiftCount = 0
}

func (m *mmc1) chrOffset(addr uint16) int {
	banks4k := len(m.chr) / 0x1000
	if banks4k == 0 {
		banks4k = 1
	}
	if m.chrMode() == 0 {
		bank := int(m.chrBank0&^1) % banks4k
		return (bank*0x1000 + int(addr)) % len(m.chr)
	}
	if addr < 0x1000 {
		bank := int(m.chrBank0) % banks4k
		return (bank*0x1000 + int(addr)) % len(m.chr)
	}
	bank := int(m.chrBank1) % banks4k
	return (bank*0x1000 + int(addr-0x1000)) % len(m.chr)
}

func (m *mmc1) PPURead(addr uint16) uint8 {
	return m.chr[m.chrOffset(addr)]
}

func (m *mmc1) PPUWrite(addr uint16, val uint8) {
	if m.chrIsRAM {
		m.chr[m.chrOffset(addr)] = val
	}
}

func max1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
