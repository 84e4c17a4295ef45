package mapper

import "github.com/bdwalton/nescore/cartridge"

// mmc3 implements mapper 4: eight bank registers loaded through a
// bank-select/bank-data pair at $8000/$8001, a mirroring/PRG-RAM pair at
// $A000/$A001, and an IRQ latch/reload/disable/enable quartet at
// $C000/$C001/$E000/$E001. The IRQ counter is clocked by A12 rising edges
// on the PPU's pattern-table address bus, delivered through TickA12 rather
// than a scanline callback, so the mapper needs no knowledge of PPU timing.
//
// Register layout follows nesdev's documented MMC3 board.
type mmc3 struct {
	cartState

	bankSelect uint8
	regs       [8]uint8

	mirror             uint8
	prgRAMEnabled      bool
	prgRAMWriteProtect bool

	irqLatch   uint8
	irqCounter uint8
	irqEnabled bool
	irqReload  bool
	irqPending bool

	lastA12 bool
}

func newMMC3(desc *cartridge.Descriptor) *mmc3 {
	m := &mmc3{cartState: newCartState(desc)}
	m.Reset()
	return m
}

func (m *mmc3) Reset() {
	m.bankSelect = 0
	m.regs = [8]uint8{}
	m.mirror = 0
	m.prgRAMEnabled = true
	m.prgRAMWriteProtect = false
	m.irqLatch = 0
	m.irqCounter = 0
	m.irqEnabled = false
	m.irqReload = false
	m.irqPending = false
	m.lastA12 = false
}

func (m *mmc3) prgMode() uint8 { return (m.bankSelect >> 6) & 1 }
func (m *mmc3) chrMode() uint8 { return (m.bankSelect >> 7) & 1 }

func (m *mmc3) Mirroring() cartridge.Mirroring {
	if m.mirroring == cartridge.FourScreen {
		return cartridge.FourScreen
	}
	if m.mirror&1 != 0 {
		return cartridge.Horizontal
	}
	return cartridge.Vertical
}

func (m *mmc3) IRQ() bool { return m.irqPending }

func (m *mmc3) prgBanks8k() int {
	b := len(m.prg) / 0x2000
	if b == 0 {
		return 1
	}
	return b
}

func (m *mmc3) CPURead(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		if m.prgRAMEnabled {
			return m.readSav(addr)
		}
		return 0
	}
	if addr < 0x8000 {
		return 0
	}

	banks := m.prgBanks8k()
	secondLast := (banks - 2 + banks) % banks
	last := banks - 1
	r6 := int(m.regs[6]) % banks
	r7 := int(m.regs[7]) % banks

	var bank, window int
	switch {
	case addr < 0xA000:
		window = int(addr - 0x8000)
		if m.prgMode() == 0 {
			bank = r6
		} else {
			bank = secondLast
		}
	case addr < 0xC000:
		window = int(addr - 0xA000)
		bank = r7
	case addr < 0xE000:
		window = int(addr - 0xC000)
		if m.prgMode() == 0 {
			bank = secondLast
		} else {
			bank = r6
		}
	default:
		window = int(addr - 0xE000)
		bank = last
	}
	return m.prg[bank*0x2000+window]
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		if m.prgRAMEnabled && !m.prgRAMWriteProtect {
			m.writeSav(addr, val)
		}
		return
	}
	if addr < 0x8000 {
		return
	}

	even := addr%2 == 0
	switch {
	case addr < 0xA000:
		if even {
			m.bankSelect = val
		} else {
			m.regs[m.bankSelect&0x07] = val
		}
	case addr < 0xC000:
		if even {
			m.mirror = val & 0x01
		} else {
			m.prgRAMEnabled = val&0x80 != 0
			m.prgRAMWriteProtect = val&0x40 != 0
		}
	case addr < 0xE000:
		if even {
			m.irqLatch = val
		} else {
			m.irqCounter = 0
			m.irqReload = true
		}
	default:
		if even {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
}

func (m *mmc3) chrBanks1k() int {
	b := len(m.chr) / 0x0400
	if b == 0 {
		return 1
	}
	return b
}

// chrOffset maps a PPU pattern-table address to a byte offset in chr.
// With chrMode 0, the 2KB windows (regs[0], regs[1]) sit at $0000-$0FFF and
// the four 1KB windows (regs[2..5]) sit at $1000-$1FFF; chrMode 1 swaps the
// two halves.
func (m *mmc3) chrOffset(addr uint16) int {
	banks := m.chrBanks1k()
	low2k := m.chrMode() == 0

	twoKHalf := addr < 0x1000
	if !low2k {
		twoKHalf = !twoKHalf
	}

	var bank uint8
	var off int
	if twoKHalf {
		local := addr
		if !low2k {
			local -= 0x1000
		}
		if local < 0x0800 {
			bank = m.regs[0] &^ 1
			off = int(local)
		} else {
			bank = m.regs[1] &^ 1
			off = int(local - 0x0800)
		}
	} else {
		local := addr
		if low2k {
			local -= 0x1000
		}
		idx := 2 + int(local/0x0400)
		bank = m.regs[idx]
		off = int(local % 0x0400)
	}
	return (int(bank)%banks)*0x0400 + off
}

func (m *mmc3) PPURead(addr uint16) uint8 {
	m.TickA12(addr)
	return m.chr[m.chrOffset(addr)%len(m.chr)]
}

func (m *mmc3) PPUWrite(addr uint16, val uint8) {
	m.TickA12(addr)
	if m.chrIsRAM {
		m.chr[m.chrOffset(addr)%len(m.chr)] = val
	}
}

// TickA12 clocks the scanline counter on every A12 rising edge, per the
// real MMC3's external edge detector. No low-time filtering is applied;
// the PPU's per-dot pattern fetch schedule never toggles A12 fast enough
// within a visible scanline to need it.
func (m *mmc3) TickA12(addr uint16) {
	high := addr&0x1000 != 0
	if high && !m.lastA12 {
		if m.irqCounter == 0 || m.irqReload {
			m.irqCounter = m.irqLatch
			m.irqReload = false
		} else {
			m.irqCounter--
		}
		if m.irqCounter == 0 && m.irqEnabled {
			m.irqPending = true
		}
	}
	m.lastA12 = high
}
