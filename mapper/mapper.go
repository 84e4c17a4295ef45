// Package mapper implements the cartridge mapper contract: NROM, UxROM,
// CNROM, MMC1, and MMC3, each a small state machine over a
// cartridge.Descriptor's PRG/CHR bytes. Dispatch is over a sum type (one
// struct per mapper number) built at construction time by New, rather
// than a runtime registry of interface values — see DESIGN.md for why.
package mapper

import (
	"fmt"

	"github.com/bdwalton/nescore/cartridge"
)

// Mapper is the contract the Bus and PPU use to reach cartridge memory.
// CPURead/CPUWrite cover $4020-$FFFF (and, for mappers with PRG-RAM,
// $6000-$7FFF). PPURead/PPUWrite cover $0000-$1FFF (the pattern tables).
type Mapper interface {
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	Mirroring() cartridge.Mirroring
	// TickA12 observes the PPU address bus on a pattern-table access, so
	// that mappers which watch the A12 line (MMC3) can drive their
	// scanline counter. A mapper that cares calls this itself from its
	// own PPURead/PPUWrite; mappers that don't care ignore it.
	TickA12(addr uint16)
	Reset()
	// IRQ reports whether the mapper is currently asserting the cartridge
	// IRQ line (only MMC3 ever returns true).
	IRQ() bool
}

// New constructs the mapper named by desc.MapperNum, validating the
// descriptor first. Construction errors propagate to the caller; they
// are the only error class that can prevent a System from being built
// at all.
func New(desc *cartridge.Descriptor) (Mapper, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	switch desc.MapperNum {
	case 0:
		return newNROM(desc), nil
	case 1:
		return newMMC1(desc), nil
	case 2:
		return newUxROM(desc), nil
	case 3:
		return newCNROM(desc), nil
	case 4:
		return newMMC3(desc), nil
	default:
		return nil, fmt.Errorf("mapper: unsupported mapper number %d", desc.MapperNum)
	}
}

// cartState holds the fields every mapper variant needs: the raw PRG/CHR
// bytes, optional PRG-RAM, and the mirroring mode. Covers both CHR-ROM
// and CHR-RAM boards.
type cartState struct {
	prg []uint8
	chr []uint8 // ROM or RAM, depending on chrIsRAM
	sav []uint8 // 8KB PRG-RAM at $6000-$7FFF, present whenever a mapper allows it

	chrIsRAM  bool
	mirroring cartridge.Mirroring
}

func newCartState(desc *cartridge.Descriptor) cartState {
	cs := cartState{
		prg:       append([]uint8(nil), desc.PRG...),
		mirroring: desc.Mirroring,
		sav:       make([]uint8, 0x2000),
	}
	if desc.ChrIsRAM() {
		cs.chr = make([]uint8, 0x2000)
		cs.chrIsRAM = true
	} else {
		cs.chr = append([]uint8(nil), desc.CHR...)
	}
	return cs
}

func (cs *cartState) prgBanks16k() int { return len(cs.prg) / 0x4000 }
func (cs *cartState) chrBanks8k() int  { return len(cs.chr) / 0x2000 }

func (cs *cartState) readSav(addr uint16) uint8 {
	return cs.sav[addr-0x6000]
}

func (cs *cartState) writeSav(addr uint16, val uint8) {
	cs.sav[addr-0x6000] = val
}

func (cs *cartState) writeCHR(addr uint16, val uint8) {
	if cs.chrIsRAM {
		cs.chr[int(addr)%len(cs.chr)] = val
	}
}

func (cs *cartState) Mirroring() cartridge.Mirroring { return cs.mirroring }
func (cs *cartState) TickA12(addr uint16)            {}
func (cs *cartState) IRQ() bool                      { return false }
