// Package bus wires the CPU, PPU, APU, mapper, controllers and work RAM
// together. It is the only component allowed to know about all the
// others: every other package reaches the rest of the machine only
// through the interfaces Bus hands it. It is driven one CPU cycle at a
// time rather than running a whole instruction and catching the PPU up
// afterward.
package bus

import (
	"github.com/bdwalton/nescore/apu"
	"github.com/bdwalton/nescore/controller"
	"github.com/bdwalton/nescore/cpu"
	"github.com/bdwalton/nescore/mapper"
	"github.com/bdwalton/nescore/ppu"
)

// cpuCycleSetter is the optional interface a mapper can implement to
// learn the current CPU cycle count, used by MMC1 to collapse two
// adjacent-cycle writes from a read-modify-write instruction into one
// (see mapper/mmc1.go).
type cpuCycleSetter interface {
	SetCPUCycle(cycle uint64)
}

// Bus owns every other component and is the sole path between them.
type Bus struct {
	CPU  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	mp   mapper.Mapper
	pads [2]controller.Controller

	ram [0x0800]uint8

	cycleSetter cpuCycleSetter
	totalCycles uint64

	dataLatch uint8

	dmaCyclesRemaining int
	dmaPage            uint8
	dmaSrcOffset       int // 0..255, sequential through the source page
	dmaIndex           int // destination OAM index, starts at OAMADDR, wraps mod 256
}

// New constructs a Bus around a ready mapper and resets the CPU from it.
// The CPU is allocated before any bus-triggering call is made: cpu.New
// would call Reset synchronously, which reads the reset vector through
// b.Read and so Tick, which touches b.CPU before an assignment from
// cpu.New's return value could take effect.
func New(m mapper.Mapper) *Bus {
	b := &Bus{
		CPU: &cpu.CPU{},
		ppu: ppu.New(m),
		apu: apu.New(),
		mp:  m,
	}
	if cs, ok := m.(cpuCycleSetter); ok {
		b.cycleSetter = cs
	}
	b.CPU.Reset(b)
	return b
}

// Reset clears work RAM, resets the mapper and the PPU, and reloads the
// CPU's registers from the reset vector. The APU and the controllers keep
// their state.
func (b *Bus) Reset() {
	for i := range b.ram {
		b.ram[i] = 0
	}
	b.mp.Reset()
	b.ppu.Reset()
	b.CPU.Reset(b)
}

// PPU exposes the owned PPU for frame-buffer access.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// SetButton forwards a button edge to one of the two pads (0 or 1).
func (b *Bus) SetButton(pad int, button uint8, pressed bool) {
	if pad < 0 || pad > 1 {
		return
	}
	b.pads[pad].SetButton(button, pressed)
}

// Tick advances every owned component by exactly one CPU cycle: three PPU
// clocks, one APU clock, then interrupt sampling.
// Called once per CPU cycle, whether or not that cycle also performs a
// memory access, so the PPU always advances in lockstep with the CPU.
func (b *Bus) Tick() {
	for i := 0; i < 3; i++ {
		b.ppu.Tick()
	}
	b.apu.Tick()
	b.totalCycles++

	if b.ppu.NMI() {
		b.CPU.RequestNMI()
	}
	b.CPU.SetIRQLine(b.mp.IRQ())

	if b.cycleSetter != nil {
		b.cycleSetter.SetCPUCycle(b.totalCycles)
	}
}

// Read performs a CPU-side read and ticks the bus once, decoding addr
// against the full $0000-$FFFF CPU memory map.
func (b *Bus) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr <= 0x1FFF:
		v = b.ram[addr&0x07FF]
		b.dataLatch = v
	case addr <= 0x3FFF:
		v = b.ppu.ReadRegister(addr & 0x0007)
		b.dataLatch = v
	case addr == 0x4015:
		v = b.apu.ReadStatus()
		b.dataLatch = v
	case addr == 0x4016:
		v = b.pads[0].Read()
	case addr == 0x4017:
		v = b.pads[1].Read()
	case addr <= 0x4013 || addr == 0x4014:
		v = b.dataLatch
	case addr >= 0x4020:
		v = b.mp.CPURead(addr)
		b.dataLatch = v
	default:
		v = b.dataLatch
	}
	b.Tick()
	return v
}

// Peek reads a byte from CPU address space without ticking the bus or
// triggering any register read side effects (PPUSTATUS vblank-clear,
// OAMDATA/PPUDATA auto-increment, controller shift), for the monitor
// hook to inspect upcoming instruction bytes without disturbing the
// cycle-accurate PPU/CPU lockstep. Addresses with read side effects
// report the last byte latched on the bus instead of performing the
// read.
func (b *Bus) Peek(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&0x07FF]
	case addr >= 0x4020:
		return b.mp.CPURead(addr)
	default:
		return b.dataLatch
	}
}

// Write performs a CPU-side write and ticks the bus once. Writing $4014
// does not itself perform the DMA transfer; runDMA (called from
// StepInstruction) does, since
// the transfer suspends the CPU for 513/514 cycles rather than completing
// within this one.
func (b *Bus) Write(addr uint16, val uint8) {
	b.dataLatch = val
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = val
	case addr <= 0x3FFF:
		b.ppu.WriteRegister(addr&0x0007, val)
	case addr == 0x4014:
		b.dmaPage = val
		b.dmaCyclesRemaining = 513
		if b.totalCycles%2 == 1 {
			b.dmaCyclesRemaining = 514
		}
		// The transfer writes 256 bytes into OAM starting at OAMADDR's
		// current value, wrapping modulo 256, not always at 0; the source
		// page is still read sequentially from offset 0.
		b.dmaSrcOffset = 0
		b.dmaIndex = int(b.ppu.OAMAddr())
	case addr == 0x4016:
		b.pads[0].Write(val)
		b.pads[1].Write(val)
	case addr == 0x4017 || addr <= 0x4013:
		b.apu.Write(addr, val)
	case addr >= 0x4020:
		b.mp.CPUWrite(addr, val)
	}
	b.Tick()
}

// runDMA performs the OAM DMA transfer queued by a write to $4014. It is
// invoked from StepInstruction before the CPU fetches its next opcode, so
// the transfer is atomic with respect to instruction boundaries, and the
// PPU/APU continue ticking throughout via the same Tick calls a normal
// instruction would drive.
func (b *Bus) runDMA() {
	base := uint16(b.dmaPage) << 8
	for b.dmaCyclesRemaining > 0 {
		// The leading dummy cycle(s) before the alternating read/write
		// pairs begin; a transfer that started on an odd CPU cycle (514
		// in total) has one extra here.
		if b.dmaCyclesRemaining > 512 {
			b.Tick()
			b.dmaCyclesRemaining--
			continue
		}
		cycleInPair := (512 - b.dmaCyclesRemaining) % 2
		if cycleInPair == 0 {
			v := b.Read(base + uint16(b.dmaSrcOffset))
			b.ppu.PokeOAM(b.dmaIndex, v)
		} else {
			b.Tick()
			b.dmaSrcOffset = (b.dmaSrcOffset + 1) & 0xFF
			b.dmaIndex = (b.dmaIndex + 1) & 0xFF
		}
		b.dmaCyclesRemaining--
	}
}

// StepInstruction executes one CPU instruction, first completing any
// pending OAM DMA transfer.
func (b *Bus) StepInstruction() {
	if b.dmaCyclesRemaining > 0 {
		b.runDMA()
	}
	b.CPU.Step(b)
}

// RunFrame steps the CPU until the PPU reports a completed frame.
func (b *Bus) RunFrame() {
	for !b.ppu.FrameComplete() {
		b.StepInstruction()
	}
}

// FrameBuffer exposes the PPU's finished frame, palette-indexed.
func (b *Bus) FrameBuffer() *[ppu.Width * ppu.Height]uint8 { return b.ppu.FrameBuffer() }

// FaultCount reports how many unknown opcodes the CPU has faulted on.
func (b *Bus) FaultCount() uint64 { return b.CPU.FaultCount() }
