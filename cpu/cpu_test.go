package cpu

import "testing"

// flatBus is a 64KiB RAM double satisfying Bus: a small hand-rolled
// test double rather than a generated mock.
type flatBus struct {
	mem   [65536]uint8
	ticks int
}

func (b *flatBus) Read(addr uint16) uint8       { b.ticks++; return b.mem[addr] }
func (b *flatBus) Write(addr uint16, val uint8) { b.ticks++; b.mem[addr] = val }
func (b *flatBus) Tick()                        { b.ticks++ }
func (b *flatBus) Peek(addr uint16) uint8       { return b.mem[addr] }

func newTestCPU(program []uint8) (*CPU, *flatBus) {
	b := &flatBus{}
	copy(b.mem[0x8000:], program)
	b.mem[0xFFFC] = 0x00
	b.mem[0xFFFD] = 0x80
	return New(b), b
}

func TestResetVector(t *testing.T) {
	c, _ := newTestCPU([]uint8{0xEA})
	if c.PC != 0x8000 {
		t.Errorf("PC after reset = %#x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after reset = %#x, want 0xFD", c.SP)
	}
	if c.P&FlagInterruptDisable == 0 {
		t.Errorf("interrupt-disable not set after reset")
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, b := newTestCPU([]uint8{0xA9, 0x00, 0xA9, 0x80, 0xA9, 0x7F})
	c.Step(b)
	if c.A != 0 || c.P&FlagZero == 0 {
		t.Errorf("LDA #0: A=%#x P=%08b, want A=0 with Zero set", c.A, c.P)
	}
	c.Step(b)
	if c.A != 0x80 || c.P&FlagNegative == 0 {
		t.Errorf("LDA #$80: A=%#x P=%08b, want Negative set", c.A, c.P)
	}
	c.Step(b)
	if c.P&FlagZero != 0 || c.P&FlagNegative != 0 {
		t.Errorf("LDA #$7F: P=%08b, want Zero and Negative both clear", c.P)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, b := newTestCPU([]uint8{0xA9, 0x7F, 0x69, 0x01})
	c.Step(b) // LDA #$7F
	c.Step(b) // ADC #$01 -> 0x80, signed overflow
	if c.A != 0x80 {
		t.Fatalf("A = %#x, want 0x80", c.A)
	}
	if c.P&FlagOverflow == 0 {
		t.Errorf("overflow flag not set for 0x7F+0x01")
	}
	if c.P&FlagCarry != 0 {
		t.Errorf("carry flag unexpectedly set for 0x7F+0x01")
	}
}

func TestAbsoluteXCyclesWithAndWithoutPageCross(t *testing.T) {
	// LDA $20FF,X with X=1 crosses a page; with X=0 it does not.
	c, b := newTestCPU([]uint8{0xBD, 0xFF, 0x20})
	c.X = 1
	b.ticks = 0
	c.Step(b)
	crossedTicks := b.ticks

	c2, b2 := newTestCPU([]uint8{0xBD, 0xFF, 0x20})
	c2.X = 0
	b2.ticks = 0
	c2.Step(b2)
	noCrossTicks := b2.ticks

	if crossedTicks != noCrossTicks+1 {
		t.Errorf("page-crossing LDA absolute,X took %d ticks, non-crossing took %d; want exactly 1 more", crossedTicks, noCrossTicks)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, b := newTestCPU([]uint8{0x20, 0x05, 0x80, 0xEA, 0xEA, 0x60})
	c.Step(b) // JSR $8005
	if c.PC != 0x8005 {
		t.Fatalf("PC after JSR = %#x, want 0x8005", c.PC)
	}
	c.Step(b) // RTS
	if c.PC != 0x8003 {
		t.Errorf("PC after RTS = %#x, want 0x8003 (the instruction after JSR)", c.PC)
	}
}

func TestBranchTakenCrossesPageAddsCycle(t *testing.T) {
	c, b := newTestCPU([]uint8{0xF0, 0x80}) // BEQ -128, crosses from $8002 to $7F82
	c.P |= FlagZero
	b.ticks = 0
	c.Step(b)
	if b.ticks != 4 {
		t.Errorf("taken branch crossing a page took %d ticks, want 4 (2 base + taken + page-cross)", b.ticks)
	}
}

func TestUnknownOpcodeFaultsInsteadOfHalting(t *testing.T) {
	c, b := newTestCPU([]uint8{0x02}) // not a defined opcode
	pcBefore := c.PC
	c.Step(b)
	if c.FaultCount() != 1 {
		t.Errorf("FaultCount() = %d, want 1", c.FaultCount())
	}
	if c.PC != pcBefore+1 {
		t.Errorf("PC after faulting opcode = %#x, want %#x", c.PC, pcBefore+1)
	}
}

func TestNMIPushesStatusWithoutBreak(t *testing.T) {
	b := &flatBus{}
	b.mem[0xFFFC], b.mem[0xFFFD] = 0x00, 0x80
	b.mem[0xFFFA], b.mem[0xFFFB] = 0x00, 0x90
	b.mem[0x8000] = 0xEA
	c := New(b)
	c.RequestNMI()
	c.Step(b)
	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI = %#x, want 0x9000", c.PC)
	}
	pushedFlags := b.mem[stackPage|uint16(c.SP+1)]
	if pushedFlags&FlagBreak != 0 {
		t.Errorf("pushed status has Break set on an NMI, want clear")
	}
}

func TestTraceHookInvokedBeforeDispatch(t *testing.T) {
	c, b := newTestCPU([]uint8{0xA9, 0x42})
	var got Snapshot
	calls := 0
	c.Trace = func(s Snapshot) { got = s; calls++ }
	c.Step(b)
	if calls != 1 {
		t.Fatalf("trace hook called %d times, want 1", calls)
	}
	if got.Opcode != 0xA9 || got.Operand[0] != 0x42 {
		t.Errorf("trace snapshot = %+v, want opcode 0xA9 operand 0x42\n%s", got, c.Dump())
	}
}

func TestTraceHookDoesNotPerturbCycleCount(t *testing.T) {
	// LDA absolute,X with a page cross: two separate CPUs running the
	// same program should take the same number of bus ticks whether or
	// not a Trace hook is attached, since the hook must peek its operand
	// bytes rather than reading them.
	c1, b1 := newTestCPU([]uint8{0xBD, 0xFF, 0x20})
	c1.X = 1
	b1.ticks = 0
	c1.Step(b1)

	c2, b2 := newTestCPU([]uint8{0xBD, 0xFF, 0x20})
	c2.X = 1
	c2.Trace = func(Snapshot) {}
	b2.ticks = 0
	c2.Step(b2)

	if b1.ticks != b2.ticks {
		t.Errorf("ticks with Trace set = %d, without = %d; want equal", b2.ticks, b1.ticks)
	}
}
