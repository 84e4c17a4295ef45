package cpu

// addrMode enumerates the 6502 addressing modes.
type addrMode uint8

const (
	modeImplicit addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeRelative
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
)

type instrFunc func(c *CPU, bus Bus, mode addrMode)

type opcode struct {
	name   string
	mode   addrMode
	bytes  uint8
	cycles uint8
	fn     instrFunc
}

// opcodeTable is indexed directly by opcode byte: a plain dispatch table
// rather than a name-based reflection lookup, so execution cost and
// call sites are both static.
var opcodeTable [256]opcode

func def(op uint8, name string, mode addrMode, bytes, cycles uint8, fn instrFunc) {
	opcodeTable[op] = opcode{name: name, mode: mode, bytes: bytes, cycles: cycles, fn: fn}
}

func init() {
	def(0x69, "ADC", modeImmediate, 2, 2, opADC)
	def(0x65, "ADC", modeZeroPage, 2, 3, opADC)
	def(0x75, "ADC", modeZeroPageX, 2, 4, opADC)
	def(0x6D, "ADC", modeAbsolute, 3, 4, opADC)
	def(0x7D, "ADC", modeAbsoluteX, 3, 4, opADC)
	def(0x79, "ADC", modeAbsoluteY, 3, 4, opADC)
	def(0x61, "ADC", modeIndirectX, 2, 6, opADC)
	def(0x71, "ADC", modeIndirectY, 2, 5, opADC)

	def(0x29, "AND", modeImmediate, 2, 2, opAND)
	def(0x25, "AND", modeZeroPage, 2, 3, opAND)
	def(0x35, "AND", modeZeroPageX, 2, 4, opAND)
	def(0x2D, "AND", modeAbsolute, 3, 4, opAND)
	def(0x3D, "AND", modeAbsoluteX, 3, 4, opAND)
	def(0x39, "AND", modeAbsoluteY, 3, 4, opAND)
	def(0x21, "AND", modeIndirectX, 2, 6, opAND)
	def(0x31, "AND", modeIndirectY, 2, 5, opAND)

	def(0x0A, "ASL", modeAccumulator, 1, 2, opASL)
	def(0x06, "ASL", modeZeroPage, 2, 5, opASL)
	def(0x16, "ASL", modeZeroPageX, 2, 6, opASL)
	def(0x0E, "ASL", modeAbsolute, 3, 6, opASL)
	def(0x1E, "ASL", modeAbsoluteX, 3, 7, opASL)

	def(0x90, "BCC", modeRelative, 2, 2, opBCC)
	def(0xB0, "BCS", modeRelative, 2, 2, opBCS)
	def(0xF0, "BEQ", modeRelative, 2, 2, opBEQ)
	def(0x30, "BMI", modeRelative, 2, 2, opBMI)
	def(0xD0, "BNE", modeRelative, 2, 2, opBNE)
	def(0x10, "BPL", modeRelative, 2, 2, opBPL)
	def(0x50, "BVC", modeRelative, 2, 2, opBVC)
	def(0x70, "BVS", modeRelative, 2, 2, opBVS)

	def(0x24, "BIT", modeZeroPage, 2, 3, opBIT)
	def(0x2C, "BIT", modeAbsolute, 3, 4, opBIT)

	def(0x00, "BRK", modeImplicit, 1, 7, opBRK)

	def(0x18, "CLC", modeImplicit, 1, 2, flagClear(FlagCarry))
	def(0xD8, "CLD", modeImplicit, 1, 2, flagClear(FlagDecimal))
	def(0x58, "CLI", modeImplicit, 1, 2, flagClear(FlagInterruptDisable))
	def(0xB8, "CLV", modeImplicit, 1, 2, flagClear(FlagOverflow))
	def(0x38, "SEC", modeImplicit, 1, 2, flagSetOp(FlagCarry))
	def(0xF8, "SED", modeImplicit, 1, 2, flagSetOp(FlagDecimal))
	def(0x78, "SEI", modeImplicit, 1, 2, flagSetOp(FlagInterruptDisable))

	def(0xC9, "CMP", modeImmediate, 2, 2, opCMP)
	def(0xC5, "CMP", modeZeroPage, 2, 3, opCMP)
	def(0xD5, "CMP", modeZeroPageX, 2, 4, opCMP)
	def(0xCD, "CMP", modeAbsolute, 3, 4, opCMP)
	def(0xDD, "CMP", modeAbsoluteX, 3, 4, opCMP)
	def(0xD9, "CMP", modeAbsoluteY, 3, 4, opCMP)
	def(0xC1, "CMP", modeIndirectX, 2, 6, opCMP)
	def(0xD1, "CMP", modeIndirectY, 2, 5, opCMP)

	def(0xE0, "CPX", modeImmediate, 2, 2, opCPX)
	def(0xE4, "CPX", modeZeroPage, 2, 3, opCPX)
	def(0xEC, "CPX", modeAbsolute, 3, 4, opCPX)

	def(0xC0, "CPY", modeImmediate, 2, 2, opCPY)
	def(0xC4, "CPY", modeZeroPage, 2, 3, opCPY)
	def(0xCC, "CPY", modeAbsolute, 3, 4, opCPY)

	def(0xC6, "DEC", modeZeroPage, 2, 5, opDEC)
	def(0xD6, "DEC", modeZeroPageX, 2, 6, opDEC)
	def(0xCE, "DEC", modeAbsolute, 3, 6, opDEC)
	def(0xDE, "DEC", modeAbsoluteX, 3, 7, opDEC)

	def(0xCA, "DEX", modeImplicit, 1, 2, opDEX)
	def(0x88, "DEY", modeImplicit, 1, 2, opDEY)
	def(0xE8, "INX", modeImplicit, 1, 2, opINX)
	def(0xC8, "INY", modeImplicit, 1, 2, opINY)

	def(0x49, "EOR", modeImmediate, 2, 2, opEOR)
	def(0x45, "EOR", modeZeroPage, 2, 3, opEOR)
	def(0x55, "EOR", modeZeroPageX, 2, 4, opEOR)
	def(0x4D, "EOR", modeAbsolute, 3, 4, opEOR)
	def(0x5D, "EOR", modeAbsoluteX, 3, 4, opEOR)
	def(0x59, "EOR", modeAbsoluteY, 3, 4, opEOR)
	def(0x41, "EOR", modeIndirectX, 2, 6, opEOR)
	def(0x51, "EOR", modeIndirectY, 2, 5, opEOR)

	def(0xE6, "INC", modeZeroPage, 2, 5, opINC)
	def(0xF6, "INC", modeZeroPageX, 2, 6, opINC)
	def(0xEE, "INC", modeAbsolute, 3, 6, opINC)
	def(0xFE, "INC", modeAbsoluteX, 3, 7, opINC)

	def(0x4C, "JMP", modeAbsolute, 3, 3, opJMP)
	def(0x6C, "JMP", modeIndirect, 3, 5, opJMP)
	def(0x20, "JSR", modeAbsolute, 3, 6, opJSR)

	def(0xA9, "LDA", modeImmediate, 2, 2, opLDA)
	def(0xA5, "LDA", modeZeroPage, 2, 3, opLDA)
	def(0xB5, "LDA", modeZeroPageX, 2, 4, opLDA)
	def(0xAD, "LDA", modeAbsolute, 3, 4, opLDA)
	def(0xBD, "LDA", modeAbsoluteX, 3, 4, opLDA)
	def(0xB9, "LDA", modeAbsoluteY, 3, 4, opLDA)
	def(0xA1, "LDA", modeIndirectX, 2, 6, opLDA)
	def(0xB1, "LDA", modeIndirectY, 2, 5, opLDA)

	def(0xA2, "LDX", modeImmediate, 2, 2, opLDX)
	def(0xA6, "LDX", modeZeroPage, 2, 3, opLDX)
	def(0xB6, "LDX", modeZeroPageY, 2, 4, opLDX)
	def(0xAE, "LDX", modeAbsolute, 3, 4, opLDX)
	def(0xBE, "LDX", modeAbsoluteY, 3, 4, opLDX)

	def(0xA0, "LDY", modeImmediate, 2, 2, opLDY)
	def(0xA4, "LDY", modeZeroPage, 2, 3, opLDY)
	def(0xB4, "LDY", modeZeroPageX, 2, 4, opLDY)
	def(0xAC, "LDY", modeAbsolute, 3, 4, opLDY)
	def(0xBC, "LDY", modeAbsoluteX, 3, 4, opLDY)

	def(0x4A, "LSR", modeAccumulator, 1, 2, opLSR)
	def(0x46, "LSR", modeZeroPage, 2, 5, opLSR)
	def(0x56, "LSR", modeZeroPageX, 2, 6, opLSR)
	def(0x4E, "LSR", modeAbsolute, 3, 6, opLSR)
	def(0x5E, "LSR", modeAbsoluteX, 3, 7, opLSR)

	def(0xEA, "NOP", modeImplicit, 1, 2, opNOP)

	def(0x09, "ORA", modeImmediate, 2, 2, opORA)
	def(0x05, "ORA", modeZeroPage, 2, 3, opORA)
	def(0x15, "ORA", modeZeroPageX, 2, 4, opORA)
	def(0x0D, "ORA", modeAbsolute, 3, 4, opORA)
	def(0x1D, "ORA", modeAbsoluteX, 3, 4, opORA)
	def(0x19, "ORA", modeAbsoluteY, 3, 4, opORA)
	def(0x01, "ORA", modeIndirectX, 2, 6, opORA)
	def(0x11, "ORA", modeIndirectY, 2, 5, opORA)

	def(0x48, "PHA", modeImplicit, 1, 3, opPHA)
	def(0x08, "PHP", modeImplicit, 1, 3, opPHP)
	def(0x68, "PLA", modeImplicit, 1, 4, opPLA)
	def(0x28, "PLP", modeImplicit, 1, 4, opPLP)

	def(0x2A, "ROL", modeAccumulator, 1, 2, opROL)
	def(0x26, "ROL", modeZeroPage, 2, 5, opROL)
	def(0x36, "ROL", modeZeroPageX, 2, 6, opROL)
	def(0x2E, "ROL", modeAbsolute, 3, 6, opROL)
	def(0x3E, "ROL", modeAbsoluteX, 3, 7, opROL)

	def(0x6A, "ROR", modeAccumulator, 1, 2, opROR)
	def(0x66, "ROR", modeZeroPage, 2, 5, opROR)
	def(0x76, "ROR", modeZeroPageX, 2, 6, opROR)
	def(0x6E, "ROR", modeAbsolute, 3, 6, opROR)
	def(0x7E, "ROR", modeAbsoluteX, 3, 7, opROR)

	def(0x40, "RTI", modeImplicit, 1, 6, opRTI)
	def(0x60, "RTS", modeImplicit, 1, 6, opRTS)

	def(0xE9, "SBC", modeImmediate, 2, 2, opSBC)
	def(0xE5, "SBC", modeZeroPage, 2, 3, opSBC)
	def(0xF5, "SBC", modeZeroPageX, 2, 4, opSBC)
	def(0xED, "SBC", modeAbsolute, 3, 4, opSBC)
	def(0xFD, "SBC", modeAbsoluteX, 3, 4, opSBC)
	def(0xF9, "SBC", modeAbsoluteY, 3, 4, opSBC)
	def(0xE1, "SBC", modeIndirectX, 2, 6, opSBC)
	def(0xF1, "SBC", modeIndirectY, 2, 5, opSBC)

	def(0x85, "STA", modeZeroPage, 2, 3, opSTA)
	def(0x95, "STA", modeZeroPageX, 2, 4, opSTA)
	def(0x8D, "STA", modeAbsolute, 3, 4, opSTA)
	def(0x9D, "STA", modeAbsoluteX, 3, 5, opSTA)
	def(0x99, "STA", modeAbsoluteY, 3, 5, opSTA)
	def(0x81, "STA", modeIndirectX, 2, 6, opSTA)
	def(0x91, "STA", modeIndirectY, 2, 6, opSTA)

	def(0x86, "STX", modeZeroPage, 2, 3, opSTX)
	def(0x96, "STX", modeZeroPageY, 2, 4, opSTX)
	def(0x8E, "STX", modeAbsolute, 3, 4, opSTX)

	def(0x84, "STY", modeZeroPage, 2, 3, opSTY)
	def(0x94, "STY", modeZeroPageX, 2, 4, opSTY)
	def(0x8C, "STY", modeAbsolute, 3, 4, opSTY)

	def(0xAA, "TAX", modeImplicit, 1, 2, opTAX)
	def(0xA8, "TAY", modeImplicit, 1, 2, opTAY)
	def(0xBA, "TSX", modeImplicit, 1, 2, opTSX)
	def(0x8A, "TXA", modeImplicit, 1, 2, opTXA)
	def(0x9A, "TXS", modeImplicit, 1, 2, opTXS)
	def(0x98, "TYA", modeImplicit, 1, 2, opTYA)
}

// resolveAddr reads whatever operand bytes the mode needs and returns the
// effective address plus whether an indexed fetch crossed a page boundary.
// Immediate/accumulator/implicit/relative modes are handled by their
// callers directly.
func (c *CPU) resolveAddr(bus Bus, mode addrMode) (addr uint16, crossed bool) {
	switch mode {
	case modeZeroPage:
		addr = uint16(bus.Read(c.PC))
		c.PC++
	case modeZeroPageX:
		zp := bus.Read(c.PC)
		c.PC++
		bus.Tick()
		addr = uint16(zp + c.X)
	case modeZeroPageY:
		zp := bus.Read(c.PC)
		c.PC++
		bus.Tick()
		addr = uint16(zp + c.Y)
	case modeAbsolute:
		lo := uint16(bus.Read(c.PC))
		c.PC++
		hi := uint16(bus.Read(c.PC))
		c.PC++
		addr = hi<<8 | lo
	case modeAbsoluteX, modeAbsoluteY:
		lo := uint16(bus.Read(c.PC))
		c.PC++
		hi := uint16(bus.Read(c.PC))
		c.PC++
		base := hi<<8 | lo
		var idx uint16
		if mode == modeAbsoluteX {
			idx = uint16(c.X)
		} else {
			idx = uint16(c.Y)
		}
		addr = base + idx
		crossed = base&0xFF00 != addr&0xFF00
	case modeIndirect:
		ptrLo := uint16(bus.Read(c.PC))
		c.PC++
		ptrHi := uint16(bus.Read(c.PC))
		c.PC++
		ptr := ptrHi<<8 | ptrLo
		lo := uint16(bus.Read(ptr))
		// Reproduce the page-wrap bug: the high byte is fetched from
		// the same page as the low byte, not the next page.
		hi := uint16(bus.Read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF)))
		addr = hi<<8 | lo
	case modeIndirectX:
		zp := bus.Read(c.PC)
		c.PC++
		bus.Tick()
		ptr := zp + c.X
		lo := uint16(bus.Read(uint16(ptr)))
		hi := uint16(bus.Read(uint16(ptr + 1)))
		addr = hi<<8 | lo
	case modeIndirectY:
		zp := bus.Read(c.PC)
		c.PC++
		lo := uint16(bus.Read(uint16(zp)))
		hi := uint16(bus.Read(uint16(zp + 1)))
		base := hi<<8 | lo
		addr = base + uint16(c.Y)
		crossed = base&0xFF00 != addr&0xFF00
	}
	return addr, crossed
}

// readValue fetches an operand for read-category instructions (ADC, AND,
// CMP, loads, ...). Indexed modes pay a cycle only when the index crossed
// a page, matching the documented "+1 if page crossed" entries.
func (c *CPU) readValue(bus Bus, mode addrMode) uint8 {
	if mode == modeImmediate {
		v := bus.Read(c.PC)
		c.PC++
		return v
	}
	addr, crossed := c.resolveAddr(bus, mode)
	v := bus.Read(addr)
	if crossed {
		bus.Tick()
	}
	return v
}

// storeAddr resolves the address for write-category instructions (STA,
// STX, STY). Indexed absolute/indirect-Y modes always pay the fixup
// cycle, since stores take the fixed worst-case count regardless of
// whether the index actually crossed a page.
func (c *CPU) storeAddr(bus Bus, mode addrMode) uint16 {
	addr, _ := c.resolveAddr(bus, mode)
	if mode == modeAbsoluteX || mode == modeAbsoluteY || mode == modeIndirectY {
		bus.Tick()
	}
	return addr
}

// rmw implements the read-modify-write sequence shared by ASL/LSR/ROL/ROR
// /INC/DEC: the old value is written back unchanged before the new value
// is written, matching the two bus writes real read-modify-write
// instructions perform.
func (c *CPU) rmw(bus Bus, mode addrMode, f func(c *CPU, v uint8) uint8) {
	if mode == modeAccumulator {
		bus.Tick()
		c.A = f(c, c.A)
		return
	}
	addr, _ := c.resolveAddr(bus, mode)
	if mode == modeAbsoluteX {
		bus.Tick()
	}
	old := bus.Read(addr)
	bus.Write(addr, old)
	bus.Write(addr, f(c, old))
}

func (c *CPU) branch(bus Bus, taken bool) {
	offset := int8(bus.Read(c.PC))
	c.PC++
	if !taken {
		return
	}
	bus.Tick()
	oldPC := c.PC
	newPC := uint16(int32(c.PC) + int32(offset))
	c.PC = newPC
	if oldPC&0xFF00 != newPC&0xFF00 {
		bus.Tick()
	}
}

func (c *CPU) addWithCarry(v uint8) {
	carry := uint16(0)
	if c.flagSet(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^result)&(v^result)&0x80 != 0)
	c.A = result
	c.setZN(result)
}

func (c *CPU) compare(reg, v uint8) {
	c.setFlag(FlagCarry, reg >= v)
	c.setZN(reg - v)
}

func flagClear(mask uint8) instrFunc {
	return func(c *CPU, bus Bus, mode addrMode) {
		bus.Tick()
		c.setFlag(mask, false)
	}
}

func flagSetOp(mask uint8) instrFunc {
	return func(c *CPU, bus Bus, mode addrMode) {
		bus.Tick()
		c.setFlag(mask, true)
	}
}

func opADC(c *CPU, bus Bus, mode addrMode) { c.addWithCarry(c.readValue(bus, mode)) }
func opSBC(c *CPU, bus Bus, mode addrMode) { c.addWithCarry(c.readValue(bus, mode) ^ 0xFF) }

func opAND(c *CPU, bus Bus, mode addrMode) {
	c.A &= c.readValue(bus, mode)
	c.setZN(c.A)
}

func opORA(c *CPU, bus Bus, mode addrMode) {
	c.A |= c.readValue(bus, mode)
	c.setZN(c.A)
}

func opEOR(c *CPU, bus Bus, mode addrMode) {
	c.A ^= c.readValue(bus, mode)
	c.setZN(c.A)
}

func opASL(c *CPU, bus Bus, mode addrMode) {
	c.rmw(bus, mode, func(c *CPU, v uint8) uint8 {
		c.setFlag(FlagCarry, v&0x80 != 0)
		r := v << 1
		c.setZN(r)
		return r
	})
}

func opLSR(c *CPU, bus Bus, mode addrMode) {
	c.rmw(bus, mode, func(c *CPU, v uint8) uint8 {
		c.setFlag(FlagCarry, v&1 != 0)
		r := v >> 1
		c.setZN(r)
		return r
	})
}

func opROL(c *CPU, bus Bus, mode addrMode) {
	c.rmw(bus, mode, func(c *CPU, v uint8) uint8 {
		var carryIn uint8
		if c.flagSet(FlagCarry) {
			carryIn = 1
		}
		c.setFlag(FlagCarry, v&0x80 != 0)
		r := (v << 1) | carryIn
		c.setZN(r)
		return r
	})
}

func opROR(c *CPU, bus Bus, mode addrMode) {
	c.rmw(bus, mode, func(c *CPU, v uint8) uint8 {
		var carryIn uint8
		if c.flagSet(FlagCarry) {
			carryIn = 0x80
		}
		c.setFlag(FlagCarry, v&1 != 0)
		r := (v >> 1) | carryIn
		c.setZN(r)
		return r
	})
}

func opINC(c *CPU, bus Bus, mode addrMode) {
	c.rmw(bus, mode, func(c *CPU, v uint8) uint8 { r := v + 1; c.setZN(r); return r })
}

func opDEC(c *CPU, bus Bus, mode addrMode) {
	c.rmw(bus, mode, func(c *CPU, v uint8) uint8 { r := v - 1; c.setZN(r); return r })
}

func opBCC(c *CPU, bus Bus, mode addrMode) { c.branch(bus, !c.flagSet(FlagCarry)) }
func opBCS(c *CPU, bus Bus, mode addrMode) { c.branch(bus, c.flagSet(FlagCarry)) }
func opBEQ(c *CPU, bus Bus, mode addrMode) { c.branch(bus, c.flagSet(FlagZero)) }
func opBNE(c *CPU, bus Bus, mode addrMode) { c.branch(bus, !c.flagSet(FlagZero)) }
func opBMI(c *CPU, bus Bus, mode addrMode) { c.branch(bus, c.flagSet(FlagNegative)) }
func opBPL(c *CPU, bus Bus, mode addrMode) { c.branch(bus, !c.flagSet(FlagNegative)) }
func opBVC(c *CPU, bus Bus, mode addrMode) { c.branch(bus, !c.flagSet(FlagOverflow)) }
func opBVS(c *CPU, bus Bus, mode addrMode) { c.branch(bus, c.flagSet(FlagOverflow)) }

func opBIT(c *CPU, bus Bus, mode addrMode) {
	v := c.readValue(bus, mode)
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&0x40 != 0)
	c.setFlag(FlagNegative, v&0x80 != 0)
}

func opCMP(c *CPU, bus Bus, mode addrMode) { c.compare(c.A, c.readValue(bus, mode)) }
func opCPX(c *CPU, bus Bus, mode addrMode) { c.compare(c.X, c.readValue(bus, mode)) }
func opCPY(c *CPU, bus Bus, mode addrMode) { c.compare(c.Y, c.readValue(bus, mode)) }

func opDEX(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.X--; c.setZN(c.X) }
func opDEY(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.Y--; c.setZN(c.Y) }
func opINX(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.X++; c.setZN(c.X) }
func opINY(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.Y++; c.setZN(c.Y) }

func opLDA(c *CPU, bus Bus, mode addrMode) { c.A = c.readValue(bus, mode); c.setZN(c.A) }
func opLDX(c *CPU, bus Bus, mode addrMode) { c.X = c.readValue(bus, mode); c.setZN(c.X) }
func opLDY(c *CPU, bus Bus, mode addrMode) { c.Y = c.readValue(bus, mode); c.setZN(c.Y) }

func opSTA(c *CPU, bus Bus, mode addrMode) { bus.Write(c.storeAddr(bus, mode), c.A) }
func opSTX(c *CPU, bus Bus, mode addrMode) { bus.Write(c.storeAddr(bus, mode), c.X) }
func opSTY(c *CPU, bus Bus, mode addrMode) { bus.Write(c.storeAddr(bus, mode), c.Y) }

func opTAX(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.A = c.X; c.setZN(c.A) }
func opTYA(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.X = c.SP; c.setZN(c.X) }
func opTXS(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.SP = c.X }

func opPHA(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.push(bus, c.A) }
func opPHP(c *CPU, bus Bus, mode addrMode) { bus.Tick(); c.push(bus, c.P|FlagBreak|FlagUnused) }

func opPLA(c *CPU, bus Bus, mode addrMode) {
	bus.Tick()
	bus.Tick()
	c.A = c.pop(bus)
	c.setZN(c.A)
}

func opPLP(c *CPU, bus Bus, mode addrMode) {
	bus.Tick()
	bus.Tick()
	c.P = (c.pop(bus) &^ FlagBreak) | FlagUnused
}

func opJMP(c *CPU, bus Bus, mode addrMode) {
	addr, _ := c.resolveAddr(bus, mode)
	c.PC = addr
}

func opJSR(c *CPU, bus Bus, mode addrMode) {
	lo := bus.Read(c.PC)
	c.PC++
	bus.Tick()
	c.pushAddr(bus, c.PC)
	hi := bus.Read(c.PC)
	c.PC++
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func opRTS(c *CPU, bus Bus, mode addrMode) {
	bus.Tick()
	bus.Tick()
	addr := c.popAddr(bus)
	bus.Tick()
	c.PC = addr + 1
}

func opRTI(c *CPU, bus Bus, mode addrMode) {
	bus.Tick()
	bus.Tick()
	c.P = (c.pop(bus) &^ FlagBreak) | FlagUnused
	c.PC = c.popAddr(bus)
}

func opBRK(c *CPU, bus Bus, mode addrMode) {
	bus.Read(c.PC) // signature byte after the opcode, discarded
	c.PC++
	c.pushAddr(bus, c.PC)
	c.push(bus, c.P|FlagBreak|FlagUnused)
	c.setFlag(FlagInterruptDisable, true)
	c.PC = c.read16(bus, vectorBRK)
}

func opNOP(c *CPU, bus Bus, mode addrMode) { bus.Tick() }
