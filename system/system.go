// Package system assembles a Bus from a cartridge descriptor and exposes
// the handful of operations a frontend needs, so cmd/nesview and tests
// share one construction path instead of repeating the mapper/bus
// wiring by hand.
package system

import (
	"github.com/bdwalton/nescore/bus"
	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/controller"
	"github.com/bdwalton/nescore/mapper"
)

// System is the top-level composite: a cartridge plugged into a bus,
// with the CPU/PPU/APU/mapper wiring already done.
type System struct {
	bus *bus.Bus
}

// New builds a mapper from desc and wires a fresh Bus around it.
func New(desc *cartridge.Descriptor) (*System, error) {
	m, err := mapper.New(desc)
	if err != nil {
		return nil, err
	}
	return &System{bus: bus.New(m)}, nil
}

// Reset resets the machine as bus.Bus.Reset does: work RAM, mapper, PPU,
// and the CPU's registers.
func (s *System) Reset() { s.bus.Reset() }

// StepInstruction executes exactly one CPU instruction.
func (s *System) StepInstruction() { s.bus.StepInstruction() }

// RunFrame steps the CPU until the PPU completes a frame.
func (s *System) RunFrame() { s.bus.RunFrame() }

// FrameBuffer returns the most recently completed frame, palette-indexed.
func (s *System) FrameBuffer() *[256 * 240]uint8 { return s.bus.FrameBuffer() }

// SetButton updates one button on one of the two controller ports.
func (s *System) SetButton(pad int, button uint8, pressed bool) {
	s.bus.SetButton(pad, button, pressed)
}

// FaultCount reports how many unknown opcodes the CPU has hit so far.
func (s *System) FaultCount() uint64 { return s.bus.FaultCount() }

// Controller button masks, re-exported so callers don't need to import
// the controller package just to drive SetButton.
const (
	ButtonA      = controller.ButtonA
	ButtonB      = controller.ButtonB
	ButtonSelect = controller.ButtonSelect
	ButtonStart  = controller.ButtonStart
	ButtonUp     = controller.ButtonUp
	ButtonDown   = controller.ButtonDown
	ButtonLeft   = controller.ButtonLeft
	ButtonRight  = controller.ButtonRight
)
