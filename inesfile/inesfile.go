// Package inesfile loads an iNES (and NES 2.0-tolerant) ROM image into a
// cartridge.Descriptor: header validation, the "DiskDude!" mapper-number
// padding heuristic, and sequential PRG/CHR block reads.
package inesfile

import (
	"fmt"
	"io"
	"os"

	"github.com/bdwalton/nescore/cartridge"
)

const (
	headerSize    = 16
	trainerSize   = 512
	prgBlockSize  = 0x4000
	chrBlockSize  = 0x2000
	magic         = "NES\x1A"
	flagMirroring = 1 << 0
	flagBattery   = 1 << 1
	flagTrainer   = 1 << 2
	flagFourScr   = 1 << 3
)

// Load reads and parses a ROM file from disk.
func Load(path string) (*cartridge.Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inesfile: opening %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an iNES image from r and builds the Descriptor the mapper
// package expects.
func Parse(r io.Reader) (*cartridge.Descriptor, error) {
	header := make([]uint8, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("inesfile: reading header: %w", err)
	}
	if string(header[0:4]) != magic {
		return nil, fmt.Errorf("inesfile: bad magic %q, want %q", header[0:4], magic)
	}

	flags6 := header[6]
	flags7 := header[7]

	if flags6&flagTrainer != 0 {
		trainer := make([]uint8, trainerSize)
		if _, err := io.ReadFull(r, trainer); err != nil {
			return nil, fmt.Errorf("inesfile: reading trainer: %w", err)
		}
		// The 512-byte trainer maps to CPU $7000-$71FF on hardware
		// that has it; no supported mapper here relies on it, so it
		// is read (to stay positioned correctly in the stream) and
		// discarded.
	}

	prgSize := prgBlockSize * int(header[4])
	prg := make([]uint8, prgSize)
	if _, err := io.ReadFull(r, prg); err != nil {
		return nil, fmt.Errorf("inesfile: reading %d bytes of PRG-ROM: %w", prgSize, err)
	}

	chrSize := chrBlockSize * int(header[5])
	var chr []uint8
	if chrSize > 0 {
		chr = make([]uint8, chrSize)
		if _, err := io.ReadFull(r, chr); err != nil {
			return nil, fmt.Errorf("inesfile: reading %d bytes of CHR-ROM: %w", chrSize, err)
		}
	}

	return &cartridge.Descriptor{
		MapperNum: mapperNum(header, flags6, flags7),
		PRG:       prg,
		CHR:       chr,
		Mirroring: mirroring(flags6),
		Battery:   flags6&flagBattery != 0,
	}, nil
}

func mirroring(flags6 uint8) cartridge.Mirroring {
	if flags6&flagFourScr != 0 {
		return cartridge.FourScreen
	}
	if flags6&flagMirroring != 0 {
		return cartridge.Vertical
	}
	return cartridge.Horizontal
}

// mapperNum combines the low nibble from flags6 and the high nibble from
// flags7, applying the "DiskDude!" heuristic: old rippers sometimes
// stamped an ASCII signature across the header's padding bytes, which
// corrupts the mapper number's high nibble unless the image is NES 2.0
// (flags7 bits 2-3 == 0b10) or the padding really is all zero.
func mapperNum(header []uint8, flags6, flags7 uint8) uint16 {
	low := uint16(flags6&0xF0) >> 4
	isNES2 := flags7&0x0C == 0x08
	if isNES2 {
		return (uint16(flags7&0xF0) | low)
	}
	if !paddingIsZero(header) {
		return low
	}
	return uint16(flags7&0xF0) | low
}

func paddingIsZero(header []uint8) bool {
	for _, b := range header[12:16] {
		if b != 0 {
			return false
		}
	}
	return true
}
