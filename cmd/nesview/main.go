// Command nesview is the demo frontend for nescore: the sole importer of
// ebiten in this module. It parses flags, builds a System from an iNES
// ROM, and hands it to ebiten.RunGame, which drives the emulation loop
// from Update/Draw.
//
// The emulation loop itself does not run on a separate goroutine:
// RunFrame is synchronous and deterministic, so driving it once per
// ebiten.Game.Update call is both simpler and correct.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/gif"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"

	"github.com/bdwalton/nescore/cartridge"
	"github.com/bdwalton/nescore/inesfile"
	"github.com/bdwalton/nescore/ppu"
	"github.com/bdwalton/nescore/system"
)

var (
	romFile  = flag.String("nes_rom", "", "Path to an iNES ROM file to run.")
	headless = flag.Bool("headless", false, "Run without opening a window, for -gif capture or CI smoke tests.")
	gifOut   = flag.String("gif", "", "If set, write this many frames to a GIF at this path instead of (or in addition to) showing a window.")
	gifN     = flag.Int("gif_frames", 60, "Number of frames to capture when -gif is set.")
)

func main() {
	flag.Parse()

	var desc *cartridge.Descriptor
	var err error
	if *romFile != "" {
		desc, err = inesfile.Load(*romFile)
		if err != nil {
			log.Fatalf("loading ROM %q: %v", *romFile, err)
		}
	} else {
		desc = blankCartridge()
	}

	sys, err := system.New(desc)
	if err != nil {
		log.Fatalf("building system: %v", err)
	}
	sys.Reset()

	if *gifOut != "" {
		if err := captureGIF(sys, *gifOut, *gifN); err != nil {
			log.Fatalf("capturing GIF: %v", err)
		}
	}

	if *headless {
		return
	}

	g := &game{sys: sys}
	ebiten.SetWindowSize(ppu.Width*3, ppu.Height*3)
	ebiten.SetWindowTitle("nesview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	os.Exit(0)
}

// blankCartridge gives nesview something to run (and ebiten.RunGame
// something to draw) when invoked with no -nes_rom, e.g. for smoke tests.
func blankCartridge() *cartridge.Descriptor {
	return &cartridge.Descriptor{
		MapperNum: 0,
		PRG:       make([]uint8, 0x8000),
		Mirroring: cartridge.Horizontal,
	}
}

// game implements ebiten.Game. Buttons, as bits: {A, B, Select, Start,
// Up, Down, Left, Right}, matching the standard controller bit order.
type game struct {
	sys *system.System
}

var keymap = []struct {
	key    ebiten.Key
	button uint8
}{
	{ebiten.KeyA, system.ButtonA},
	{ebiten.KeyB, system.ButtonB},
	{ebiten.KeySpace, system.ButtonSelect},
	{ebiten.KeyEnter, system.ButtonStart},
	{ebiten.KeyUp, system.ButtonUp},
	{ebiten.KeyDown, system.ButtonDown},
	{ebiten.KeyLeft, system.ButtonLeft},
	{ebiten.KeyRight, system.ButtonRight},
}

func (g *game) Update() error {
	for _, k := range keymap {
		g.sys.SetButton(0, k.button, ebiten.IsKeyPressed(k.key))
	}
	g.sys.RunFrame()
	return nil
}

// native holds the emulator's current frame at its true 256x240
// resolution; it's reused every Draw call to avoid reallocating.
var native = image.NewRGBA(image.Rect(0, 0, ppu.Width, ppu.Height))

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.sys.FrameBuffer()
	for y := 0; y < ppu.Height; y++ {
		for x := 0; x < ppu.Width; x++ {
			c := ppu.HardwarePalette[fb[y*ppu.Width+x]&0x3F]
			native.SetRGBA(x, y, color.RGBA{c.R, c.G, c.B, 0xFF})
		}
	}
	// Scale with x/image/draw into the screen's bounds rather than through
	// ebiten's GeoM. -gif capture does not go through Draw: it writes the
	// native frame buffer at 256x240.
	bounds := screen.Bounds()
	scaled := image.NewRGBA(bounds)
	draw.NearestNeighbor.Scale(scaled, bounds, native, native.Bounds(), draw.Over, nil)
	screen.WritePixels(scaled.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.Width, ppu.Height
}

// captureGIF runs n frames headlessly and writes them to path, useful for
// CI smoke tests where no display surface is available.
func captureGIF(sys *system.System, path string, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pal := make(color.Palette, len(ppu.HardwarePalette))
	for i, c := range ppu.HardwarePalette {
		pal[i] = color.RGBA{c.R, c.G, c.B, 0xFF}
	}

	anim := &gif.GIF{}
	for i := 0; i < n; i++ {
		sys.RunFrame()
		fb := sys.FrameBuffer()
		img := image.NewPaletted(image.Rect(0, 0, ppu.Width, ppu.Height), pal)
		for y := 0; y < ppu.Height; y++ {
			for x := 0; x < ppu.Width; x++ {
				img.SetColorIndex(x, y, fb[y*ppu.Width+x]&0x3F)
			}
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, 2) // 2/100s per frame = 50fps, the nearest GIF delay to ~60fps
	}
	return gif.EncodeAll(f, anim)
}
