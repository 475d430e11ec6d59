// This file is part of Dotmatrix.
//
// Dotmatrix is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dotmatrix is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dotmatrix.  If not, see <https://www.gnu.org/licenses/>.

// Package sdldisplay shows emulator output in an SDL window. Window
// creation and event servicing must happen on the main thread; frames
// arrive from the emulation goroutine through the display.Renderer
// interface.
package sdldisplay

import (
	"io"
	"sync/atomic"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/sevenholm/dotmatrix/curated"
	"github.com/sevenholm/dotmatrix/display"
	"github.com/sevenholm/dotmatrix/hardware/peripherals"
	"github.com/sevenholm/dotmatrix/performance"
	"github.com/sevenholm/dotmatrix/performance/limiter"
)

// SDLError is the error pattern for all errors in this package.
const SDLError = "sdl: %v"

const pixelDepth = 4

// the four shades of the original panel, lightest first
var shades = [display.NumShades][3]uint8{
	{0xff, 0xff, 0xff},
	{0xa9, 0xa9, 0xa9},
	{0x54, 0x54, 0x54},
	{0x00, 0x00, 0x00},
}

// SdlDisplay is a display.Renderer showing frames in an SDL window. It also
// translates host keyboard input into joypad button changes.
type SdlDisplay struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// pixels is copied to the texture every NewFrame()
	pixels []byte

	joypad *peripherals.Joypad

	lmtr   *limiter.FpsLimiter
	fpsCap bool

	// written by the main thread, read by the emulation goroutine
	quit int32
}

// NewSdlDisplay is the preferred method of initialisation for the
// SdlDisplay type.
//
// MUST ONLY be called from the main thread.
func NewSdlDisplay(title string, scale float64, joypad *peripherals.Joypad, fpsCap bool) (*SdlDisplay, error) {
	scr := &SdlDisplay{
		joypad: joypad,
		fpsCap: fpsCap,
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	var err error

	scr.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float64(display.Width)*scale), int32(float64(display.Height)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	// texture is the size of the emulated screen. the renderer scales it to
	// the window
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), display.Width, display.Height)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	scr.pixels = make([]byte, display.Width*display.Height*pixelDepth)

	// preset alpha channel, the only channel that never changes
	for i := pixelDepth - 1; i < len(scr.pixels); i += pixelDepth {
		scr.pixels[i] = 255
	}

	scr.lmtr = limiter.NewFPSLimiter(performance.FramesPerSecond)

	return scr, nil
}

// NewFrame implements the display.Renderer interface.
//
// Called from the emulation goroutine.
func (scr *SdlDisplay) NewFrame(_ int, frame *display.Frame) error {
	if scr.fpsCap {
		scr.lmtr.Wait()
	}

	i := 0
	for y := 0; y < display.Height; y++ {
		for x := 0; x < display.Width; x++ {
			c := shades[frame[y][x]&0x03]
			scr.pixels[i] = c[0]
			scr.pixels[i+1] = c[1]
			scr.pixels[i+2] = c[2]
			i += pixelDepth
		}
	}

	if err := scr.texture.Update(nil, scr.pixels, display.Width*pixelDepth); err != nil {
		return curated.Errorf(SDLError, err)
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return curated.Errorf(SDLError, err)
	}
	scr.renderer.Present()

	return nil
}

// Quit reports whether the user has asked for the window to close.
//
// Safe to call from any goroutine.
func (scr *SdlDisplay) Quit() bool {
	return atomic.LoadInt32(&scr.quit) == 1
}

// Service the SDL event queue, translating keyboard events into joypad
// changes.
//
// MUST ONLY be called from the main thread. It should be called often
// enough that input stays responsive; once per emulated frame is fine.
func (scr *SdlDisplay) Service() {
	empty := false
	for !empty {
		// timing out straight away if there is nothing queued
		ev := sdl.WaitEventTimeout(1)

		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			atomic.StoreInt32(&scr.quit, 1)

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				break
			}
			scr.serviceKeyboard(ev)

		case nil:
			// WaitEventTimeout has timed out, the queue is empty
			empty = true
		}
	}
}

func (scr *SdlDisplay) serviceKeyboard(ev *sdl.KeyboardEvent) {
	if scr.joypad == nil {
		return
	}

	var button peripherals.Button

	switch ev.Keysym.Sym {
	case sdl.K_UP:
		button = peripherals.ButtonUp
	case sdl.K_DOWN:
		button = peripherals.ButtonDown
	case sdl.K_LEFT:
		button = peripherals.ButtonLeft
	case sdl.K_RIGHT:
		button = peripherals.ButtonRight
	case sdl.K_z:
		button = peripherals.ButtonB
	case sdl.K_x:
		button = peripherals.ButtonA
	case sdl.K_RETURN:
		button = peripherals.ButtonStart
	case sdl.K_BACKSPACE:
		button = peripherals.ButtonSelect
	case sdl.K_ESCAPE:
		if ev.Type == sdl.KEYDOWN {
			atomic.StoreInt32(&scr.quit, 1)
		}
		return
	default:
		return
	}

	scr.joypad.SetButton(button, ev.Type == sdl.KEYDOWN)
}

// Destroy cleans up the SDL resources.
//
// MUST ONLY be called from the main thread.
func (scr *SdlDisplay) Destroy(output io.Writer) {
	if err := scr.texture.Destroy(); err != nil {
		io.WriteString(output, err.Error())
	}
	if err := scr.renderer.Destroy(); err != nil {
		io.WriteString(output, err.Error())
	}
	if err := scr.window.Destroy(); err != nil {
		io.WriteString(output, err.Error())
	}
}
