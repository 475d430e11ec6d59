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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sevenholm/dotmatrix/curated"
	"github.com/sevenholm/dotmatrix/disassembly"
	"github.com/sevenholm/dotmatrix/display/sdldisplay"
	"github.com/sevenholm/dotmatrix/hardware"
	"github.com/sevenholm/dotmatrix/hardware/memory/addresses"
	"github.com/sevenholm/dotmatrix/logger"
	"github.com/sevenholm/dotmatrix/modalflag"
	"github.com/sevenholm/dotmatrix/performance"
	"github.com/sevenholm/dotmatrix/statsview"
	"github.com/sevenholm/dotmatrix/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible. takes an optional int
	// argument indicating the status code
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to run on the main thread.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() is called repeatedly from the main thread. it must service
	// everything that is not safe to do in sub-threads and return without
	// lingering
	Service()
}

// communication between main() and launch(). window event handling
// (including creation) must occur on the main thread, so main() stays in a
// service loop while the program logic runs in the launch() goroutine.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator is returned on one of these channels
	creation      chan GuiCreator
	creationError chan error
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with a reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync)

	done := false
	var gui GuiCreator
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			if gui != nil {
				gui.Destroy(os.Stderr)
				gui = nil
			}

			g, err := creator()
			if err != nil {
				sync.creationError <- err
			} else {
				gui = g
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					}
				}
			}

		default:
			if gui != nil {
				gui.Service()
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. it communicates back through
// the mainSync instance for gui creation and to quit.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DISASM", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "RUN":
		err = play(md, sync)

	case "DISASM":
		err = disasm(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		v, rev := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, v, rev)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// loadROM reads the single cartridge file named in the remaining arguments.
func loadROM(md *modalflag.Modes) ([]byte, error) {
	if len(md.RemainingArgs()) != 1 {
		return nil, fmt.Errorf("cartridge file required for %s mode", md)
	}
	return os.ReadFile(md.GetArg(0))
}

func play(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	scale := md.AddFloat64("scale", 3.0, "window scale")
	bios := md.AddString("bios", "", "boot ROM image to run before the cartridge")
	fpsCap := md.AddBool("fpscap", true, "cap refresh rate to that of the real machine")
	serial := md.AddBool("serial", false, "echo serial output to stdout")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	rom, err := loadROM(md)
	if err != nil {
		return err
	}

	dmg := hardware.NewDMG()

	if *bios != "" {
		img, err := os.ReadFile(*bios)
		if err != nil {
			return err
		}
		if len(img) != addresses.BootROMSize {
			return curated.Errorf("boot ROM must be %d bytes", addresses.BootROMSize)
		}
		dmg.MountBootROM(img)
	}

	if *serial {
		dmg.AttachSerial(os.Stdout)
	}

	if err := dmg.AttachCartridge(rom); err != nil {
		return err
	}

	// the window must be created on the main thread
	sync.creator <- func() (GuiCreator, error) {
		return sdldisplay.NewSdlDisplay(version.ApplicationName, *scale, dmg.Joypad, *fpsCap)
	}

	var scr *sdldisplay.SdlDisplay
	select {
	case g := <-sync.creation:
		scr = g.(*sdldisplay.SdlDisplay)
	case err := <-sync.creationError:
		return err
	}

	dmg.PPU.AddRenderer(scr)

	return dmg.Run(func() (bool, error) {
		return !scr.Quit(), nil
	})
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	rom, err := loadROM(md)
	if err != nil {
		return err
	}

	return disassembly.FromCartridge(rom).Write(os.Stdout)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddBool("profile", false, "write cpu and memory profiles")
	stats := md.AddBool("statsview", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return curated.Errorf("statsview is not available in this build")
		}
		statsview.Launch(os.Stdout)
	}

	rom, err := loadROM(md)
	if err != nil {
		return err
	}

	return performance.Check(os.Stdout, *profile, rom, *duration)
}
