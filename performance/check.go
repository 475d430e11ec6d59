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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/sevenholm/dotmatrix/curated"
	"github.com/sevenholm/dotmatrix/digest"
	"github.com/sevenholm/dotmatrix/hardware"
)

// Check is a rough and ready measurement of emulator performance. The
// machine runs headless, full tilt, for the supplied duration; frames are
// still rendered into a fingerprint so the video path is part of what is
// measured.
func Check(output io.Writer, profile bool, romData []byte, runTime string) error {
	duration, err := time.ParseDuration(runTime)
	if err != nil {
		return curated.Errorf(ProfilingError, err)
	}

	dmg := hardware.NewDMG()
	dmg.PPU.AddRenderer(digest.NewVideo())

	if err := dmg.AttachCartridge(romData); err != nil {
		return curated.Errorf(ProfilingError, err)
	}

	startFrame := dmg.PPU.FrameNum()

	err = CPUProfile(profile, "cpu.profile", func() error {
		timesUp := make(chan bool)
		time.AfterFunc(duration, func() {
			timesUp <- true
		})

		return dmg.Run(func() (bool, error) {
			select {
			case <-timesUp:
				return false, nil
			default:
				return true, nil
			}
		})
	})
	if err != nil {
		return curated.Errorf(ProfilingError, err)
	}

	numFrames := dmg.PPU.FrameNum() - startFrame
	fps, accuracy := CalcFPS(numFrames, duration.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n",
		fps, numFrames, duration.Seconds(), accuracy)

	return MemProfile(profile, "mem.profile")
}
