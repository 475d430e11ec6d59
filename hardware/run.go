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

package hardware

// Run sets the machine running until continueCheck says otherwise.
// continueCheck is called after every instruction.
func (dmg *DMG) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	cont := true
	for cont {
		if err := dmg.Step(); err != nil {
			return err
		}

		var err error
		cont, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount sets the machine running for the specified number of
// frames. Useful for fps measurement and fingerprint tests.
func (dmg *DMG) RunForFrameCount(numFrames int) error {
	targetFrame := dmg.PPU.FrameNum() + numFrames

	for dmg.PPU.FrameNum() < targetFrame {
		if err := dmg.Step(); err != nil {
			return err
		}
	}

	return nil
}
