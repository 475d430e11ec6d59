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

// Package version records the version of the program.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Dotmatrix"

// number is set through the linker by the release build
var number string

// Version returns the version string and the vcs revision. The version
// string is "unreleased" for builds made outside the release process and
// "local" when there is no vcs information at all.
func Version() (string, string) {
	version := number
	revision := "no revision information"

	info, ok := debug.ReadBuildInfo()
	if ok {
		var vcs bool
		var modified bool

		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}

		if modified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
		if version == "" && vcs {
			version = "unreleased"
		}
	}

	if version == "" {
		version = "local"
	}

	return version, revision
}
