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

// Package curated is the error type used by all packages in the emulation.
// Curated errors are created with the Errorf() function. The pattern string
// given to Errorf() doubles as an identifier for the error, meaning that
// callers can test for a specific error with the Is() and Has() functions
// without resorting to string comparison of formatted messages.
//
// Sentinel patterns are declared close to the code that raises them. For
// example, the cartridge package declares the pattern it uses to indicate a
// bad ROM image, and the driver program tests for it with:
//
//	if curated.Is(err, cartridge.InvalidROM) {
//		...
//	}
//
// Error messages are normalised on formatting, removing duplicate adjacent
// message parts that accumulate as errors are wrapped up a call chain.
package curated
