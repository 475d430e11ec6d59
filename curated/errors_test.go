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

package curated_test

import (
	"errors"
	"testing"

	"github.com/sevenholm/dotmatrix/curated"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")

	if !curated.IsAny(e) {
		t.Errorf("expected error to be a curated error")
	}

	if !curated.Is(e, testError) {
		t.Errorf("expected error to match the pattern it was created with")
	}

	if curated.Is(e, testErrorB) {
		t.Errorf("error matched a pattern it was not created with")
	}

	// plain errors should never match
	p := errors.New("plain error")
	if curated.IsAny(p) || curated.Is(p, testError) {
		t.Errorf("plain error matched as a curated error")
	}

	if curated.IsAny(nil) || curated.Is(nil, testError) {
		t.Errorf("nil error matched as a curated error")
	}
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	w := curated.Errorf(testErrorB, e)

	if !curated.Has(w, testErrorB) {
		t.Errorf("expected wrapping error to match its own pattern")
	}

	if !curated.Has(w, testError) {
		t.Errorf("expected wrapping error to match the wrapped pattern")
	}

	if curated.Is(w, testError) {
		t.Errorf("Is() should not look into the error chain")
	}
}

func TestDeduplication(t *testing.T) {
	// an error wrapped in an error with the same pattern should only mention
	// the pattern once when formatted
	e := curated.Errorf("segment: %v", curated.Errorf("segment: %v", "foo"))
	if e.Error() != "segment: foo" {
		t.Errorf("duplicate message parts not normalised: %s", e.Error())
	}
}
