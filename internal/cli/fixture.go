package cli

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/automationexercise/shopcheck/internal/fixtures"
)

// Fixture kinds accepted by WriteFixture
const (
	FixtureFull    = "full"
	FixtureMinimal = "minimal"
	FixtureInvalid = "invalid"
)

// WriteFixture writes one generated fixture of kind to w as indented JSON
func WriteFixture(w io.Writer, kind string, gen *fixtures.Generator) error {
	var v any
	switch kind {
	case FixtureFull:
		v = gen.User()
	case FixtureMinimal:
		v = gen.Minimal()
	case FixtureInvalid:
		v = gen.Invalid()
	default:
		return fmt.Errorf("unknown fixture kind %q: want %s, %s or %s", kind, FixtureFull, FixtureMinimal, FixtureInvalid)
	}

	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
