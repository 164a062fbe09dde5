// Package generate projects a WDL world into engine-specific file sets.
// A Generator is a pure function from world to a relative-path → content
// mapping; persisting the mapping is a separate concern (internal/export).
//
// Three targets ship built in: Unity (C# scripting classes), Unreal
// (declarative Python data tables) and Horizon (TypeScript typed
// interfaces). They differ only in surface syntax: each exposes every
// entity, light and environment field of the world, and each emits a
// full-fidelity serialized dump for runtime loading. Output is
// deterministic for a given world.
package generate

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/omniworld-xyz/builder/pkg/cmath"
	"github.com/omniworld-xyz/builder/pkg/wdl"
)

// Generator turns a world into a set of target files. Generate must be pure:
// no filesystem access, no randomness, no wall-clock reads.
type Generator interface {
	PlatformName() string
	FileExtension() string
	Generate(world *wdl.World) (map[string]string, error)
}

// worldDataDump serializes the full world for the Data/ artifact every
// target carries.
func worldDataDump(world *wdl.World) (string, error) {
	data, err := world.Encode()
	if err != nil {
		return "", errors.WithMessage(err, "failed to serialize world data")
	}
	return string(data) + "\n", nil
}

// ff formats a float the same way in every target.
func ff(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ffOpt formats an optional float, with a target-supplied null literal.
func ffOpt(v *float64, null string) string {
	if v == nil {
		return null
	}
	return ff(*v)
}

func q(s string) string {
	return strconv.Quote(s)
}

func vecTuple(v cmath.Vec3) string {
	return "(" + ff(v.X) + ", " + ff(v.Y) + ", " + ff(v.Z) + ")"
}

func colorTuple(c cmath.Color) string {
	return "(" + ff(c.R) + ", " + ff(c.G) + ", " + ff(c.B) + ", " + ff(c.A) + ")"
}

// identifier strips a display name down to a code-safe identifier.
func identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	out := b.String()
	if out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

// identifiers maps names to code-safe identifiers, one per input. Names
// that collapse to the same identifier get the element index appended so
// generated symbols stay distinct.
func identifiers(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		id := identifier(name)
		for {
			if _, dup := seen[id]; !dup {
				break
			}
			id = id + "_" + strconv.Itoa(i)
		}
		seen[id] = struct{}{}
		out[i] = id
	}
	return out
}
