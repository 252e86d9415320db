package neonpack

import "strings"

// BlendMode selects how the color overlay is combined with a texture.
type BlendMode int

// The zero BlendMode is not valid.
const (
	Screen BlendMode = iota + 1
	Overlay
	Multiply
	Normal
)

var blendModeNames = map[BlendMode]string{
	Screen:   "screen",
	Overlay:  "overlay",
	Multiply: "multiply",
	Normal:   "normal",
}

// BlendModes returns every blend mode in declared order.
func BlendModes() []BlendMode {
	return []BlendMode{Screen, Overlay, Multiply, Normal}
}

func (m BlendMode) String() string {
	if s, ok := blendModeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Valid reports whether m is one of the declared blend modes.
func (m BlendMode) Valid() bool {
	_, ok := blendModeNames[m]
	return ok
}

// ParseBlendMode returns the blend mode with the given name, ignoring case.
// Unknown names are rejected rather than treated as Normal.
func ParseBlendMode(s string) (BlendMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range BlendModes() {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, invalidf("unknown blend mode %q, must be one of: screen, overlay, multiply, normal", s)
}
