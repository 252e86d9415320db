package neonpack

import (
	"hash/crc32"
	"math/rand/v2"
	"strings"
)

// Ordering selects how the rows of a color grid are ordered.
type Ordering int

const (
	// OrderRandom shuffles the colors afresh on every call.
	OrderRandom Ordering = iota
	// OrderGrouped shuffles the colors with a seed derived from the
	// texture's block group so that related textures share a sequence.
	OrderGrouped
	// OrderFixed keeps the declared color table order.
	OrderFixed
)

var orderingNames = [...]string{
	OrderRandom:  "random",
	OrderGrouped: "grouped",
	OrderFixed:   "fixed",
}

func (o Ordering) String() string {
	if o < 0 || int(o) >= len(orderingNames) {
		return "unknown"
	}
	return orderingNames[o]
}

// Deterministic reports whether two calls with the same texture name yield
// the same order.
func (o Ordering) Deterministic() bool {
	return o != OrderRandom
}

// ParseOrdering returns the ordering with the given name.
func ParseOrdering(s string) (Ordering, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range orderingNames {
		if n == s {
			return Ordering(i), nil
		}
	}
	return 0, invalidf("unknown ordering %q, must be one of: random, grouped, fixed", s)
}

// blockGroups are texture name prefixes whose variants should share a color
// sequence, e.g. log_oak and log_birch.
var blockGroups = map[string]struct{}{
	"carrots":    {},
	"dirt":       {},
	"door":       {},
	"flower":     {},
	"glass":      {},
	"grass":      {},
	"hardened":   {},
	"ice":        {},
	"leaves":     {},
	"log":        {},
	"melon":      {},
	"mushroom":   {},
	"planks":     {},
	"potatoes":   {},
	"prismarine": {},
	"pumpkin":    {},
	"quartz":     {},
	"rail":       {},
	"redstone":   {},
	"sandstone":  {},
	"sapling":    {},
	"stone":      {},
	"stonebrick": {},
	"wheat":      {},
	"wool":       {},
}

// GroupKey returns the key used to seed OrderGrouped for a texture name.
// Only the first underscore-delimited token is considered, so unrelated
// textures that share it (stone_slab_top and stone_andesite, say) land in
// the same group.
func GroupKey(name string) string {
	name = strings.ToLower(name)
	token := name
	if i := strings.IndexByte(name, '_'); i >= 0 {
		token = name[:i]
	}
	if _, ok := blockGroups[token]; ok {
		return token
	}
	return name
}

func groupSeed(key string) uint64 {
	return uint64(crc32.ChecksumIEEE([]byte(key)))
}

// ColorOrder returns the neon colors ordered for the named texture. Grouped
// ordering uses its own generator so no shared random state is consumed.
func ColorOrder(name string, o Ordering) []NamedColor {
	colors := Colors()
	var r *rand.Rand
	switch o {
	case OrderGrouped:
		seed := groupSeed(GroupKey(name))
		r = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	case OrderRandom:
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	default:
		return colors
	}
	r.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return colors
}
