package chart

import "hash/fnv"

// palette is the fixed set of segment colors. Colors are assigned by
// hashing an item's color key, so the same key always maps to the same
// color regardless of which other items are present.
var palette = []string{
	"#4e79a7", // blue
	"#f28e2b", // orange
	"#e15759", // red
	"#76b7b2", // teal
	"#59a14f", // green
	"#edc948", // yellow
	"#b07aa1", // purple
	"#ff9da7", // pink
	"#9c755f", // brown
	"#bab0ac", // gray
	"#86bcb6", // sea green
	"#d37295", // rose
}

// ColorFor returns the palette color for a color key. The mapping is a
// pure FNV-1a hash into the palette; there is no shared registry and no
// allocation state to coordinate.
func ColorFor(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return palette[h.Sum32()%uint32(len(palette))]
}

// PaletteSize reports the number of distinct colors available.
func PaletteSize() int { return len(palette) }
