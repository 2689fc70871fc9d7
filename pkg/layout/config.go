package layout

// Config holds the layout constants. DefaultConfig is what the editor
// ships with; the values can be overridden from the user config file.
type Config struct {
	// Node sizing.
	MinWidth      float64 `yaml:"min_width"`
	MaxWidth      float64 `yaml:"max_width"`
	TextPadding   float64 `yaml:"text_padding"`
	BaseHeight    float64 `yaml:"base_height"`
	PerLineHeight float64 `yaml:"per_line_height"`
	MaxHeight     float64 `yaml:"max_height"`

	// Mindmap mode: primary-axis slotting.
	SlotSize   float64 `yaml:"slot_size"`
	SiblingSep float64 `yaml:"sibling_sep"`
	CousinSep  float64 `yaml:"cousin_sep"`
	RefHeight  float64 `yaml:"ref_height"`
	HGap       float64 `yaml:"h_gap"`

	// Tree mode.
	TreeGap    float64 `yaml:"tree_gap"`
	TreeIndent float64 `yaml:"tree_indent"`

	// Viewport padding used by pan-into-view.
	EdgePadding float64 `yaml:"edge_padding"`
}

// DefaultConfig returns the stock layout constants.
func DefaultConfig() Config {
	return Config{
		MinWidth:      60,
		MaxWidth:      300,
		TextPadding:   24,
		BaseHeight:    40,
		PerLineHeight: 18,
		MaxHeight:     200,
		SlotSize:      48,
		SiblingSep:    1.1,
		CousinSep:     1.25,
		RefHeight:     40,
		HGap:          64,
		TreeGap:       10,
		TreeIndent:    32,
		EdgePadding:   40,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
