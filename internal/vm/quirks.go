package vm

// Quirks selects between historically divergent instruction behaviors.
type Quirks struct {
	ShiftUsesVY    bool // 8XY6/8XYE use VY as shift source
	IndexIncrement bool // FX55/FX65 increment I by X+1
	LogicResetsVF  bool // 8XY1/8XY2/8XY3 reset VF to 0
}

// Quirk presets.
var (
	// QuirksCOSMAC matches the original COSMAC VIP interpreter.
	QuirksCOSMAC = Quirks{
		ShiftUsesVY:    true,
		IndexIncrement: true,
		LogicResetsVF:  true,
	}

	// QuirksModern matches CHIP-48 and SUPER-CHIP derived interpreters.
	QuirksModern = Quirks{}
)
