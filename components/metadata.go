package components

// String returns the display name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// KindNames returns the display names for all kinds.
// The order matches the Kind constants.
func KindNames() []string {
	return []string{"cactus", "bird", "cloud"}
}

// String returns the sprite name for a Visual.
func (v Visual) String() string {
	names := VisualNames()
	if int(v) < len(names) {
		return names[v]
	}
	return "unknown"
}

// VisualNames returns the sprite names for all visuals.
// The order matches the Visual constants.
func VisualNames() []string {
	return []string{
		"cactus",
		"cactusDouble",
		"cactusDoubleB",
		"cactusTriple",
		"birdUp",
		"birdDown",
		"cloud",
	}
}

// Hazardous reports whether actors of this kind can kill an agent.
func (k Kind) Hazardous() bool {
	return k == KindCactus || k == KindBird
}
