package components

import "github.com/pthm-cable/dinoevo/config"

// Body is an actor's collision footprint.
type Body struct {
	W, H float64
}

// BodyFromSprite returns the footprint of a configured sprite.
func BodyFromSprite(s config.SpriteSize) Body {
	return Body{W: s.W, H: s.H}
}

// BodyFor returns the footprint of an obstacle visual.
func BodyFor(sprites *config.SpritesConfig, v Visual) Body {
	switch v {
	case VisualCactus:
		return BodyFromSprite(sprites.Cactus)
	case VisualCactusDouble:
		return BodyFromSprite(sprites.CactusDouble)
	case VisualCactusDoubleB:
		return BodyFromSprite(sprites.CactusDoubleB)
	case VisualCactusTriple:
		return BodyFromSprite(sprites.CactusTriple)
	case VisualBirdWingsUp, VisualBirdWingsDown:
		return BodyFromSprite(sprites.Bird)
	case VisualCloud:
		return BodyFromSprite(sprites.Cloud)
	}
	return Body{}
}
