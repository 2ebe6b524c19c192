package hearts

const (
	// Slots is the fixed number of icon positions in a health strip.
	Slots = 10
	// FullHealth is the health value that fills every base slot.
	FullHealth = 20
)

// Icon is the tile drawn in one slot.
type Icon int

const (
	IconEmpty Icon = iota
	IconHalf
	IconFull
	IconBonusHalf
	IconBonusFull
)

func (i Icon) String() string {
	switch i {
	case IconEmpty:
		return "empty"
	case IconHalf:
		return "half"
	case IconFull:
		return "full"
	case IconBonusHalf:
		return "bonus_half"
	case IconBonusFull:
		return "bonus_full"
	default:
		return "unknown"
	}
}

// Layout counts the icons a health value maps to. Bonus counts are not
// clamped; Strip drops anything past the last slot.
type Layout struct {
	Full      int
	Half      int
	Empty     int
	BonusFull int
	BonusHalf int
}

// LayoutFor maps health onto base and bonus icon counts. Negative health
// renders like zero.
func LayoutFor(health int) Layout {
	if health > FullHealth {
		over := health - FullHealth
		return Layout{
			Full:      Slots,
			BonusFull: over / 2,
			BonusHalf: over % 2,
		}
	}
	if health < 0 {
		health = 0
	}
	l := Layout{Full: health / 2, Half: health % 2}
	l.Empty = Slots - l.Full - l.Half
	return l
}

// Strip returns the icon drawn in each slot, left to right, before mirroring.
// Bonus icons overpaint the base strip starting at slot 0.
func (l Layout) Strip() [Slots]Icon {
	var strip [Slots]Icon
	for i := range strip {
		switch {
		case i < l.Full:
			strip[i] = IconFull
		case i < l.Full+l.Half:
			strip[i] = IconHalf
		default:
			strip[i] = IconEmpty
		}
	}
	for i := 0; i < l.BonusFull && i < Slots; i++ {
		strip[i] = IconBonusFull
	}
	if l.BonusHalf == 1 && l.BonusFull < Slots {
		strip[l.BonusFull] = IconBonusHalf
	}
	return strip
}
