package game

// Status is where a player stands in the hand.
type Status int

const (
	Playing Status = iota
	Standing
	Busted
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Standing:
		return "standing"
	case Busted:
		return "busted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no more cards may be dealt.
func (s Status) Terminal() bool {
	return s == Standing || s == Busted
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s >= Playing && s <= Busted
}
