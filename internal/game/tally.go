package game

// Outcome is the settled table.
type Outcome struct {
	Players []Player
	Winner  *Player
}

// HasWinner reports whether any player qualified.
func (o Outcome) HasWinner() bool {
	return o.Winner != nil
}

// Tally picks the standing player with the highest score not above MaxScore.
// Players are scanned in the order given and only a strictly higher score
// replaces the leader, so the earliest seat keeps a tie.
func Tally(players []Player) Outcome {
	out := Outcome{Players: players}
	for i := range players {
		p := &players[i]
		if !p.Qualifies() {
			continue
		}
		if out.Winner == nil || p.Score > out.Winner.Score {
			out.Winner = p
		}
	}
	return out
}
