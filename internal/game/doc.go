// Package game holds the rules of seven-and-a-half as seen by both sides of
// the table: card values, player status, score keeping and the final tally.
//
// The package is pure state. It knows nothing about channels or goroutines;
// the dealer and player packages drive it.
//
// # Basic Usage
//
// Track a player and settle the table:
//
//	p := game.NewPlayer(1)
//	_ = p.Accept(game.Card(5), game.Playing)
//	_ = p.Accept(game.FigureCard, game.Standing)
//	outcome := game.Tally([]game.Player{*p})
//	if outcome.HasWinner() {
//	    fmt.Println(outcome.Winner.ID, outcome.Winner.Score)
//	}
//
// # Deterministic Testing
//
// NewRandomDeck accepts a *rand.Rand so a fixed seed reproduces every card.
// NewStackedDeck hands out a predetermined sequence:
//
//	deck := game.NewStackedDeck(1, 1, 5, 3)
package game
