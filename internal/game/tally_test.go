package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func player(id int, score float64, status Status) Player {
	return Player{ID: id, Score: score, Status: status}
}

func TestTally(t *testing.T) {
	tests := []struct {
		name    string
		players []Player
		winner  int
	}{
		{
			name:    "highest standing score wins",
			players: []Player{player(1, 4, Standing), player(2, 6.5, Standing), player(3, 5, Standing)},
			winner:  2,
		},
		{
			name:    "busted players never win",
			players: []Player{player(1, 3, Standing), player(2, 7, Busted)},
			winner:  1,
		},
		{
			name:    "tie keeps the lowest id",
			players: []Player{player(1, 1, Standing), player(2, 1, Standing)},
			winner:  1,
		},
		{
			name:    "tie keeps the lowest id even after a lower score",
			players: []Player{player(1, 2, Standing), player(2, 5, Standing), player(3, 5, Standing)},
			winner:  2,
		},
		{
			name:    "over the limit does not qualify even if standing",
			players: []Player{player(1, 8, Standing), player(2, 0.5, Standing)},
			winner:  2,
		},
		{
			name:    "nobody standing means no winner",
			players: []Player{player(1, 3, Busted), player(2, 6, Busted)},
			winner:  0,
		},
		{
			name:    "playing players do not qualify",
			players: []Player{player(1, 3, Playing)},
			winner:  0,
		},
		{
			name:    "empty table",
			players: nil,
			winner:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Tally(tt.players)
			if tt.winner == 0 {
				assert.False(t, out.HasWinner())
				return
			}
			require.True(t, out.HasWinner())
			assert.Equal(t, tt.winner, out.Winner.ID)
			assert.True(t, out.Winner.Qualifies())
		})
	}
}
