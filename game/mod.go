package game

import "fmt"

// Size is the side length of the board.
const Size = 5

// Player identifies one of the two sides. NoPlayer marks a state where no
// side has been given the turn yet.
type Player int8

const (
	NoPlayer Player = -1
	Player0  Player = 0
	Player1  Player = 1
)

// Players lists both sides in id order.
var Players = [2]Player{Player0, Player1}

func (p Player) Valid() bool {
	return p == Player0 || p == Player1
}

// Other returns the opponent, or NoPlayer for an invalid id.
func (p Player) Other() Player {
	switch p {
	case Player0:
		return Player1
	case Player1:
		return Player0
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	if !p.Valid() {
		return "NoPlayer"
	}
	return fmt.Sprintf("Player%d", p)
}
