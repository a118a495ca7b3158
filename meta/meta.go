// meta/meta.go
package meta

import "time"

// BOARD_SIZE defines the default grid size.
const BOARD_SIZE = 5

// KOMI defines the default compensation for White.
const KOMI = 6.5

// DURATION defines the default time budget per move.
const DURATION = 10 * time.Second

// MAX_MOVES defines the ply cap of one simulation.
const MAX_MOVES = 100

// EXPLORATION defines the UCB1 exploration constant.
const EXPLORATION = 1.4

// MAX_TURNS defines the turn cap of one game.
const MAX_TURNS = 300

// GAMES defines the number of self-play games per run.
const GAMES = 1
