package game

import "time"

// Deployment constants. Fixed per deployment, not runtime-mutable.
const (
	GridSize        = 48
	MaxRoundPlayers = 8  // in-round cap; later joiners spectate the round
	MaxRoomPlayers  = 16 // hard occupancy cap, players plus spectators

	TickInterval      = 70 * time.Millisecond
	CountdownDuration = 2500 * time.Millisecond
	RoundEndDelay     = 3 * time.Second

	DefaultRoomID     = "public"
	MaxUsernameLength = 32

	outboxSize = 64
	pingPeriod = 30 * time.Second
	pongWait   = time.Minute
	writeWait  = 20 * time.Second
)

// colorPalette holds one color per occupancy slot so assignment stays
// unique for a full room.
var colorPalette = []string{
	"#00e5ff",
	"#ff4d6d",
	"#ffd166",
	"#8ac926",
	"#c77dff",
	"#ff9f1c",
	"#4cc9f0",
	"#f72585",
	"#80ffdb",
	"#ef476f",
	"#ffe066",
	"#b5e48c",
	"#9d4edd",
	"#fb8500",
	"#48cae4",
	"#b5179e",
}
