package core

// State is the lifecycle of a single game
type State int

const (
	StatePreparing State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StatePreparing:
		return "preparing"
	case StateInProgress:
		return "in progress"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

type Color byte

const (
	ColorNone Color = iota
	ColorRed
	ColorBlack
)

// String returns the side-to-move letter used in FEN records
func (c Color) String() string {
	if c == ColorRed {
		return "w"
	} else if c == ColorBlack {
		return "b"
	} else {
		return "-"
	}
}

// Name returns the human readable side name
func (c Color) Name() string {
	switch c {
	case ColorRed:
		return "Red"
	case ColorBlack:
		return "Black"
	default:
		return "None"
	}
}

func OppositeColor(c Color) Color {
	if c == ColorRed {
		return ColorBlack
	}
	return ColorRed
}

// ParseColor accepts "w", "b", "red" or "black" in any case
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "W", "r", "R", "red", "Red", "RED":
		return ColorRed, true
	case "b", "B", "black", "Black", "BLACK":
		return ColorBlack, true
	default:
		return ColorNone, false
	}
}

// EndReason records why a game reached StateFinished
type EndReason int

const (
	EndNone EndReason = iota
	EndCapture
	EndResign
	EndDraw
	EndPosition // loaded from a position with a single General
)

func (r EndReason) String() string {
	switch r {
	case EndCapture:
		return "general captured"
	case EndResign:
		return "resignation"
	case EndDraw:
		return "draw agreed"
	case EndPosition:
		return "general missing from position"
	default:
		return "none"
	}
}

// Outcome is only meaningful once a game is finished
type Outcome struct {
	Winner Color
	Loser  Color
	Draw   bool
	Reason EndReason
}
