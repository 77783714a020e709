package memo

import "github.com/coolbeans/memodrill/pkg/cube"

// DefaultLetters is the upper-case Latin alphabet truncated to 24 letters.
const DefaultLetters = "ABCDEFGHIJKLMNOPQRSTUVWX"

// SpeffzEdges is the edge schema in letter order. Each label names the face
// of the sticker first, then the face it shares the piece with.
var SpeffzEdges = []string{
	"UB", "UR", "UF", "UL",
	"LU", "LF", "LD", "LB",
	"FU", "FR", "FD", "FL",
	"RU", "RB", "RD", "RF",
	"BU", "BL", "BD", "BR",
	"DF", "DR", "DB", "DL",
}

// SpeffzCorners is the corner schema in letter order. Each label starts with
// the face of the lettered sticker and continues clockwise around the corner.
var SpeffzCorners = []string{
	"ULB", "UBR", "URF", "UFL",
	"LBU", "LUF", "LFD", "LDB",
	"FLU", "FUR", "FRD", "FDL",
	"RFU", "RUB", "RBD", "RDF",
	"BRU", "BUL", "BLD", "BDR",
	"DLF", "DFR", "DRB", "DBL",
}

// DefaultConfig returns the Speffz lettering over the default color scheme.
func DefaultConfig() Config {
	return Config{
		Name:    "speffz",
		Scheme:  cube.DefaultScheme(),
		Letters: DefaultLetters,
		Edges:   append([]string(nil), SpeffzEdges...),
		Corners: append([]string(nil), SpeffzCorners...),
	}
}
