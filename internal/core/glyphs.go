package core

// Digits are the 3x5 score glyphs 0-9.
var Digits = [10]Figure{
	MustParseFigure("###\n# #\n# #\n# #\n###"),
	MustParseFigure(" # \n## \n # \n # \n # "),
	MustParseFigure("###\n  #\n###\n#  \n###"),
	MustParseFigure("###\n  #\n###\n  #\n###"),
	MustParseFigure("# #\n# #\n###\n  #\n  #"),
	MustParseFigure("###\n#  \n###\n  #\n###"),
	MustParseFigure("###\n#  \n###\n# #\n###"),
	MustParseFigure("###\n  #\n  #\n  #\n  #"),
	MustParseFigure("###\n# #\n###\n# #\n###"),
	MustParseFigure("###\n# #\n###\n  #\n###"),
}

// Digit returns the glyph for n modulo 10.
func Digit(n int) Figure {
	n %= 10
	if n < 0 {
		n += 10
	}
	return Digits[n]
}

// Tetromino indices. TetrominoColors is aligned with this order.
const (
	PieceI = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
	PieceCount
)

// Tetrominoes are the seven pieces in spawn orientation.
var Tetrominoes = [PieceCount]Figure{
	PieceI: MustParseFigure("####"),
	PieceO: MustParseFigure("##\n##"),
	PieceT: MustParseFigure(" # \n###"),
	PieceS: MustParseFigure(" ##\n## "),
	PieceZ: MustParseFigure("## \n ##"),
	PieceJ: MustParseFigure("#  \n###"),
	PieceL: MustParseFigure("  #\n###"),
}

// TetrominoColors gives each piece its palette color.
var TetrominoColors = [PieceCount]Color{
	PieceI: LightBlue,
	PieceO: Yellow,
	PieceT: Pink,
	PieceS: Green,
	PieceZ: Red,
	PieceJ: Blue,
	PieceL: Brick,
}

// TankSprite is a 2x2 tank facing right. Rotating it clockwise walks the
// heading right, down, left, up.
var TankSprite = MustParseFigure("##\n# ")

// CarSprite is the 3x4 race car: nose, front axle, cabin, rear axle.
var CarSprite = MustParseFigure(" # \n###\n # \n###")

// BlockSprite is the 2x2 road obstacle.
var BlockSprite = MustParseFigure("##\n##")
