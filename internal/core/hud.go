package core

// DrawScore draws score modulo 100 as two digits on the header: tens at
// x=0, ones at onesX.
func DrawScore(b *FrameBuffer, score, onesX int, c Color) {
	score %= 100
	if score < 0 {
		score += 100
	}
	b.DrawFigure(0, 0, Digit(score/10), c)
	b.DrawFigure(onesX, 0, Digit(score%10), c)
}

// DrawDivider draws the line between header and play field.
func DrawDivider(b *FrameBuffer, c Color) {
	for x := range Width {
		b.Set(x, DividerRow, c)
	}
}

// DrawMeter draws n pixels down column x from the top row. Negative n draws
// nothing; n is capped at the header height.
func DrawMeter(b *FrameBuffer, x, n int, c Color) {
	for y := range Clamp(n, 0, DividerRow) {
		b.Set(x, y, c)
	}
}
