package flood

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-flood/internal/core"
	"github.com/vovakirdan/tui-flood/internal/games/flood/core"
	"github.com/vovakirdan/tui-flood/internal/games/flood/levels"
)

const (
	cellWidth  = 2 // Each tile is "██"
	hudHeight  = 3
	barHeight  = 2 // Swatches + cursor marker
	slotWidth  = 5 // "1 ██" plus a gap
	minWidth   = 40
	movesBarW  = 10
	tileRune   = '█'
	shadeRune  = '░'
	cursorRune = '▲'
)

// minScreenSize returns the smallest screen that fits the current board.
func (g *Game) minScreenSize() (int, int) {
	boardW := g.level.GridSize*cellWidth + 2
	w := max(minWidth, boardW, g.colors*slotWidth)
	h := hudHeight + g.level.GridSize + 2 + 1 + barHeight + 1
	return w, h
}

// layout returns the board frame. The HUD, board and color bar are
// centered as one block.
func (g *Game) layout() platformcore.Rect {
	size := g.level.GridSize
	w, h := size*cellWidth+2, size+2
	_, total := g.minScreenSize()
	block := platformcore.CenteredRect(g.screenW, g.screenH, w, total)
	return platformcore.NewRect(block.X, block.Y+hudHeight, w, h)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.layout()

	g.renderHUD(dst, board.Y-hudHeight)
	g.renderBoard(dst, board.X, board.Y)
	g.renderColorBar(dst, board.Bottom()+1)
	dst.DrawTextCenteredColor(board.Bottom()+1+barHeight, g.Controls(), platformcore.ColorDim)

	g.renderOverlays(dst, board.X+board.W/2, board.Y+board.H/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := g.minScreenSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// renderHUD draws the level title and the moves counter.
func (g *Game) renderHUD(dst *platformcore.Screen, y int) {
	var title string
	if g.mode == ModeEndless {
		title = fmt.Sprintf("Endless · Board %d · Streak %d", g.boardNum, g.streak)
	} else {
		title = fmt.Sprintf("Level %d · %s", g.level.ID, g.levelTierName())
	}
	dst.DrawTextCenteredColor(y, title, platformcore.ColorWhite)

	used, maxMoves := g.engine.MovesUsed(), g.engine.MaxMoves()
	label := MovesLabel(used, maxMoves)
	bar := MovesBar(used, maxMoves, movesBarW)

	labelColor, barColor := platformcore.ColorDefault, platformcore.ColorGreen
	if g.Danger() {
		labelColor, barColor = platformcore.ColorBrightRed, platformcore.ColorBrightRed
	}

	lineW := utf8.RuneCountInString(label) + 2 + utf8.RuneCountInString(bar)
	x := (g.screenW - lineW) / 2
	dst.DrawTextColor(x, y+1, label, labelColor)
	dst.DrawTextColor(x+utf8.RuneCountInString(label)+2, y+1, bar, barColor)
}

func (g *Game) levelTierName() string {
	if g.level.ID < 1 {
		return ""
	}
	return levels.TierName(g.level.Tier())
}

// renderBoard draws the framed grid of tiles.
func (g *Game) renderBoard(dst *platformcore.Screen, boardX, boardY int) {
	size := g.level.GridSize
	dst.DrawBox(platformcore.NewRect(boardX, boardY, size*cellWidth+2, size+2), platformcore.ColorGray)

	grid := g.engine.Grid()
	if grid == nil {
		return
	}
	for row := range size {
		for col := range size {
			live := grid.At(core.RC(row, col))
			c := g.wave.colorAt(row, col, live, g.cfg.Animation.FloodTicks)
			tc := platformcore.TileColor(c)
			px := boardX + 1 + col*cellWidth
			py := boardY + 1 + row
			for i := range cellWidth {
				dst.SetColor(px+i, py, tileRune, tc)
			}
		}
	}
}

// renderColorBar draws one swatch per color with the cursor below it.
// The origin color is shaded; colors gone from the board are dimmed.
func (g *Game) renderColorBar(dst *platformcore.Screen, y int) {
	totalW := g.colors*slotWidth - 1
	x0 := (g.screenW - totalW) / 2
	origin := g.engine.OriginColor()
	var counts map[int]int
	if live := g.engine.Grid(); live != nil {
		counts = live.CountByColor()
	}

	for i := range g.colors {
		x := x0 + i*slotWidth
		dst.SetColor(x, y, rune('1'+i), platformcore.ColorWhite)
		swatch := tileRune
		if i == origin {
			swatch = shadeRune
		}
		tc := platformcore.TileColor(i)
		if counts != nil && counts[i] == 0 {
			tc = platformcore.ColorDim
		}
		dst.SetColor(x+2, y, swatch, tc)
		dst.SetColor(x+3, y, swatch, tc)
		if i == g.cursor && g.phase == phasePlaying {
			dst.SetColor(x+2, y+1, cursorRune, platformcore.ColorWhite)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, platformcore.ColorYellow, "PAUSED", "Press P to resume")
		return
	}
	if g.phase != phaseResult {
		return
	}

	switch g.engine.Status() {
	case core.StatusWon:
		g.drawOverlay(dst, centerX, centerY, platformcore.ColorBrightGreen, g.winLines()...)
	case core.StatusFailed:
		g.drawOverlay(dst, centerX, centerY, platformcore.ColorBrightRed, g.failLines()...)
	}
}

func (g *Game) winLines() []string {
	title := "LEVEL COMPLETE!"
	if g.mode == ModeEndless {
		title = "BOARD CLEARED!"
	}
	lines := []string{title, WinDetail(g.engine.MovesUsed(), g.engine.MaxMoves(), g.Perfect())}

	var keys []string
	if g.mode == ModeEndless {
		lines = append(lines, fmt.Sprintf("Streak: %d", g.streak))
		keys = append(keys, "N: Next board")
	} else if g.HasNext() {
		keys = append(keys, "N: Next level")
	} else {
		lines = append(lines, "You finished every level!")
	}
	keys = append(keys, "R: Replay", "B: Back")
	return append(lines, strings.Join(keys, "  "))
}

func (g *Game) failLines() []string {
	lines := []string{"OUT OF MOVES", "Try again!"}
	keys := "R: Retry  B: Back"
	if g.mode == ModeEndless {
		keys = "R: Retry  N: New board  B: Back"
	}
	return append(lines, keys)
}

// drawOverlay draws a centered boxed text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, c platformcore.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := platformcore.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	// Clear area behind overlay
	dst.DrawRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, c)

	for i, line := range lines {
		lc := platformcore.ColorDefault
		if i == 0 {
			lc = c
		}
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColor(x, box.Y+1+i, line, lc)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return fmt.Sprintf("1-%d/←→ Enter: pick  R: restart  B: back", g.colors)
}

// MovesLabel formats the moves counter, e.g. "3 / 12 moves".
func MovesLabel(used, maxMoves int) string {
	return fmt.Sprintf("%d / %d moves", used, maxMoves)
}

// MovesBar renders the remaining budget as a fixed-width bar.
func MovesBar(used, maxMoves, width int) string {
	if maxMoves <= 0 || width <= 0 {
		return ""
	}
	remaining := max(0, maxMoves-used)
	filled := remaining * width / maxMoves
	return strings.Repeat(string(tileRune), filled) + strings.Repeat(string(shadeRune), width-filled)
}

// WinDetail returns the win message for a finished level.
func WinDetail(used, maxMoves int, perfect bool) string {
	if perfect {
		return fmt.Sprintf("Amazing! Only %d of %d moves!", used, maxMoves)
	}
	return fmt.Sprintf("%d of %d moves used", used, maxMoves)
}
