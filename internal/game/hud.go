package game

import (
	"fmt"

	"connectors/internal/palette"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors - dark glass
var (
	colorBgPanel   = rl.NewColor(18, 18, 24, 220)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
	colorBorder        = rl.NewColor(50, 50, 65, 255)
)

var hudBounds = rl.Rectangle{X: 10, Y: 10, Width: 240, Height: 236}

func initHUDStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgPanel))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(colorBorder))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (g *Game) DrawUI() {
	if !g.ShowHUD {
		rl.DrawText("F1 for controls", 10, 10, 16, colorTextMuted)
		return
	}

	b := hudBounds
	rl.DrawRectangleRec(b, colorBgPanel)
	rl.DrawRectangleLinesEx(b, 1, colorBorder)

	x := int32(b.X) + 12
	y := int32(b.Y) + 12
	w := b.Width - 24

	// Accent swatch
	pal := g.Config.Scene.Palette
	hex := pal.Accents[pal.Clamp(g.State.Accent)]
	swatch := palette.MustParse(hex).Color()
	rl.DrawRectangle(x, y, 28, 28, swatch)
	rl.DrawRectangleLines(x, y, 28, 28, colorBorder)
	rl.DrawText(fmt.Sprintf("Accent %d  %s", g.State.Accent, hex), x+38, y+7, 16, colorTextPrimary)
	y += 40

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: w/2 - 4, Height: 26}, "Shuffle") {
		g.queuedClick = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + w/2 + 4, Y: float32(y), Width: w/2 - 4, Height: 26}, "Snapshot") {
		g.saveSnapshot()
	}
	y += 36

	g.Paused = gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(y), Width: 18, Height: 18}, "Paused", g.Paused)
	y += 30

	mat := &g.Config.Material
	rl.DrawText("IOR", x, y+4, 14, colorTextSecondary)
	mat.IOR = gui.Slider(rl.Rectangle{X: float32(x) + 40, Y: float32(y), Width: w - 80, Height: 20}, "", fmt.Sprintf("%.2f", mat.IOR), mat.IOR, 0.5, 2.5)
	y += 28

	rl.DrawText(fmt.Sprintf("Frame %d  shuffles %d", g.State.Frame, g.shuffles), x, y, 14, colorTextSecondary)
	y += 20
	rl.DrawText(fmt.Sprintf("Contacts %d  skipped %d", g.World.Physics.ContactCount(), g.lastReport.Skipped), x, y, 14, colorTextSecondary)
	y += 20
	rl.DrawText(fmt.Sprintf("Update %.2f ms  Draw %.2f ms", g.updateMs, g.drawMs), x, y, 14, colorTextMuted)
	y += 20
	rl.DrawFPS(x, y)
}
