package game

import rl "github.com/gen2brain/raylib-go/raylib"

// clickSlop is how far in pixels the mouse may travel between press and
// release for the pair to still count as a click rather than an orbit drag.
const clickSlop = 4

// clickTracker turns left-button press/release pairs into clicks.
type clickTracker struct {
	pressPos rl.Vector2
	pressed  bool
}

// Press starts a candidate click unless the press landed on the HUD.
func (c *clickTracker) Press(pos rl.Vector2, blocked bool) {
	c.pressPos = pos
	c.pressed = !blocked
}

// Release reports whether the press that just ended was a click.
func (c *clickTracker) Release(pos rl.Vector2) bool {
	if !c.pressed {
		return false
	}
	c.pressed = false
	return rl.Vector2Distance(pos, c.pressPos) <= clickSlop
}

// poll feeds the tracker from raylib's mouse state for this frame.
func (c *clickTracker) poll(blocked bool) bool {
	pos := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		c.Press(pos, blocked)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		return c.Release(pos)
	}
	return false
}
