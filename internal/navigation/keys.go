package navigation

import (
	"github.com/dshills/molnav/internal/geom"
	"github.com/dshills/molnav/internal/input/key"
)

// Per-hit key step sizes; the hit multiplier scales all of them.
const (
	panStep   = 2
	pitchStep = 0.2
	yawStep   = 0.6
)

// NavigateKey applies one navigation key hit. KeyNone reports that the
// key was released, which resets the hit multiplier.
//
// The multiplier doubles every ten hits of a held key, up to 4. Up and
// Down move the camera forward and back (Shift pans vertically, Alt
// pitches); Left and Right yaw (Shift pans horizontally); Period returns
// home. Ctrl makes forward moves ten times faster. Outside navigation mode
// keys are ignored.
func (c *Camera) NavigateKey(k key.Key, mods key.Modifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.navOn {
		return
	}
	if k == key.KeyNone {
		c.nHits = 0
		c.multiplier = 1
		c.navigating = false
		return
	}

	c.nHits++
	if c.nHits%10 == 0 && c.multiplier < 4 {
		c.multiplier *= 2
	}
	m := float32(c.multiplier)
	speed := c.cfg.Speed
	if mods.HasCtrl() {
		speed *= 10
	}

	switch k {
	case key.KeyPeriod:
		c.home()
		return
	case key.KeySpace:
		return
	case key.KeyUp, key.KeyDown:
		sign := float32(1)
		if k == key.KeyUp {
			sign = -1
		}
		switch {
		case mods.HasShift():
			c.navOffset[1] += sign * panStep * m
			c.navMode = ModeNewXY
		case mods.HasAlt():
			c.rotation = geom.Mul(geom.RotX(geom.Radians(sign*pitchStep*m)), c.rotation)
			c.navMode = ModeNewXYZ
		default:
			c.mco += sign * speed * m
			c.navMode = ModeNewZ
		}
	case key.KeyLeft, key.KeyRight:
		sign := float32(1)
		if k == key.KeyLeft {
			sign = -1
		}
		if mods.HasShift() {
			c.navOffset[0] += sign * panStep * m
			c.navMode = ModeNewXY
			break
		}
		c.rotation = geom.Mul(geom.RotY(geom.Radians(sign*yawStep*m)), c.rotation)
		c.navMode = ModeNewXYZ
	default:
		c.navigating = false
		c.navMode = ModeNone
		return
	}
	c.navigating = true
	c.finalize()
}
