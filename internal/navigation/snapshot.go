package navigation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	jsoniter "github.com/json-iterator/go"

	"github.com/dshills/molnav/internal/geom"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is the restorable camera orientation.
type Snapshot struct {
	Rotation           geom.Mat3  `json:"rotation"`
	TranslationPercent [2]float32 `json:"translationPercent"`
	ZoomPercent        float32    `json:"zoomPercent"`
	Center             geom.Vec3  `json:"center"`
	Radius             float32    `json:"radius"`
	Navigation         bool       `json:"navigation"`
	NavCenter          geom.Vec3  `json:"navCenter"`
	NavOffsetPercent   [2]float32 `json:"navOffsetPercent"`
	NavDepthPercent    float32    `json:"navDepthPercent"`
}

// Snapshot captures the current orientation.
func (c *Camera) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	tx, ty := c.translationPercent()
	nx, ny := c.navigationOffsetPercent()
	depth := c.navDepth
	if !c.navOn {
		depth = c.depthPercent()
	}
	return Snapshot{
		Rotation:           c.rotation,
		TranslationPercent: [2]float32{tx, ty},
		ZoomPercent:        c.zoomSetting,
		Center:             c.rotCenter,
		Radius:             c.radius,
		Navigation:         c.navOn,
		NavCenter:          c.navCenter,
		NavOffsetPercent:   [2]float32{nx, ny},
		NavDepthPercent:    depth,
	}
}

// Restore applies s. Navigation state is restored in the order a moveto
// applies it: centre, screen offset, depth.
func (c *Camera) Restore(s Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotation = s.Rotation
	c.rotCenter = s.Center
	if s.Radius > 0 {
		c.radius = s.Radius
	}
	c.zoomToPercent(s.ZoomPercent)
	c.translateToPercent('x', s.TranslationPercent[0])
	c.translateToPercent('y', s.TranslationPercent[1])
	if s.Navigation != c.navOn {
		c.navOn = s.Navigation
		c.resetNavigationPoint()
	}
	c.finalize()
	if !c.navOn {
		return
	}

	c.navigateCenter(s.NavCenter)
	w, h := float32(c.width), float32(c.height)
	x := w*s.NavOffsetPercent[0]/100 + w/2
	y := h*s.NavOffsetPercent[1]/100 + h/2
	c.setNavigationOffset(&x, &y)

	depth := min(max(s.NavDepthPercent, c.cfg.MinDepthPercent), c.cfg.MaxDepthPercent)
	c.calcCameraFactors()
	c.mco = c.rpo - (1-depth/50)*c.mrp
	c.calcCameraFactors()
	c.navMode = ModeZoomed
	c.finalize()
}

// Encode returns the JSON form of the snapshot.
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses a snapshot encoded by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}

// MoveToText renders the snapshot as a moveto command:
//
//	moveto <t> {ax ay az deg} <zoom> <tx> <ty> {cx cy cz} <radius> {nx ny nz} <nx%> <ny%> <depth>;
func (s Snapshot) MoveToText(seconds float32) string {
	var sb strings.Builder
	sb.WriteString("moveto ")
	sb.WriteString(num(seconds))
	sb.WriteByte(' ')
	sb.WriteString(rotationText(s.Rotation))
	sb.WriteString(" " + num(round2(s.ZoomPercent)))
	sb.WriteString(" " + num(round2(s.TranslationPercent[0])))
	sb.WriteString(" " + num(round2(s.TranslationPercent[1])))
	sb.WriteString(" " + point(s.Center))
	sb.WriteString(" " + num(s.Radius))
	sb.WriteString(s.navigationText())
	sb.WriteByte(';')
	return sb.String()
}

func (s Snapshot) navigationText() string {
	return fmt.Sprintf(" %s %s %s %s", point(s.NavCenter),
		num(s.NavOffsetPercent[0]), num(s.NavOffsetPercent[1]), num(s.NavDepthPercent))
}

// NavigationStateText renders the navigation part of the snapshot as
// commands, or "" in standard mode.
func (s Snapshot) NavigationStateText() string {
	if !s.Navigation {
		return ""
	}
	return "# navigation state;\n" +
		"navigate 0 center " + point(s.NavCenter) + ";\n" +
		"navigate 0 translate " + num(s.NavOffsetPercent[0]) + " " + num(s.NavOffsetPercent[1]) + ";\n" +
		"set navigationDepth " + num(s.NavDepthPercent) + ";\n\n"
}

// rotationText renders m as {x y z degrees} with the axis scaled to
// length 1000.
func rotationText(m geom.Mat3) string {
	axis, rad := geom.ToAxisAngle(m)
	deg := geom.Degrees(rad)
	if deg < 0.01 {
		return "{0 0 1 0}"
	}
	axis = geom.Scale(geom.Normalize(axis), 1000)
	return fmt.Sprintf("{%d %d %d %s}",
		int(math32.Round(axis[0])), int(math32.Round(axis[1])), int(math32.Round(axis[2])),
		num(round2(deg)))
}

func point(v geom.Vec3) string {
	return "{" + num(v[0]) + " " + num(v[1]) + " " + num(v[2]) + "}"
}

func num(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

func round2(f float32) float32 {
	return math32.Round(f*100) / 100
}
