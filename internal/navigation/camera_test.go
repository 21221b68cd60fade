package navigation

import (
	"context"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/molnav/internal/geom"
	"github.com/dshills/molnav/internal/input/key"
)

func newTestCamera(t *testing.T) *Camera {
	t.Helper()
	c := NewCamera(DefaultConfig())
	c.SetScreenSize(400, 300)
	c.SetModel(geom.V(1, 2, 3), 10)
	return c
}

func newNavCamera(t *testing.T) *Camera {
	t.Helper()
	c := newTestCamera(t)
	c.SetNavigationMode(true)
	require.True(t, c.InNavigationMode())
	return c
}

func assertVec(t *testing.T, want, got geom.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestCameraFactors(t *testing.T) {
	c := newTestCamera(t)
	f := c.Factors()

	// 400x300 screen: 398 usable pixels, camera 3 screens back.
	assert.Equal(t, float32(1194), f.CameraDistance)
	assert.Equal(t, float32(1393), f.ReferencePlaneOffset)
	assert.Equal(t, f.ReferencePlaneOffset, f.ModelCenterOffset)
	// at 100% the model diameter fills the screen
	assert.InDelta(t, 19.9, f.ScalePixelsPerAngstrom, 1e-3)
	assert.InDelta(t, 199, f.ModelRadiusPixels, 1e-2)
}

func TestCalcCameraFactorsIdempotent(t *testing.T) {
	c := newTestCamera(t)
	first := c.CalcCameraFactors()
	assert.Equal(t, first, c.CalcCameraFactors())

	c.SetNavigationMode(true)
	first = c.CalcCameraFactors()
	assert.Equal(t, first, c.CalcCameraFactors())
	assert.Equal(t, first, c.Factors())
}

func TestPerspectiveFactor(t *testing.T) {
	c := newTestCamera(t)
	rpo := c.Factors().ReferencePlaneOffset
	tests := []struct {
		z, want float32
	}{
		{0, rpo},
		{-5, rpo},
		{rpo, 1},
		{2 * rpo, 0.5},
	}
	for _, tt := range tests {
		if got := c.PerspectiveFactor(tt.z); got != tt.want {
			t.Errorf("PerspectiveFactor(%v) = %v, want %v", tt.z, got, tt.want)
		}
	}
}

func TestRotationCenterIsScreenCenter(t *testing.T) {
	c := newTestCamera(t)
	s := c.TransformPoint(geom.V(1, 2, 3))
	assertVec(t, geom.V(200, 150, 1393), s, 1e-3)
}

func TestTransformRoundTrip(t *testing.T) {
	points := []geom.Vec3{
		geom.V(1, 2, 3),
		geom.V(2, -1, 4),
		geom.V(-6, 8, 0),
		geom.V(9, 9, 9),
	}

	c := newTestCamera(t)
	c.RotateXYBy(30, 20)
	c.RotateZBy(-45)
	for _, p := range points {
		assertVec(t, p, c.UnTransformPoint(c.TransformPoint(p)), 1e-3)
	}

	c.SetNavigationMode(true)
	c.NavigateRotate(geom.V(0, 1, 0), 25)
	for _, p := range points {
		assertVec(t, p, c.UnTransformPoint(c.TransformPoint(p)), 1e-3)
	}
}

func TestNonFiniteDepthClamped(t *testing.T) {
	c := newTestCamera(t)
	s := c.TransformPoint(geom.V(0, 0, math32.NaN()))
	assert.Equal(t, float32(1), s[2])

	// far behind the camera
	s = c.TransformPoint(geom.V(1, 2, 1000))
	assert.Equal(t, float32(1), s[2])
}

func TestNavigationModeEntry(t *testing.T) {
	c := newNavCamera(t)

	// the navigation point starts at the screen centre, in line with the
	// rotation centre
	off := c.NavigationOffset()
	assert.InDelta(t, 200, off[0], 1e-3)
	assert.InDelta(t, 150, off[1], 1e-3)
	rot := c.TransformPoint(geom.V(1, 2, 3))
	assert.InDelta(t, 200, rot[0], 1e-3)
	assert.InDelta(t, 150, rot[1], 1e-3)

	x, y := c.NavigationOffsetPercent()
	assert.InDelta(t, 0, x, 1e-3)
	assert.InDelta(t, 0, y, 1e-3)
}

func TestSetNavigationDepthPercent(t *testing.T) {
	tests := []struct {
		name    string
		cfg     func(*Config)
		percent float32
		want    float32
	}{
		{"inside", nil, 50, 50},
		{"front", nil, 75, 75},
		{"beyond the front plane", nil, 150, 100},
		{"behind the rear plane", nil, -20, 0},
		{"custom maximum", func(c *Config) { c.MaxDepthPercent = 80 }, 150, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			c := NewCamera(cfg)
			c.SetScreenSize(400, 300)
			c.SetModel(geom.V(0, 0, 0), 10)
			c.SetNavigationMode(true)

			c.SetNavigationDepthPercent(tt.percent)
			assert.InDelta(t, tt.want, c.NavigationDepthPercent(), 1e-2)
		})
	}
}

func TestDepthIgnoredInStandardMode(t *testing.T) {
	c := newTestCamera(t)
	before := c.Factors()
	c.SetNavigationDepthPercent(10)
	assert.Equal(t, before, c.Factors())
	assert.Equal(t, float32(50), c.NavigationDepthPercent())
}

func TestZeroRadiusDepth(t *testing.T) {
	c := NewCamera(DefaultConfig())
	c.SetScreenSize(100, 100)
	c.SetModel(geom.V(0, 0, 0), 0)
	c.SetNavigationMode(true)
	assert.Equal(t, float32(50), c.NavigationDepthPercent())
}

func TestNavigateKeyMultiplier(t *testing.T) {
	c := newNavCamera(t)
	speed := c.Config().Speed
	mco := func() float32 { return c.Factors().ModelCenterOffset }

	start := mco()
	for i := 0; i < 10; i++ {
		c.NavigateKey(key.KeyUp, 0)
	}
	// nine single steps, then the tenth hit doubles
	assert.InDelta(t, 11*speed, start-mco(), 1e-2)
	assert.True(t, c.IsNavigating())

	c.NavigateKey(key.KeyNone, 0)
	assert.False(t, c.IsNavigating())

	start = mco()
	c.NavigateKey(key.KeyDown, 0)
	assert.InDelta(t, speed, mco()-start, 1e-2)

	start = mco()
	c.NavigateKey(key.KeyDown, key.ModCtrl)
	assert.InDelta(t, 10*speed, mco()-start, 1e-2)
}

func TestNavigateKeyMultiplierCaps(t *testing.T) {
	c := newNavCamera(t)
	speed := c.Config().Speed
	for i := 0; i < 39; i++ {
		c.NavigateKey(key.KeyDown, 0)
	}
	start := c.Factors().ModelCenterOffset
	c.NavigateKey(key.KeyDown, 0)
	assert.InDelta(t, 4*speed, c.Factors().ModelCenterOffset-start, 1e-2)
}

func TestNavigateKeyYawKeepsCenter(t *testing.T) {
	c := newNavCamera(t)
	c.SetNavigationDepthPercent(50)
	center := c.NavigationCenter()

	c.NavigateKey(key.KeyLeft, 0)
	assert.Equal(t, center, c.NavigationCenter())
	assert.NotEqual(t, geom.Identity(), c.Rotation())
	off := c.NavigationOffset()
	assert.InDelta(t, 200, off[0], 1e-2)
	assert.InDelta(t, 150, off[1], 1e-2)

	c.NavigateKey(key.KeyPeriod, 0)
	assert.Equal(t, geom.Identity(), c.Rotation())
}

func TestNavigateKeyShiftPans(t *testing.T) {
	c := newNavCamera(t)
	c.NavigateKey(key.KeyRight, key.ModShift)
	off := c.NavigationOffset()
	assert.InDelta(t, 202, off[0], 1e-2)
	assert.InDelta(t, 150, off[1], 1e-2)

	c.NavigateKey(key.KeyUp, key.ModShift)
	off = c.NavigationOffset()
	assert.InDelta(t, 148, off[1], 1e-2)
}

func TestNavigateKeyIgnoredInStandardMode(t *testing.T) {
	c := newTestCamera(t)
	before := c.Factors()
	c.NavigateKey(key.KeyUp, 0)
	assert.Equal(t, before, c.Factors())
	assert.False(t, c.IsNavigating())
}

func TestZoom(t *testing.T) {
	c := newTestCamera(t)

	c.ZoomBy(10)
	assert.InDelta(t, 120, c.ZoomSetting(), 1e-3)
	c.ZoomBy(100) // clamped to 20 pixels
	assert.InDelta(t, 168, c.ZoomSetting(), 1e-3)
	assert.InDelta(t, 168, c.ZoomPercent(), 1e-3)

	c.ZoomToPercent(1)
	assert.Equal(t, float32(MinZoomPercent), c.ZoomSetting())
	c.ZoomByFactor(2)
	assert.Equal(t, float32(10), c.ZoomSetting())
	c.ZoomByFactor(0)
	c.ZoomByFactor(-1)
	assert.Equal(t, float32(10), c.ZoomSetting())

	c.ZoomToPercent(1e9)
	assert.Equal(t, DefaultConfig().MaxZoomPercent, c.ZoomSetting())
}

func TestZoomScalesModel(t *testing.T) {
	c := newTestCamera(t)
	base := c.Factors().ScalePixelsPerAngstrom
	c.ZoomToPercent(200)
	assert.InDelta(t, 2*base, c.Factors().ScalePixelsPerAngstrom, 1e-3)
}

func TestZoomByFactorInNavigationModeMovesCamera(t *testing.T) {
	c := newNavCamera(t)
	start := c.Factors()
	c.ZoomByFactor(1.15)
	got := c.Factors()
	assert.InDelta(t, start.ModelCenterOffset-0.15*start.ReferencePlaneOffset, got.ModelCenterOffset, 1e-1)
	assert.Equal(t, start.ScalePixelsPerAngstrom, got.ScalePixelsPerAngstrom)
}

func TestTranslate(t *testing.T) {
	c := newTestCamera(t)
	c.TranslateToPercent('x', 10)
	x, y := c.TranslationPercent()
	assert.InDelta(t, 10, x, 1e-4)
	assert.InDelta(t, 0, y, 1e-4)

	c.TranslateXYBy(-40, 30)
	x, y = c.TranslationPercent()
	assert.InDelta(t, 0, x, 1e-4)
	assert.InDelta(t, 10, y, 1e-4)

	s := c.TransformPoint(geom.V(1, 2, 3))
	assert.InDelta(t, 180, s[1], 1e-3)

	// the fraction survives a resize
	c.SetScreenSize(800, 600)
	_, y = c.TranslationPercent()
	assert.InDelta(t, 10, y, 1e-4)
}

func TestHome(t *testing.T) {
	c := newTestCamera(t)
	c.RotateXYBy(10, 10)
	c.ZoomToPercent(300)
	c.TranslateXYBy(20, 20)

	c.Home()
	assert.Equal(t, geom.Identity(), c.Rotation())
	assert.Equal(t, float32(100), c.ZoomPercent())
	x, y := c.TranslationPercent()
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
}

func TestNavigateInstant(t *testing.T) {
	c := newNavCamera(t)
	target := geom.V(2, 2, 2)
	res := c.Navigate(context.Background(), 0, target)
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, target, c.NavigationCenter())

	// the new centre sits on the reference plane
	s := c.TransformPoint(target)
	assert.InDelta(t, c.Factors().ReferencePlaneOffset, s[2], 1e-2)
}

type recordingAnimator struct {
	seconds float32
	moves   []Move
}

func (r *recordingAnimator) NavigateTo(_ context.Context, seconds float32, m Move) Result {
	r.seconds = seconds
	r.moves = append(r.moves, m)
	return Result{Steps: int(seconds * 30)}
}

func TestTimedMovesUseAnimator(t *testing.T) {
	c := newNavCamera(t)
	rec := &recordingAnimator{}
	c.SetAnimator(rec)
	ctx := context.Background()

	res := c.Navigate(ctx, 2, geom.V(1, 1, 1))
	assert.Equal(t, 60, res.Steps)
	require.Len(t, rec.moves, 1)
	assert.Equal(t, geom.V(1, 1, 1), *rec.moves[0].Center)

	c.NavigateAxis(ctx, 1, geom.V(0, 1, 0), 90)
	assert.Equal(t, float32(90), rec.moves[1].Degrees)

	c.NavigateAxis(ctx, 1, geom.V(0, 1, 0), 0)
	assert.Len(t, rec.moves, 2)

	c.NavigateDepth(ctx, 1, 30)
	assert.Equal(t, float32(30), *rec.moves[2].DepthPercent)

	c.NavTranslatePercent(ctx, 1, 10, -10)
	assert.Equal(t, float32(240), *rec.moves[3].XTrans)
	assert.Equal(t, float32(120), *rec.moves[3].YTrans)
}

func TestNavTranslatePercent(t *testing.T) {
	c := newNavCamera(t)
	c.NavTranslatePercent(context.Background(), 0, 10, -10)
	x, y := c.NavigationOffsetPercent()
	assert.InDelta(t, 10, x, 1e-3)
	assert.InDelta(t, -10, y, 1e-3)
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestCamera(t)
	c.RotateXYBy(30, -15)
	c.ZoomToPercent(250)
	c.TranslateToPercent('x', 12)
	snap := c.Snapshot()

	data, err := snap.Encode()
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap, decoded)

	other := NewCamera(DefaultConfig())
	other.SetScreenSize(400, 300)
	other.SetModel(geom.V(0, 0, 0), 5)
	other.Restore(decoded)

	got := other.Snapshot()
	for i := range snap.Rotation {
		assert.InDelta(t, snap.Rotation[i], got.Rotation[i], 1e-5)
	}
	assert.Equal(t, snap.ZoomPercent, got.ZoomPercent)
	assert.Equal(t, snap.Center, got.Center)
	assert.Equal(t, snap.Radius, got.Radius)
	assert.InDelta(t, 12, got.TranslationPercent[0], 1e-4)
}

func TestSnapshotRestoresNavigation(t *testing.T) {
	c := newNavCamera(t)
	c.SetNavigationDepthPercent(40)
	c.NavTranslatePercent(context.Background(), 0, 5, 5)
	snap := c.Snapshot()
	require.True(t, snap.Navigation)

	other := newTestCamera(t)
	other.Restore(snap)
	require.True(t, other.InNavigationMode())
	got := other.Snapshot()
	assert.InDelta(t, snap.NavDepthPercent, got.NavDepthPercent, 1e-2)
	assert.InDelta(t, snap.NavOffsetPercent[0], got.NavOffsetPercent[0], 1e-2)
	assert.InDelta(t, snap.NavOffsetPercent[1], got.NavOffsetPercent[1], 1e-2)
}

func TestDecodeSnapshotError(t *testing.T) {
	_, err := DecodeSnapshot([]byte("{not json"))
	assert.Error(t, err)
}

func TestMoveToText(t *testing.T) {
	c := newTestCamera(t)
	text := c.Snapshot().MoveToText(1)
	assert.True(t, strings.HasPrefix(text, "moveto 1 {0 0 1 0} 100 0 0 {1 2 3} 10 {"), text)
	assert.True(t, strings.HasSuffix(text, ";"), text)

	snap := Snapshot{
		Rotation:         geom.RotY(geom.Radians(90)),
		ZoomPercent:      150.456,
		Center:           geom.V(0, 0.5, -1),
		Radius:           4,
		NavOffsetPercent: [2]float32{1, -2},
		NavDepthPercent:  30,
	}
	assert.Equal(t, "moveto 0.5 {0 1000 0 90} 150.46 0 0 {0 0.5 -1} 4 {0 0 0} 1 -2 30;", snap.MoveToText(0.5))
}

func TestNavigationStateText(t *testing.T) {
	assert.Empty(t, Snapshot{}.NavigationStateText())

	snap := Snapshot{Navigation: true, NavCenter: geom.V(1, 2, 3), NavOffsetPercent: [2]float32{0, 5}, NavDepthPercent: 40}
	want := "# navigation state;\nnavigate 0 center {1 2 3};\nnavigate 0 translate 0 5;\nset navigationDepth 40;\n\n"
	assert.Equal(t, want, snap.NavigationStateText())
}
