// Command drawerdemo is an interactive playground for the bottom drawer.
//
// Drag the panel with the mouse to resize it, drag inside the fully
// expanded panel to scroll the list, and flick upward at full expansion
// for an inertial scroll. Keys: C collapses, E expands, S scrolls the list
// to row 10. Options are read from drawer.yaml in the working directory
// when present.
package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/credeo/bottomdrawer/pkg/animation"
	"github.com/credeo/bottomdrawer/pkg/drawer"
	"github.com/credeo/bottomdrawer/pkg/gesture"
	"github.com/credeo/bottomdrawer/pkg/scrollable"
)

const (
	windowWidth  = 420
	windowHeight = 760
	rowHeight    = 28.0
)

var (
	colorBackground = color.RGBA{R: 0x12, G: 0x14, B: 0x1a, A: 0xff}
	colorPanel      = color.RGBA{R: 0x22, G: 0x26, B: 0x30, A: 0xff}
	colorHandle     = color.RGBA{R: 0x4a, G: 0x50, B: 0x5e, A: 0xff}
	colorRow        = color.RGBA{R: 0x2a, G: 0x2f, B: 0x3a, A: 0xff}
	colorText       = color.RGBA{R: 0xd8, G: 0xdc, B: 0xe4, A: 0xff}
	colorTextMuted  = color.RGBA{R: 0x8a, G: 0x90, B: 0x9e, A: 0xff}
)

var face = text.NewGoXFace(basicfont.Face7x13)

type game struct {
	drawer     *drawer.Drawer
	list       *scrollable.ListPosition
	controller *drawer.Controller
	recognizer *gesture.VerticalDragRecognizer

	width  int
	height int

	// dragOnDrawer gates recognizer callbacks to drags that began on the
	// panel; drags starting above it are ignored.
	dragOnDrawer bool

	status string
}

func newGame(d *drawer.Drawer, list *scrollable.ListPosition, ctrl *drawer.Controller) *game {
	g := &game{
		drawer:     d,
		list:       list,
		controller: ctrl,
		recognizer: gesture.NewVerticalDragRecognizer(),
		width:      windowWidth,
		height:     windowHeight,
		status:     "drag the panel",
	}

	g.recognizer.OnStart = func(details gesture.DragStartDetails) {
		top := float64(g.height) - d.DisplayHeight()
		if details.Position.Y < top {
			g.dragOnDrawer = false
			return
		}
		g.dragOnDrawer = true
		d.DragStart(details.Position.Y - top)
	}
	g.recognizer.OnUpdate = func(details gesture.DragUpdateDetails) {
		if g.dragOnDrawer {
			d.DragUpdate(details.PrimaryDelta)
		}
	}
	g.recognizer.OnEnd = func(details gesture.DragEndDetails) {
		if g.dragOnDrawer {
			d.DragEnd(details.PrimaryVelocity)
			g.dragOnDrawer = false
		}
	}
	g.recognizer.OnCancel = func() {
		if g.dragOnDrawer {
			d.DragEnd(0)
			g.dragOnDrawer = false
		}
	}

	d.OnHeightChanged = func(height, fraction float64) {
		g.status = fmt.Sprintf("height %.0fpx (%.0f%%)", height, fraction*100)
	}
	d.OnSnapEnd = func(stopIndex int) {
		g.status = fmt.Sprintf("settled at stop %d", stopIndex)
	}

	return g
}

func (g *game) Update() error {
	g.handlePointer()
	g.handleKeys()

	g.drawer.Layout(float64(g.height))
	g.updateScrollExtents()

	animation.StepTickers()
	return nil
}

func (g *game) handlePointer() {
	x, y := ebiten.CursorPosition()
	pos := gesture.Offset{X: float64(x), Y: float64(y)}
	now := time.Now()

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.recognizer.Handle(gesture.PointerEvent{Phase: gesture.PointerDown, Position: pos, Time: now})
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.recognizer.Handle(gesture.PointerEvent{Phase: gesture.PointerUp, Position: pos, Time: now})
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.recognizer.Handle(gesture.PointerEvent{Phase: gesture.PointerMove, Position: pos, Time: now})
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.list.JumpTo(g.list.Offset() - wheelY*24)
	}
}

func (g *game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.controller.Collapse(400*time.Millisecond, animation.EaseInOut, true)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.controller.Expand(400*time.Millisecond, animation.EaseInOut)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.controller.ScrollTo(9*rowHeight, 600*time.Millisecond, animation.EaseInOut)
	}
}

// updateScrollExtents keeps the list's scroll range in sync with the
// drawer's animated height, so the maximum offset shrinks as the visible
// window grows.
func (g *game) updateScrollExtents() {
	opts := g.drawer.Options()
	viewport := g.drawer.DisplayHeight() - opts.HeaderHeight - 2*opts.ListPadding
	content := rowHeight * float64(opts.Len())
	maxScroll := content - viewport
	if maxScroll < 0 {
		maxScroll = 0
	}
	g.list.SetExtents(0, maxScroll)
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	drawText(screen, "drag / flick the panel  |  C collapse  E expand  S scroll to row 10", 12, 16, colorTextMuted)
	drawText(screen, g.status, 12, 36, colorText)

	opts := g.drawer.Options()
	w := float64(g.width)
	display := g.drawer.DisplayHeight()
	top := float64(g.height) - display

	vector.DrawFilledRect(screen, 0, float32(top), float32(w), float32(display), colorPanel, false)

	// Grab handle centered in the header.
	handleW := 48.0
	vector.DrawFilledRect(screen,
		float32(w/2-handleW/2), float32(top+opts.HeaderHeight/2-2),
		float32(handleW), 4, colorHandle, false)

	g.drawList(screen, top+opts.HeaderHeight)
}

func (g *game) drawList(screen *ebiten.Image, listTop float64) {
	clip := screen.SubImage(image.Rect(0, int(listTop), g.width, g.height)).(*ebiten.Image)

	opts := g.drawer.Options()
	rowW := float64(g.width) - 2*opts.ListPadding
	y := listTop + opts.ListPadding - g.list.Offset()
	for i := 0; i < opts.Len(); i++ {
		if y+rowHeight >= listTop && y <= float64(g.height) {
			vector.DrawFilledRect(clip,
				float32(opts.ListPadding), float32(y),
				float32(rowW), float32(rowHeight-4), colorRow, false)
			drawText(clip, fmt.Sprint(opts.ItemAt(i)), opts.ListPadding+10, y+7, colorText)
		}
		y += rowHeight
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func main() {
	opts, err := drawer.LoadOptions(".")
	if err != nil {
		log.Fatalf("Failed to load drawer options: %v", err)
	}
	opts.ItemBuilder = func(i int) any { return fmt.Sprintf("Row %d", i+1) }
	opts.ItemCount = 40

	d, err := drawer.New(opts)
	if err != nil {
		log.Fatalf("Failed to create drawer: %v", err)
	}

	list := scrollable.NewListPosition()
	d.AttachScrollable(list)

	ctrl := drawer.NewController()
	d.AttachController(ctrl)

	g := newGame(d, list, ctrl)

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Bottom Drawer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
