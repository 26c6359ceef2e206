// Package canvas provides a zoomable preview image canvas.
package canvas

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// ImageCanvas displays one rendered board with wheel zoom.
type ImageCanvas struct {
	widget.BaseWidget

	img    image.Image
	view   *fynecanvas.Image
	zoom   float64
	scroll *zoomScroll

	// Fit to window
	fitToWindow bool

	onZoomChange func(zoom float64)
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
	if zs.canvas.fitToWindow {
		zs.canvas.fit(size)
	}
}

// NewImageCanvas creates an empty canvas at 1:1 zoom.
func NewImageCanvas() *ImageCanvas {
	c := &ImageCanvas{zoom: 1}
	c.view = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	c.view.FillMode = fynecanvas.ImageFillStretch
	c.view.ScaleMode = fynecanvas.ImageScaleFastest
	c.scroll = newZoomScroll(container.NewWithoutLayout(c.view), c)
	c.ExtendBaseWidget(c)
	return c
}

func (c *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.scroll)
}

// Container returns the canvas object to place in a layout.
func (c *ImageCanvas) Container() fyne.CanvasObject {
	return c
}

// SetImage replaces the displayed image, keeping the zoom.
func (c *ImageCanvas) SetImage(img image.Image) {
	c.img = img
	c.view.Image = img
	if c.fitToWindow {
		c.fit(c.scroll.Size())
		return
	}
	c.applyZoom()
}

// Zoom returns the current zoom factor.
func (c *ImageCanvas) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the zoom factor, clamped to the supported range.
func (c *ImageCanvas) SetZoom(z float64) {
	c.zoom = math.Max(minZoom, math.Min(maxZoom, z))
	c.applyZoom()
	if c.onZoomChange != nil {
		c.onZoomChange(c.zoom)
	}
}

// ZoomIn zooms in one step and leaves fit-to-window mode.
func (c *ImageCanvas) ZoomIn() {
	c.fitToWindow = false
	c.SetZoom(c.zoom * zoomStep)
}

// ZoomOut zooms out one step and leaves fit-to-window mode.
func (c *ImageCanvas) ZoomOut() {
	c.fitToWindow = false
	c.SetZoom(c.zoom / zoomStep)
}

// ActualSize shows the image at 1:1.
func (c *ImageCanvas) ActualSize() {
	c.fitToWindow = false
	c.SetZoom(1)
}

// SetFitToWindow toggles scaling the image to the visible area.
func (c *ImageCanvas) SetFitToWindow(fit bool) {
	c.fitToWindow = fit
	if fit {
		c.fit(c.scroll.Size())
	}
}

// FitToWindow reports whether fit-to-window mode is on.
func (c *ImageCanvas) FitToWindow() bool {
	return c.fitToWindow
}

// OnZoomChange sets a callback invoked after every zoom change.
func (c *ImageCanvas) OnZoomChange(fn func(zoom float64)) {
	c.onZoomChange = fn
}

func (c *ImageCanvas) fit(size fyne.Size) {
	if c.img == nil || size.Width <= 0 || size.Height <= 0 {
		return
	}
	b := c.img.Bounds()
	z := math.Min(float64(size.Width)/float64(b.Dx()), float64(size.Height)/float64(b.Dy()))
	c.SetZoom(z)
}

func (c *ImageCanvas) applyZoom() {
	if c.img == nil {
		return
	}
	b := c.img.Bounds()
	size := fyne.NewSize(float32(float64(b.Dx())*c.zoom), float32(float64(b.Dy())*c.zoom))
	c.view.Resize(size)
	c.view.Move(fyne.NewPos(0, 0))
	c.view.Refresh()
	c.scroll.scroll.Refresh()
}
