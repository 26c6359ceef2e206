// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"pcb-ringroute/internal/app"
	"pcb-ringroute/internal/config"
	"pcb-ringroute/internal/preview"
	"pcb-ringroute/internal/report"
	"pcb-ringroute/internal/version"
	"pcb-ringroute/ui/canvas"
	"pcb-ringroute/ui/panels"
	"pcb-ringroute/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"
)

const prefKeyLastDir = "lastDirectory"

const (
	colorsLayer = "By layer"
	colorsNet   = "By net"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	boardSelect *widget.Select
	colorSelect *widget.RadioGroup

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Ringroute")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas()
	mw.canvas.SetZoom(mw.prefs.FloatWithFallback(prefs.KeyZoom, 1))
	mw.canvas.OnZoomChange(func(z float64) { mw.prefs.SetFloat(prefs.KeyZoom, z) })

	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.3)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with generation and view controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	generateBtn := widget.NewButton("Regenerate", mw.onGenerate)
	generateBtn.Importance = widget.HighImportance

	mw.boardSelect = widget.NewSelect(nil, func(string) {
		mw.prefs.SetInt(prefs.KeyBoard, mw.boardSelect.SelectedIndex())
		mw.renderPreview()
	})

	mw.colorSelect = widget.NewRadioGroup([]string{colorsLayer, colorsNet}, func(sel string) {
		mw.prefs.SetBool(prefs.KeyColorByNet, sel == colorsNet)
		mw.renderPreview()
	})
	mw.colorSelect.Horizontal = true
	if mw.prefs.Bool(prefs.KeyColorByNet, false) {
		mw.colorSelect.Selected = colorsNet
	} else {
		mw.colorSelect.Selected = colorsLayer
	}
	mw.syncBoards()

	return container.NewHBox(
		generateBtn,
		widget.NewSeparator(),
		widget.NewLabel("Board:"),
		mw.boardSelect,
		mw.colorSelect,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		widget.NewButton("Fit", mw.onToggleFitToWindow),
		widget.NewButton("1:1", mw.onActualSize),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Config...", mw.onOpenConfig),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("New Document", mw.onNewDocument),
		fyne.NewMenuItem("Open Document...", mw.onOpenDocument),
		fyne.NewMenuItem("Save Document", mw.onSaveDocument),
		fyne.NewMenuItem("Save Document As...", mw.onSaveDocumentAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Write Outputs", mw.onWriteOutputs),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	routeMenu := fyne.NewMenu("Route",
		fyne.NewMenuItem("Regenerate", mw.onGenerate),
		fyne.NewMenuItem("Erase", mw.onErase),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, routeMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventConfigLoaded, func(data interface{}) {
		if cfg, ok := data.(*config.Config); ok {
			mw.updateStatus("Configuration loaded: panel " + cfg.Layout.Panel)
		}
		mw.syncBoards()
	})

	mw.state.On(app.EventDocumentLoaded, func(data interface{}) {
		mw.updateTitle()
		mw.renderPreview()
	})

	mw.state.On(app.EventDocumentSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + path)
		}
		mw.updateTitle()
	})

	mw.state.On(app.EventGenerated, func(data interface{}) {
		rep, ok := data.(*report.Report)
		if !ok {
			return
		}
		mw.sidePanel.SetReport(rep)
		mw.renderPreview()
		mw.updateStatus(fmt.Sprintf("Generated in %s, %d issues", rep.Run.Duration, len(rep.Issues)))
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		mw.updateTitle()
	})

	mw.state.On(app.EventError, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Error: " + err.Error())
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) updateTitle() {
	title := "Ringroute"
	if mw.state.DocumentPath != "" {
		title += " - " + filepath.Base(mw.state.DocumentPath)
	}
	if mw.state.Modified {
		title += " *"
	}
	mw.SetTitle(title)
}

// syncBoards fills the board selector from the configured panel.
func (mw *MainWindow) syncBoards() {
	panel := mw.state.Config.Panel()
	names := make([]string, len(panel.Boards))
	for i, b := range panel.Boards {
		names[i] = fmt.Sprintf("%d: %s", b.Index, b.Name)
	}
	mw.boardSelect.Options = names
	idx := mw.prefs.Int(prefs.KeyBoard, 0)
	if idx >= len(names) {
		idx = 0
	}
	mw.boardSelect.SetSelectedIndex(idx)
}

// renderPreview draws the selected board of the current document.
func (mw *MainWindow) renderPreview() {
	doc := mw.state.Document
	idx := mw.boardSelect.SelectedIndex()
	if doc == nil || idx < 0 {
		return
	}
	cfg := mw.state.Config
	panel := cfg.Panel()
	if idx >= len(panel.Boards) {
		return
	}
	colors := preview.ColorByLayer
	if mw.colorSelect.Selected == colorsNet {
		colors = preview.ColorByNet
	}
	r := preview.Renderer{
		Panel: panel,
		Options: preview.Options{
			Scale:  cfg.Output.PreviewScale,
			Radius: cfg.OuterRadius() + 100,
			Colors: colors,
		},
	}
	mw.canvas.SetImage(r.RenderBoard(doc, panel.Boards[idx]))
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// openFile shows a file open dialog filtered to exts and calls fn with the path.
func (mw *MainWindow) openFile(exts []string, fn func(path string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		fn(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(exts))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// Menu action handlers

func (mw *MainWindow) onGenerate() {
	mw.updateStatus("Generating...")
	go func() {
		if _, err := mw.state.Generate(context.Background()); err != nil {
			mw.state.Logger.Error("generation failed", zap.Error(err))
			dialog.ShowError(err, mw.Window)
		}
	}()
}

func (mw *MainWindow) onErase() {
	res, err := mw.state.Erase(context.Background())
	if errors.Is(err, app.ErrNothingGenerated) {
		mw.updateStatus("Nothing to erase")
		return
	}
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.renderPreview()
	mw.updateStatus(fmt.Sprintf("Erased %d traces, %d vias", res.TracesRemoved, res.ViasRemoved))
}

func (mw *MainWindow) onOpenConfig() {
	mw.openFile([]string{".toml"}, func(path string) {
		if err := mw.state.LoadConfig(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastConfig, path)
	})
}

func (mw *MainWindow) onNewDocument() {
	mw.state.NewDocument("clock")
}

func (mw *MainWindow) onOpenDocument() {
	mw.openFile([]string{".json"}, func(path string) {
		if err := mw.state.LoadDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastDocument, path)
	})
}

func (mw *MainWindow) onSaveDocument() {
	if mw.state.DocumentPath == "" {
		mw.onSaveDocumentAs()
		return
	}
	if err := mw.state.SaveDocument(mw.state.DocumentPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveDocumentAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".json" {
			path += ".json"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastDocument, path)
	}, mw.Window)
	fd.SetFileName("clock.json")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onWriteOutputs() {
	rep := mw.state.LastReport
	if rep == nil {
		mw.updateStatus("Generate before writing outputs")
		return
	}
	if err := mw.state.WriteOutputs(context.Background(), rep); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	n := 0
	for _, paths := range rep.Outputs {
		n += len(paths)
	}
	mw.updateStatus(fmt.Sprintf("Wrote %d files to %s", n, mw.state.Config.Output.Dir))
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.FitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.ActualSize()
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.FitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Ringroute",
		fmt.Sprintf("Ringroute v%s\n\n"+
			"Copper generator for radial LED clock matrices.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// SavePreferences writes the viewer preferences to disk.
func (mw *MainWindow) SavePreferences() {
	if err := mw.prefs.Save(); err != nil {
		mw.state.Logger.Warn("failed to save preferences", zap.Error(err))
	}
}
