package ui

import (
	"context"
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/dixieflatline76/ClearView/asset"
	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/pkg/compare"
	"github.com/dixieflatline76/ClearView/pkg/editor"
	"github.com/dixieflatline76/ClearView/pkg/imagesource"
	"github.com/dixieflatline76/ClearView/pkg/workspace"
	"github.com/dixieflatline76/ClearView/util/log"
)

// editorFactory builds the editor for the current settings.
type editorFactory func(ctx context.Context, s config.Settings) (editor.Editor, error)

// ClearViewApp represents the application
type ClearViewApp struct {
	app       fyne.App
	window    fyne.Window
	assetMgr  *asset.Manager
	cfg       *config.AppConfig
	ws        *workspace.Workspace
	newEditor editorFactory

	ctx    context.Context
	cancel context.CancelFunc

	body      *fyne.Container
	poweredBy *widget.Label
	viewer    *compare.Viewer
	current   workspace.Status

	downloadDir func() string
}

var (
	instance *ClearViewApp // Singleton instance of the application
	once     sync.Once     // Ensures the singleton is created only once
)

// GetInstance returns the singleton instance of the application
func GetInstance() *ClearViewApp {
	once.Do(func() {
		a := app.NewWithID(config.AppID)
		cfg := config.NewAppConfig(a.Preferences(), config.LoadEnv())
		instance = newClearViewApp(a, cfg, editor.NewFromSettings)
		instance.verifyEULA()
	})
	return instance
}

func newClearViewApp(a fyne.App, cfg *config.AppConfig, newEditor editorFactory) *ClearViewApp {
	ctx, cancel := context.WithCancel(context.Background())
	ca := &ClearViewApp{
		app:         a,
		assetMgr:    asset.NewManager(),
		cfg:         cfg,
		newEditor:   newEditor,
		ctx:         ctx,
		cancel:      cancel,
		body:        container.NewStack(),
		poweredBy:   widget.NewLabel(""),
		downloadDir: imagesource.DefaultDownloadDir,
	}
	ca.poweredBy.Importance = widget.LowImportance

	if icon := ca.assetMgr.AppIcon(); icon != nil {
		a.SetIcon(icon)
	}

	ca.ws = workspace.New(nil, nil)
	ca.applySettings()
	ca.ws.OnChange(func(s workspace.Status) {
		fyne.Do(func() { ca.show(s) })
	})

	ca.window = a.NewWindow(config.AppName)
	ca.window.SetMainMenu(ca.createMainMenu())
	ca.window.SetContent(container.NewBorder(
		container.NewVBox(ca.createHeader(), widget.NewSeparator()),
		nil, nil, nil, ca.body))
	ca.window.SetOnDropped(ca.dropped)
	ca.registerShortcuts()
	ca.window.SetOnClosed(ca.cancel)
	ca.window.Resize(fyne.NewSize(windowWidth, windowHeight))
	ca.window.CenterOnScreen()

	ca.show(ca.ws.Status())
	return ca
}

// applySettings rebuilds the validator and the editor from the stored
// preferences and applies the theme.
func (ca *ClearViewApp) applySettings() {
	s := ca.cfg.Settings()
	ca.ws.SetValidator(imagesource.NewValidator(s.MaxUploadBytes))

	ed, err := ca.newEditor(ca.ctx, s)
	switch {
	case errors.Is(err, editor.ErrMissingAPIKey):
		log.Println("No Gemini API key configured")
		ed = nil
	case err != nil:
		log.Printf("Failed to create editor: %v", err)
		ed = nil
	}
	ca.ws.SetEditor(ed)

	ca.poweredBy.SetText("Powered by " + s.Model)
	ca.app.Settings().SetTheme(themeFor(ca.cfg.GetTheme()))
}

func (ca *ClearViewApp) createMainMenu() *fyne.MainMenu {
	openItem := fyne.NewMenuItem("Open Image...", ca.openFileDialog)
	openItem.Shortcut = menuShortcut(fyne.KeyO)
	saveItem := fyne.NewMenuItem("Save Result As...", ca.saveAs)
	prefsItem := fyne.NewMenuItem("Preferences", ca.CreatePreferencesWindow)
	aboutItem := fyne.NewMenuItem("About ClearView", ca.showAbout)
	updateItem := fyne.NewMenuItem("Check for Updates", func() {
		go ca.checkForUpdates(true)
	})
	return fyne.NewMainMenu(
		fyne.NewMenu("File", openItem, saveItem, fyne.NewMenuItemSeparator(), prefsItem),
		fyne.NewMenu("Help", updateItem, aboutItem),
	)
}

func (ca *ClearViewApp) createHeader() fyne.CanvasObject {
	title := widget.NewLabel("ClearView AI")
	title.TextStyle = fyne.TextStyle{Bold: true}
	left := container.NewHBox(title)
	if icon := ca.assetMgr.AppIcon(); icon != nil {
		left.Objects = append([]fyne.CanvasObject{widget.NewIcon(icon)}, left.Objects...)
	}
	return container.NewBorder(nil, nil, left, ca.poweredBy)
}

// show swaps the body for the view of s. It must run on the fyne thread.
func (ca *ClearViewApp) show(s workspace.Status) {
	if ca.viewer != nil {
		ca.viewer.Close()
		ca.viewer = nil
	}
	ca.current = s
	ca.body.Objects = []fyne.CanvasObject{ca.render(s)}
	ca.body.Refresh()
}

func (ca *ClearViewApp) render(s workspace.Status) fyne.CanvasObject {
	switch s := s.(type) {
	case workspace.Idle:
		return ca.renderIdle(s)
	case workspace.Uploading:
		return ca.renderUploading(s)
	case workspace.Previewing:
		return ca.renderPreviewing(s)
	case workspace.Processing:
		return ca.renderProcessing(s)
	case workspace.Success:
		return ca.renderSuccess(s)
	case workspace.Failed:
		return ca.renderFailed(s)
	}
	log.Printf("No view for status %T", s)
	return widget.NewLabel("")
}

func (ca *ClearViewApp) openFileDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ca.window)
			return
		}
		if r == nil {
			return
		}
		go ca.selectReader(r)
	}, ca.window)
	d.SetFilter(storage.NewExtensionFileFilter(acceptedExtensions))
	d.Show()
}

func (ca *ClearViewApp) dropped(_ fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	if len(uris) > 1 {
		log.Printf("Dropped %d files, using %s", len(uris), uris[0].Name())
	}
	go func() {
		r, err := storage.Reader(uris[0])
		if err != nil {
			log.Printf("Failed to open dropped file: %v", err)
			return
		}
		ca.selectReader(r)
	}()
}

// selectReader hands r to the workspace and closes it. Validation errors
// surface as the Idle notice.
func (ca *ClearViewApp) selectReader(r fyne.URIReadCloser) {
	defer r.Close()
	if err := ca.ws.Select(r.URI().Name(), r); err != nil {
		log.Debugf("Select %s: %v", r.URI().Name(), err)
	}
}

func (ca *ClearViewApp) process() {
	if err := ca.ws.Process(ca.ctx); err != nil {
		log.Printf("Process: %v", err)
	}
}

func (ca *ClearViewApp) tryAgain() {
	if err := ca.ws.TryAgain(ca.ctx); err != nil {
		log.Printf("Try again: %v", err)
	}
}

func (ca *ClearViewApp) back() {
	if err := ca.ws.Back(); err != nil {
		log.Printf("Back: %v", err)
	}
}

// download saves the result into the default download directory.
func (ca *ClearViewApp) download() {
	ca.downloadTo(ca.downloadDir())
}

func (ca *ClearViewApp) saveAs() {
	if _, ok := ca.ws.Status().(workspace.Success); !ok {
		dialog.ShowInformation("Nothing to save", "Process an image first.", ca.window)
		return
	}
	dialog.ShowFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ca.window)
			return
		}
		if dir == nil {
			return
		}
		ca.downloadTo(dir.Path())
	}, ca.window)
}

func (ca *ClearViewApp) downloadTo(dir string) {
	path, err := ca.ws.Download(dir)
	if err != nil {
		dialog.ShowError(err, ca.window)
		return
	}
	dialog.ShowInformation("Image saved", path, ca.window)
}

// Window returns the main window.
func (ca *ClearViewApp) Window() fyne.Window {
	return ca.window
}

// Preferences returns the preferences for the application
func (ca *ClearViewApp) Preferences() fyne.Preferences {
	return ca.app.Preferences()
}

// Run shows the main window and runs the application until it quits.
func (ca *ClearViewApp) Run() {
	if ca.cfg.GetUpdateCheckEnabled() {
		go ca.checkForUpdates(false)
	}
	ca.window.ShowAndRun()
	ca.cancel()
	ca.ws.Reset()
	ca.ws.Wait()
}
