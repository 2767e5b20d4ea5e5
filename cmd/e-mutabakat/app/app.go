package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/model"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/surface"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
	log "github.com/sirupsen/logrus"
)

var (
	ErrBusy           = errors.New("another operation is still running")
	ErrUploadTooLarge = errors.New("upload exceeds the size limit")
	ErrNoDocuments    = errors.New("no uploadable documents")
)

// BackendError carries a failure the backend reported with success=false.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

const (
	ConfirmClearMessage = "Tüm dosyalar silinecek. Emin misiniz?"
	VknRequiredMessage  = "Satış fatura listesi için VKN zorunludur!"
	LogClearedMessage   = "✨ Log temizlendi"
	BusyMessage         = "⏳ Önceki işlem sürüyor, lütfen bekleyin"
	NoDocumentsMessage  = "❌ Yüklenecek belge bulunamadı (zip, rar, xml, pdf)"
	defaultWorkbookName = "KDV_Listesi.xlsx"
	clearFailedFallback = "Dosya listesi temizlenemedi"
	unknownBackendError = "Bilinmeyen hata"
)

// View is what a front-end renders. Calls may arrive from any goroutine.
type View interface {
	SetLoading(active bool)
	Confirm(message string) bool
	Alert(message string)
	RenderFiles(list FileList)
}

// Backend is the subset of the HTTP client the App drives.
type Backend interface {
	Upload(ctx context.Context, paths []string) (*model.UploadResponse, error)
	Files(ctx context.Context) (*model.FilesResponse, error)
	ClearFiles(ctx context.Context) (*model.StatusResponse, error)
	GenerateKdvExcel(ctx context.Context) (*model.ExcelResponse, error)
	GenerateKdvWeb(ctx context.Context, vkn string) (*model.WebResponse, error)
	GenerateSatisWeb(ctx context.Context, vkn string) (*model.WebResponse, error)
	Download(ctx context.Context, ref, dest string) (int64, error)
	Resolve(ref string) (string, error)
}

type Options struct {
	DownloadDir    string
	MaxUploadBytes int64
}

// App implements every user operation. Each operation performs its backend
// calls sequentially and blocks until they finish; only one runs at a time.
type App struct {
	backend    Backend
	view       View
	logs       *LogPanel
	dispatcher *Dispatcher
	surfaces   surface.Provider
	fallback   surface.Navigator
	options    Options
	busy       atomic.Bool
}

func New(backend Backend, view View, logs *LogPanel, surfaces surface.Provider, fallback surface.Navigator, options Options) *App {
	if surfaces == nil {
		surfaces = surface.Unavailable{}
	}
	if fallback == nil {
		fallback = surface.SystemBrowser{}
	}
	return &App{
		backend:    backend,
		view:       view,
		logs:       logs,
		dispatcher: NewDispatcher(),
		surfaces:   surfaces,
		fallback:   fallback,
		options:    options,
	}
}

func (a *App) Logs() *LogPanel {
	return a.logs
}

// Busy reports whether an operation is in flight.
func (a *App) Busy() bool {
	return a.busy.Load()
}

func (a *App) begin(operation string) error {
	if !a.busy.CompareAndSwap(false, true) {
		log.WithField("operation", operation).Debug("Rejected while busy")
		a.logs.Append(BusyMessage, Info)
		return ErrBusy
	}
	return nil
}

func (a *App) end() {
	a.busy.Store(false)
}

func (a *App) info(message string) {
	a.logs.Append(message, Info)
	log.Info(strings.TrimSpace(message))
}

func (a *App) fail(message string) {
	a.logs.Append(message, Error)
	log.Error(strings.TrimSpace(message))
}

func (a *App) failErr(err error) {
	a.fail("❌ Hata: " + err.Error())
}

func (a *App) appendBackendLogs(lines []string) {
	for _, line := range lines {
		a.info(line)
	}
}

func (a *App) ClearLogs() {
	a.logs.Clear(LogClearedMessage)
}

// UploadFiles uploads the documents found under paths and refreshes the list.
// Nothing is sent when no uploadable document is found.
func (a *App) UploadFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	files, total := CollectFiles(paths)
	if len(files) == 0 {
		a.fail(NoDocumentsMessage)
		return ErrNoDocuments
	}
	if err := a.begin("upload"); err != nil {
		return err
	}
	defer a.end()

	if a.options.MaxUploadBytes > 0 && total > a.options.MaxUploadBytes {
		a.fail(fmt.Sprintf("❌ Yükleme hatası: toplam boyut %s, sınır %s",
			utils.FormatFileSize(total), utils.FormatFileSize(a.options.MaxUploadBytes)))
		return ErrUploadTooLarge
	}

	a.view.SetLoading(true)
	res, err := a.backend.Upload(ctx, files)
	a.view.SetLoading(false)

	if err != nil {
		a.failErr(err)
		return err
	}
	if !res.Success {
		a.fail("❌ Yükleme hatası: " + res.Error)
		return &BackendError{Message: res.Error}
	}
	a.info(fmt.Sprintf("✅ %d dosya yüklendi", len(res.Files)))
	return a.refresh(ctx)
}

// RefreshFileList redraws the file list from the backend.
func (a *App) RefreshFileList(ctx context.Context) error {
	if err := a.begin("refresh"); err != nil {
		return err
	}
	defer a.end()
	return a.refresh(ctx)
}

func (a *App) refresh(ctx context.Context) error {
	res, err := a.backend.Files(ctx)
	if err != nil {
		a.failErr(err)
		return err
	}
	a.view.RenderFiles(RenderFileList(res.Files))
	return nil
}

// ClearFiles removes every uploaded file after the user confirms.
func (a *App) ClearFiles(ctx context.Context) error {
	if err := a.begin("clear"); err != nil {
		return err
	}
	defer a.end()

	if !a.view.Confirm(ConfirmClearMessage) {
		return nil
	}

	a.view.SetLoading(true)
	res, err := a.backend.ClearFiles(ctx)
	a.view.SetLoading(false)

	if err != nil {
		a.failErr(err)
		return err
	}
	if !res.Success {
		message := res.Error
		if message == "" {
			message = clearFailedFallback
		}
		a.fail("❌ Hata: " + message)
		return &BackendError{Message: message}
	}
	a.info("🗑️ Dosya listesi temizlendi")
	return a.refresh(ctx)
}

// GenerateKdvExcel builds the VAT workbook and saves it into the download
// directory.
func (a *App) GenerateKdvExcel(ctx context.Context) error {
	if err := a.begin("kdv-excel"); err != nil {
		return err
	}
	defer a.end()

	a.view.SetLoading(true)
	res, err := a.backend.GenerateKdvExcel(ctx)
	a.view.SetLoading(false)

	if err != nil {
		a.failErr(err)
		return err
	}
	a.appendBackendLogs(res.Logs)
	if !res.Success {
		a.fail("❌ Hata: " + backendMessage(res.Error))
		return &BackendError{Message: backendMessage(res.Error)}
	}
	a.info(fmt.Sprintf("\n📊 Excel dosyası hazır: %d fatura", res.InvoiceCount))

	dest := filepath.Join(a.options.DownloadDir, workbookName(res.Filename))
	if _, err := a.backend.Download(ctx, res.File, dest); err != nil {
		a.failErr(err)
		return err
	}
	summary, err := model.InspectWorkbook(dest)
	if err != nil {
		a.failErr(err)
		return err
	}
	a.info(fmt.Sprintf("💾 %s kaydedildi (%d sayfa, %d satır)", dest, len(summary.Sheets), summary.Rows))
	return nil
}

func workbookName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return defaultWorkbookName
	}
	return base
}

func backendMessage(message string) string {
	if message == "" {
		return unknownBackendError
	}
	return message
}

// OpenVknModal starts the dialog for action and returns its copy.
func (a *App) OpenVknModal(action Action) (Prompt, error) {
	return a.dispatcher.Open(action)
}

// SubmitVkn validates the dialog input. It returns false when the dialog must
// stay open (the user has already been alerted) or nothing was pending.
func (a *App) SubmitVkn(input string) (Submission, bool) {
	submission, err := a.dispatcher.Submit(input)
	switch {
	case errors.Is(err, ErrVknRequired):
		a.view.Alert(VknRequiredMessage)
		return Submission{}, false
	case err != nil:
		return Submission{}, false
	}
	return submission, true
}

func (a *App) CancelVkn() {
	a.dispatcher.Cancel()
}

// PendingAction is the action the VKN dialog was opened for.
func (a *App) PendingAction() Action {
	return a.dispatcher.Pending()
}

// Dispatch runs the report flow for an accepted submission.
func (a *App) Dispatch(ctx context.Context, submission Submission) error {
	switch submission.Action {
	case ActionKdv:
		return a.GenerateKdvWeb(ctx, submission.Vkn)
	case ActionSatis:
		return a.GenerateSatisWeb(ctx, submission.Vkn)
	}
	return ErrNoAction
}
