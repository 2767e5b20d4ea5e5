//go:build windows

package ui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/app"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/config"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/surface"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
	"github.com/lxn/walk"
	"github.com/lxn/walk/declarative"
	"github.com/lxn/win"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	log "github.com/sirupsen/logrus"
)

const documentFilter = "Belgeler (*.zip;*.rar;*.xml;*.pdf)|*.zip;*.rar;*.xml;*.pdf"

func openLink(link *walk.LinkLabelLink) {
	if err := surface.OpenBrowser(link.URL()); err != nil {
		log.Error(err)
	}
}

type window struct {
	cfg         *config.AppConfig
	app         *app.App
	view        *windowView
	mainWindow  *walk.MainWindow
	logEdit     *walk.TextEdit
	updateLabel *walk.LinkLabel
	pickerOpen  atomic.Bool
	latest      *selfupdate.Release
}

//nolint:funlen
func StartUI(cfg *config.AppConfig) error {
	w := &window{cfg: cfg, view: &windowView{tableModel: new(FileListModel)}}

	application, err := app.FromConfig(cfg, w.view, app.SurfaceProvider(cfg))
	if err != nil {
		return err
	}
	w.app = application

	var clearBtn, kdvExcelBtn, kdvWebBtn, satisWebBtn *walk.PushButton

	err = declarative.MainWindow{
		AssignTo: &w.mainWindow,
		Title:    "e-Mutabakat",
		MinSize:  declarative.Size{Width: 700, Height: 400},
		Size:     declarative.Size{Width: 1100, Height: 760},
		Layout:   declarative.Grid{Columns: 1},
		OnDropFiles: func(files []string) {
			go w.upload(files)
		},
		Children: []declarative.Widget{
			declarative.VSplitter{
				StretchFactor: 150,
				Children: []declarative.Widget{
					declarative.Composite{
						Layout:        declarative.VBox{MarginsZero: true},
						StretchFactor: 20,
						Children: []declarative.Widget{
							declarative.GroupBox{
								Title:  "1. Belgeleri Yükleyin",
								Layout: declarative.HBox{},
								OnMouseDown: func(x, y int, button walk.MouseButton) {
									if button == walk.LeftButton {
										w.pickFiles()
									}
								},
								Children: []declarative.Widget{
									declarative.TextLabel{
										Alignment: declarative.AlignHNearVCenter,
										Text:      "ZIP, RAR, XML veya PDF dosyalarını pencereye sürükleyin ya da tıklayın.",
									},
									declarative.HSpacer{},
									declarative.Label{AssignTo: &w.view.loading, Text: "⏳ İşleniyor...", Visible: false},
									declarative.PushButton{
										AssignTo:  &w.view.dropButton,
										Text:      "Dosya Seç",
										MinSize:   declarative.Size{Width: 100},
										OnClicked: w.pickFiles,
									},
								},
							},
							declarative.GroupBox{
								Title:         "2. Yüklenen Dosyalar",
								Layout:        declarative.VBox{},
								StretchFactor: 19,
								Children: []declarative.Widget{
									declarative.TableView{
										StretchFactor:    18,
										AlternatingRowBG: true,
										ColumnsOrderable: true,
										Columns: []declarative.TableViewColumn{
											{Title: "Dosya", Width: 420},
											{Title: "Boyut", Width: 90, Alignment: declarative.AlignFar},
											{Title: "Yüklenme", Width: 140},
										},
										Model: w.view.tableModel,
									},
									declarative.Composite{
										Layout: declarative.HBox{MarginsZero: true},
										Children: []declarative.Widget{
											declarative.Label{AssignTo: &w.view.countLabel, Text: "0 dosya"},
											declarative.HSpacer{},
											declarative.Composite{
												AssignTo: &w.view.actions,
												Visible:  false,
												Layout:   declarative.HBox{MarginsZero: true},
												Children: []declarative.Widget{
													declarative.PushButton{
														AssignTo: &clearBtn,
														Text:     "🗑️ Temizle",
														OnClicked: func() {
															go w.run("clear", w.app.ClearFiles)
														},
													},
													declarative.PushButton{
														AssignTo: &kdvExcelBtn,
														Text:     "📊 KDV Excel",
														OnClicked: func() {
															go w.run("kdv-excel", w.app.GenerateKdvExcel)
														},
													},
													declarative.PushButton{
														AssignTo: &kdvWebBtn,
														Text:     "🌐 KDV Web Düzenleyici",
														OnClicked: func() {
															w.promptVkn(app.ActionKdv)
														},
													},
													declarative.PushButton{
														AssignTo: &satisWebBtn,
														Text:     "💰 Satış Listesi",
														OnClicked: func() {
															w.promptVkn(app.ActionSatis)
														},
													},
												},
											},
										},
									},
								},
							},
						},
					},
					declarative.GroupBox{
						Title:         "İşlem Günlüğü",
						Layout:        declarative.VBox{},
						StretchFactor: 10,
						Children: []declarative.Widget{
							declarative.TextEdit{
								AssignTo:      &w.logEdit,
								StretchFactor: 10,
								ReadOnly:      true,
								VScroll:       true,
							},
							declarative.Composite{
								Layout: declarative.HBox{MarginsZero: true},
								Children: []declarative.Widget{
									declarative.HSpacer{},
									declarative.PushButton{
										Text:      "Logu Temizle",
										OnClicked: w.app.ClearLogs,
									},
								},
							},
						},
					},
				},
			},
			declarative.Composite{
				Layout: declarative.HBox{MarginsZero: true, Spacing: 2},
				Name:   "Footer",
				Children: []declarative.Widget{
					declarative.LinkLabel{
						Text:            "Sunucu: <a href=\"" + cfg.BaseURL + "\">" + cfg.BaseURL + "</a>",
						OnLinkActivated: openLink,
					},
					declarative.HSpacer{},
					declarative.LinkLabel{
						Font:            declarative.Font{Bold: true, Underline: true},
						Visible:         false,
						AssignTo:        &w.updateLabel,
						OnLinkActivated: w.onUpdateClicked,
						Text:            "Yeni sürüm mevcut: v%v - <a>Güncellemek için tıklayın</a>",
					},
					declarative.HSpacer{},
					declarative.Label{Text: utils.Version(), Enabled: false},
				},
			},
		},
	}.Create()
	if err != nil {
		return err
	}

	w.view.mainWindow = w.mainWindow
	w.view.actionBtns = []*walk.PushButton{clearBtn, kdvExcelBtn, kdvWebBtn, satisWebBtn}

	idler := utils.NewIdler(100*time.Millisecond, func() {
		w.mainWindow.Synchronize(w.renderLogs)
	})
	w.app.Logs().Subscribe(func(app.LogEntry) { idler.Call() })

	if runningWithAdminPrivileges() {
		walk.MsgBox(w.mainWindow, "Yönetici modu",
			"Windows güvenlik kısıtlamaları nedeniyle yönetici modunda sürükle-bırak çalışmaz. "+
				"\"Dosya Seç\" düğmesini kullanın.",
			walk.MsgBoxOK|walk.MsgBoxIconWarning)
	}

	go func() {
		w.view.SetLoading(true)
		defer w.view.SetLoading(false)
		w.run("refresh", w.app.RefreshFileList)
	}()
	if cfg.CheckUpdates {
		go w.checkForUpdate()
	}

	w.mainWindow.Run()
	return nil
}

func (w *window) run(operation string, op func(ctx context.Context) error) {
	if err := op(context.Background()); err != nil && !errors.Is(err, app.ErrBusy) {
		log.WithField("operation", operation).Debug(err)
	}
}

func (w *window) upload(files []string) {
	w.run("upload", func(ctx context.Context) error {
		return w.app.UploadFiles(ctx, files)
	})
}

// pickFiles opens the native file dialog. Clicks arriving while it is open
// are ignored.
func (w *window) pickFiles() {
	if !w.pickerOpen.CompareAndSwap(false, true) {
		return
	}
	defer w.pickerOpen.Store(false)

	dlg := walk.FileDialog{Title: "Dosya Seç", Filter: documentFilter}
	accepted, err := dlg.ShowOpenMultiple(w.mainWindow)
	if err != nil {
		log.Error(err)
		return
	}
	if accepted && len(dlg.FilePaths) > 0 {
		go w.upload(dlg.FilePaths)
	}
}

func (w *window) promptVkn(action app.Action) {
	prompt, err := w.app.OpenVknModal(action)
	if err != nil {
		log.Error(err)
		return
	}

	var submission app.Submission
	accepted, err := runVknDialog(w.mainWindow, prompt, func(input string) bool {
		s, ok := w.app.SubmitVkn(input)
		if ok {
			submission = s
		}
		return ok
	})
	if err != nil {
		log.Error(err)
	}
	if !accepted {
		w.app.CancelVkn()
		return
	}
	go w.run(action.String(), func(ctx context.Context) error {
		return w.app.Dispatch(ctx, submission)
	})
}

func (w *window) renderLogs() {
	entries := w.app.Logs().Entries()
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Line())
	}
	text := strings.ReplaceAll(strings.Join(lines, "\n"), "\n", "\r\n")
	_ = w.logEdit.SetText(text)
	w.logEdit.SetTextSelection(w.logEdit.TextLength(), w.logEdit.TextLength())
	w.logEdit.ScrollToCaret()
}

func (w *window) checkForUpdate() {
	latest, upToDate := utils.CheckUpdate()
	if upToDate || latest == nil {
		return
	}
	w.mainWindow.Synchronize(func() {
		w.latest = latest
		_ = w.updateLabel.SetText(strings.ReplaceAll(w.updateLabel.Text(), "%v", latest.Version.String()))
		w.updateLabel.SetVisible(true)
	})
}

func (w *window) onUpdateClicked(*walk.LinkLabelLink) {
	w.updateLabel.SetVisible(false)
	defer w.updateLabel.SetVisible(true)

	answer := walk.MsgBox(w.mainWindow, "Güncelleme",
		"Şimdi güncellensin mi?\nGüncellemeden sonra uygulama yeniden başlatılacak.",
		walk.MsgBoxYesNo|walk.MsgBoxIconQuestion|walk.MsgBoxTaskModal)
	if win.LOWORD(uint32(answer)) != walk.DlgCmdYes {
		return
	}
	w.mainWindow.SetEnabled(false)
	latest := w.latest
	go func() {
		if err := utils.DoUpdate(latest); err != nil {
			log.Error(err)
			w.mainWindow.Synchronize(func() { w.mainWindow.SetEnabled(true) })
			return
		}
		if err := utils.ForkExec(); err != nil {
			log.Error(err)
			return
		}
		syscall.Exit(0)
	}()
	walk.MsgBox(w.mainWindow, "Güncelleniyor", "Güncelleme yapılıyor...\n"+
		"Uygulama kendini yeniden başlatacak.",
		walk.MsgBoxOK|walk.MsgBoxTaskModal|walk.MsgBoxIconInformation)
}
