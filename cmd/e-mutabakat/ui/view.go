//go:build windows

package ui

import (
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/app"
	"github.com/lxn/walk"
	"github.com/lxn/win"
)

// windowView renders App state into the main window. App operations run on
// worker goroutines, so every widget access goes through Synchronize.
type windowView struct {
	mainWindow *walk.MainWindow
	tableModel *FileListModel
	countLabel *walk.Label
	loading    *walk.Label
	actions    *walk.Composite
	actionBtns []*walk.PushButton
	dropButton *walk.PushButton
}

func (v *windowView) SetLoading(active bool) {
	v.mainWindow.Synchronize(func() {
		v.loading.SetVisible(active)
		v.dropButton.SetEnabled(!active)
		for _, pb := range v.actionBtns {
			pb.SetEnabled(!active)
		}
	})
}

// Confirm blocks until the user answers. It must not be called on the UI
// thread.
func (v *windowView) Confirm(message string) bool {
	answer := make(chan bool, 1)
	v.mainWindow.Synchronize(func() {
		res := walk.MsgBox(v.mainWindow, "Onay", message,
			walk.MsgBoxYesNo|walk.MsgBoxIconQuestion|walk.MsgBoxTaskModal)
		answer <- win.LOWORD(uint32(res)) == walk.DlgCmdYes
	})
	return <-answer
}

func (v *windowView) Alert(message string) {
	v.mainWindow.Synchronize(func() {
		var owner walk.Form = v.mainWindow
		if active := walk.App().ActiveForm(); active != nil {
			owner = active
		}
		walk.MsgBox(owner, "Uyarı", message, walk.MsgBoxOK|walk.MsgBoxIconWarning)
	})
}

func (v *windowView) RenderFiles(list app.FileList) {
	v.mainWindow.Synchronize(func() {
		v.tableModel.Replace(list.Rows)
		_ = v.countLabel.SetText(list.CountText)
		v.actions.SetVisible(list.ActionsVisible)
	})
}
