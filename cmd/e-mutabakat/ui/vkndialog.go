//go:build windows

package ui

import (
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/app"
	"github.com/lxn/walk"
	"github.com/lxn/walk/declarative"
)

// runVknDialog shows the VKN prompt modally. submit decides whether the
// entered text closes the dialog.
func runVknDialog(owner walk.Form, prompt app.Prompt, submit func(input string) bool) (bool, error) {
	var dlg *walk.Dialog
	var input *walk.LineEdit
	var acceptPB, cancelPB *walk.PushButton

	cue := "VKN (opsiyonel)"
	if prompt.Required {
		cue = "VKN"
	}

	result, err := declarative.Dialog{
		AssignTo:      &dlg,
		Title:         prompt.Title,
		DefaultButton: &acceptPB,
		CancelButton:  &cancelPB,
		MinSize:       declarative.Size{Width: 380, Height: 160},
		Layout:        declarative.VBox{},
		Children: []declarative.Widget{
			declarative.TextLabel{Text: prompt.Description},
			declarative.LineEdit{
				AssignTo:  &input,
				CueBanner: cue,
				MaxLength: 11,
			},
			declarative.Composite{
				Layout: declarative.HBox{MarginsZero: true},
				Children: []declarative.Widget{
					declarative.HSpacer{},
					declarative.PushButton{
						AssignTo: &acceptPB,
						Text:     "Oluştur",
						OnClicked: func() {
							if submit(input.Text()) {
								dlg.Accept()
							}
						},
					},
					declarative.PushButton{
						AssignTo:  &cancelPB,
						Text:      "İptal",
						OnClicked: func() { dlg.Cancel() },
					},
				},
			},
		},
	}.Run(owner)
	if err != nil {
		return false, err
	}
	return result == walk.DlgCmdOK, nil
}
