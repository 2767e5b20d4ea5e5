package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/app"
)

// terminalView renders App state as plain text.
type terminalView struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

func newTerminalView(in io.Reader, out io.Writer, assumeYes bool) *terminalView {
	return &terminalView{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

func (v *terminalView) SetLoading(active bool) {
	if active {
		v.println("⏳ İşleniyor...")
	}
}

func (v *terminalView) Confirm(message string) bool {
	if v.assumeYes {
		return true
	}
	v.mu.Lock()
	fmt.Fprintf(v.out, "%s [e/H]: ", message)
	line, _ := v.in.ReadString('\n')
	v.mu.Unlock()

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "e", "evet", "y", "yes":
		return true
	}
	return false
}

func (v *terminalView) Alert(message string) {
	v.println("⚠️  " + message)
}

func (v *terminalView) RenderFiles(list app.FileList) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintln(v.out, list.CountText)
	if len(list.Rows) == 0 {
		return
	}
	tw := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOSYA\tBOYUT\tYÜKLENME")
	for _, row := range list.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Name, row.Size, row.Uploaded)
	}
	_ = tw.Flush()
}

func (v *terminalView) PrintLog(entry app.LogEntry) {
	v.println(entry.Line())
}

func (v *terminalView) println(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, message)
}
