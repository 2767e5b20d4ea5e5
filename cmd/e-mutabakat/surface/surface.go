// Package surface provides the places a generated report is shown in: a
// browser tab acquired before the backend call, and the system browser as the
// fallback when no tab could be acquired.
package surface

import (
	"context"
	"fmt"
	"html"
)

// Surface is a presentation target owned by the client until Navigate
// succeeds. After that it belongs to the user and must not be closed.
type Surface interface {
	Write(html string) error
	Navigate(url string) error
	Close() error
}

// Provider acquires a Surface. The boolean reports whether acquisition
// succeeded; a false result comes with a nil Surface.
type Provider interface {
	Acquire(ctx context.Context) (Surface, bool)
}

// Navigator opens a URL outside of any acquired surface.
type Navigator interface {
	Navigate(url string) error
}

// Unavailable never acquires a surface, sending every report to the fallback
// navigator.
type Unavailable struct{}

func (Unavailable) Acquire(context.Context) (Surface, bool) { return nil, false }

// Placeholder renders the page shown while the backend prepares a report.
func Placeholder(title, message string) string {
	return fmt.Sprintf(`<html><head><meta charset="utf-8"><title>%s</title></head>`+
		`<body style="font-family: Arial; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #f5f7fa;">`+
		`<div style="text-align: center;"><h2>⏳ İşleniyor...</h2><p>%s</p></div></body></html>`,
		html.EscapeString(title), html.EscapeString(message))
}
