// Package testutil provides an in-process stand-in for the reconciliation
// backend. It mimics the endpoints the client uses and records every request.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

const (
	KdvExcelLink   = "/download/kdv-excel"
	KdvExcelName   = "Indirilecek_KDV_Listesi.xlsx"
	KdvEditorLink  = "/view/kdv-editor"
	SatisEditorLnk = "/view/satis-editor"
)

// File mirrors the backend's file record.
type File struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Uploaded string `json:"uploaded"`
}

// Request is one recorded call.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Vkn       *string
	Filenames []string
}

// Reply overrides the default behaviour of a route.
type Reply struct {
	Status int
	Body   interface{}
	Raw    string
}

type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	files    []File
	requests []Request
	replies  map[string]Reply
	invoices int
}

// NewBackend starts a fake backend that is closed with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{replies: map[string]Reply{}, invoices: 3}

	r := chi.NewRouter()
	r.Use(b.record)
	r.Post("/upload", b.handleUpload)
	r.Get("/get-files", b.handleGetFiles)
	r.Post("/clear-files", b.handleClear)
	r.Post("/generate-kdv-excel", b.handleKdvExcel)
	r.Post("/generate-kdv-web", b.handleWeb(KdvEditorLink, false))
	r.Post("/generate-satis-web", b.handleWeb(SatisEditorLnk, true))
	r.Get(KdvExcelLink, b.handleDownload)
	r.Get("/view/{editor}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, "<html><body>%s</body></html>", chi.URLParam(r, "editor"))
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Server.Close)
	return b
}

// SetFiles replaces the backend file list.
func (b *Backend) SetFiles(files ...File) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files = append([]File(nil), files...)
}

// Reply forces path to answer with reply instead of the default behaviour.
func (b *Backend) Reply(path string, reply Reply) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[path] = reply
}

// Requests returns a copy of the recorded calls.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Paths lists the recorded request paths in order.
func (b *Backend) Paths() []string {
	var paths []string
	for _, r := range b.Requests() {
		paths = append(paths, r.Path)
	}
	return paths
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := Request{Method: r.Method, Path: r.URL.Path, RequestID: r.Header.Get("X-Request-ID")}
		switch {
		case strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"):
			if err := r.ParseMultipartForm(32 << 20); err == nil {
				for _, fh := range r.MultipartForm.File["files[]"] {
					entry.Filenames = append(entry.Filenames, fh.Filename)
				}
			}
		case strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"):
			var body struct {
				Vkn *string `json:"vkn"`
			}
			raw, _ := io.ReadAll(r.Body)
			if json.Unmarshal(raw, &body) == nil {
				entry.Vkn = body.Vkn
			}
		}

		b.mu.Lock()
		b.requests = append(b.requests, entry)
		reply, overridden := b.replies[r.URL.Path]
		b.mu.Unlock()

		if overridden {
			writeReply(w, reply)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeReply(w http.ResponseWriter, reply Reply) {
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	if reply.Raw != "" {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply.Raw)
		return
	}
	writeJSON(w, status, reply.Body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (b *Backend) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.MultipartForm == nil || len(r.MultipartForm.File["files[]"]) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "Dosya seçilmedi"})
		return
	}
	var uploaded []File
	for _, fh := range r.MultipartForm.File["files[]"] {
		uploaded = append(uploaded, File{Name: fh.Filename, Size: fh.Size, Uploaded: "12:00:00"})
	}
	b.mu.Lock()
	b.files = append(b.files, uploaded...)
	total := len(b.files)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "files": uploaded, "total": total})
}

func (b *Backend) handleGetFiles(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	files := append([]File{}, b.files...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"files": files})
}

func (b *Backend) handleClear(w http.ResponseWriter, _ *http.Request) {
	b.SetFiles()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (b *Backend) hasFiles() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.files) > 0
}

func (b *Backend) handleKdvExcel(w http.ResponseWriter, _ *http.Request) {
	if !b.hasFiles() {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "Dosya yüklenmedi"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"file":          KdvExcelLink,
		"filename":      KdvExcelName,
		"invoice_count": b.invoices,
		"logs":          []string{"📂 Yükleniyor: faturalar.zip", "  ✅ 3 fatura bulundu"},
	})
}

func (b *Backend) handleWeb(link string, vknRequired bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var vkn string
		for _, req := range b.Requests() {
			if req.Path == r.URL.Path && req.Vkn != nil {
				vkn = *req.Vkn
			}
		}
		if vknRequired && strings.TrimSpace(vkn) == "" {
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "VKN gerekli!"})
			return
		}
		if !b.hasFiles() {
			writeJSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "Dosya yüklenmedi"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"url":           link,
			"invoice_count": b.invoices,
			"logs":          []string{"📂 Yükleniyor: faturalar.zip"},
		})
	}
}

func (b *Backend) handleDownload(w http.ResponseWriter, _ *http.Request) {
	data, err := Workbook(b.invoices)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	_, _ = w.Write(data)
}

// Workbook builds a one-sheet KDV list with a header row and n invoice rows.
func Workbook(n int) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Sıra No", "Fatura Tarihi", "Fatura No", "Satıcı VKN", "KDV"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i := 1; i <= n; i++ {
		row := []interface{}{i, "2024-01-15", fmt.Sprintf("ABC2024%09d", i), "1234567890", 18.0 * float64(i)}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
