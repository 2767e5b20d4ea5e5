package model

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/testutil"
	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, backend *testutil.Backend) *Client {
	t.Helper()
	client, err := NewClient(backend.URL+"/", utils.NewRateLimitedClient(utils.NewLimiter(0, 0), 0))
	require.NoError(t, err)
	return client
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient("/only/a/path", nil)
	assert.Error(t, err)
}

func TestUploadSendsEveryFileAsFilesArrayPart(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newTestClient(t, backend)
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.pdf", "%PDF-1.4"),
		writeFile(t, dir, "b.xml", "<Invoice/>"),
	}

	res, err := client.Upload(context.Background(), paths)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Len(t, res.Files, 2)
	assert.Equal(t, 2, res.Total)
	requests := backend.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, []string{"a.pdf", "b.xml"}, requests[0].Filenames)
	assert.NotEmpty(t, requests[0].RequestID)
}

func TestUploadMissingFileFailsBeforeRequest(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newTestClient(t, backend)

	_, err := client.Upload(context.Background(), []string{filepath.Join(t.TempDir(), "missing.zip")})
	assert.Error(t, err)
	assert.Empty(t, backend.Requests())
}

func TestFilesAndClear(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SetFiles(testutil.File{Name: "a.pdf", Size: 2048})
	client := newTestClient(t, backend)

	files, err := client.Files(context.Background())
	require.NoError(t, err)
	require.Len(t, files.Files, 1)
	assert.Equal(t, UploadedFile{Name: "a.pdf", Size: 2048}, files.Files[0])

	status, err := client.ClearFiles(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Success)

	files, err = client.Files(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files.Files)
}

func TestGenerateWebSendsVknAsJSON(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.SetFiles(testutil.File{Name: "a.zip", Size: 1})
	client := newTestClient(t, backend)

	res, err := client.GenerateKdvWeb(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, testutil.KdvEditorLink, res.URL)

	res, err = client.GenerateSatisWeb(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, testutil.SatisEditorLnk, res.URL)

	requests := backend.Requests()
	require.Len(t, requests, 2)
	require.NotNil(t, requests[0].Vkn)
	assert.Equal(t, "", *requests[0].Vkn)
	require.NotNil(t, requests[1].Vkn)
	assert.Equal(t, "1234567890", *requests[1].Vkn)
}

func TestBusinessErrorIsReturnedAsResponse(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Reply("/generate-kdv-excel", testutil.Reply{
		Status: http.StatusBadRequest,
		Body:   map[string]interface{}{"success": false, "error": "Hiç fatura bulunamadı!", "logs": []string{"x"}},
	})
	client := newTestClient(t, backend)

	res, err := client.GenerateKdvExcel(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Hiç fatura bulunamadı!", res.Error)
	assert.Equal(t, []string{"x"}, res.Logs)
}

func TestNonJSONErrorStatusBecomesHTTPError(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Reply("/clear-files", testutil.Reply{Status: http.StatusInternalServerError, Raw: "<h1>boom</h1>"})
	client := newTestClient(t, backend)

	_, err := client.ClearFiles(context.Background())
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
}

func TestMalformedSuccessBodyIsAnError(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Reply("/get-files", testutil.Reply{Raw: "not json"})
	client := newTestClient(t, backend)

	_, err := client.Files(context.Background())
	assert.ErrorContains(t, err, "could not read /get-files response")
}

func TestTransportFailure(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newTestClient(t, backend)
	backend.Close()

	_, err := client.Files(context.Background())
	assert.ErrorContains(t, err, "request to /get-files failed")
}

func TestResolve(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:5000", nil)
	require.NoError(t, err)

	got, err := client.Resolve("/view/kdv-editor")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5000/view/kdv-editor", got)

	got, err = client.Resolve("https://cdn.example.com/x.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/x.xlsx", got)
}

func TestDownloadAndInspectWorkbook(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newTestClient(t, backend)
	dest := filepath.Join(t.TempDir(), "out", testutil.KdvExcelName)

	written, err := client.Download(context.Background(), testutil.KdvExcelLink, dest)
	require.NoError(t, err)
	assert.Positive(t, written)

	summary, err := InspectWorkbook(dest)
	require.NoError(t, err)
	assert.Len(t, summary.Sheets, 1)
	assert.Equal(t, 4, summary.Rows)
}

func TestDownloadErrorStatusLeavesNoFile(t *testing.T) {
	backend := testutil.NewBackend(t)
	client := newTestClient(t, backend)
	dest := filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := client.Download(context.Background(), "/download/nothing", dest)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.NoFileExists(t, dest)
}

func TestInspectWorkbookRejectsNonSpreadsheet(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fake.xlsx", "<html>Dosya bulunamadı</html>")
	_, err := InspectWorkbook(path)
	assert.Error(t, err)
}
