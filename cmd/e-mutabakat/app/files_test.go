package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/e-mutabakat/e-mutabakat-client/cmd/e-mutabakat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFileList(t *testing.T) {
	list := RenderFileList([]model.UploadedFile{{Name: "a.pdf", Size: 2048, Uploaded: "10:15:00"}})

	assert.Equal(t, 1, list.Count)
	assert.Equal(t, "1 dosya", list.CountText)
	assert.True(t, list.ActionsVisible)
	assert.Equal(t, []FileRow{{Name: "a.pdf", Size: "2 KB", Uploaded: "10:15:00", Bytes: 2048}}, list.Rows)
}

func TestRenderEmptyFileList(t *testing.T) {
	list := RenderFileList(nil)

	assert.Equal(t, "0 dosya", list.CountText)
	assert.False(t, list.ActionsVisible)
	assert.Empty(t, list.Rows)
}

func TestCollectFilesFiltersAndWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "ocak")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	write := func(path, content string) string {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}
	zip := write(filepath.Join(dir, "e-fatura.ZIP"), "12345")
	write(filepath.Join(dir, "notes.txt"), "ignored")
	xml := write(filepath.Join(nested, "fatura.xml"), "<x/>")

	files, total := CollectFiles([]string{dir, zip, filepath.Join(dir, "missing.pdf")})

	assert.ElementsMatch(t, []string{zip, xml}, files)
	assert.Equal(t, int64(9), total)
}
