package protocol

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHandler(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>local</html>"), 0o644))

	h := NewFileHandler(nil)

	t.Run("readable file", func(t *testing.T) {
		resp := h.Handle(mustParseURI(t, "file://"+path))
		require.Equal(t, ErrorOK, resp.Err)
		assert.Equal(t, "<html>local</html>", resp.Body)
		assert.Zero(t, resp.Status.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		resp := h.Handle(mustParseURI(t, "file://"+filepath.Join(dir, "absent.html")))
		assert.Equal(t, ErrorUnresolved, resp.Err)
	})

	t.Run("directory", func(t *testing.T) {
		resp := h.Handle(mustParseURI(t, "file://"+dir))
		assert.Equal(t, ErrorUnresolved, resp.Err)
	})
}
