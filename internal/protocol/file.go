package protocol

import (
	"os"

	"go.uber.org/zap"

	"github.com/kestrelweb/kestrel/internal/uri"
)

// FileHandler serves file: URIs from the local filesystem. There is no
// status line to speak of; a readable file is simply ErrorOK with its
// contents, and anything else is ErrorUnresolved.
type FileHandler struct {
	logger *zap.Logger
}

func NewFileHandler(logger *zap.Logger) *FileHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileHandler{logger: logger}
}

func (h *FileHandler) Handle(u uri.URI) Response {
	body, err := os.ReadFile(u.Path)
	if err != nil {
		h.logger.Debug("file not readable", zap.String("path", u.Path), zap.Error(err))
		return Response{Err: ErrorUnresolved}
	}
	return Response{Err: ErrorOK, Body: string(body)}
}
