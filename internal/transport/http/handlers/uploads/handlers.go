package uploadhandler

import (
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"emimet/internal/transport/http/api"
	"emimet/internal/transport/http/middleware"
)

// allowedTypes maps the sniffed content type to the stored extension.
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

var allowedKinds = map[string]bool{
	"profile":  true,
	"id-proof": true,
	"document": true,
}

type Handler struct {
	Dir      string
	MaxBytes int64
}

func NewHandler(dir string, maxBytes int64) *Handler {
	return &Handler{Dir: dir, MaxBytes: maxBytes}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)
	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "file exceeds the size limit or the form is malformed", requestID)
		return
	}

	kind := strings.TrimSpace(r.FormValue("kind"))
	if kind == "" {
		kind = "document"
	}
	if !allowedKinds[kind] {
		api.Fail(w, http.StatusBadRequest, "invalid_kind", "kind must be profile, id-proof or document", requestID)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "missing_file", "file field is required", requestID)
		return
	}
	defer file.Close()

	// Sniff the real content type; the client-provided header is not
	// trusted.
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to read file", requestID)
		return
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedTypes[contentType]
	if !ok {
		api.Fail(w, http.StatusBadRequest, "unsupported_type", "only jpeg, png, webp and pdf files are accepted", requestID)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to read file", requestID)
		return
	}

	dir := filepath.Join(h.Dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store file", requestID)
		return
	}

	name := uuid.NewString() + ext
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store file", requestID)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store file", requestID)
		return
	}

	api.Created(w, map[string]string{
		"path": path.Join("/uploads", kind, name),
		"kind": kind,
	}, requestID)
}
