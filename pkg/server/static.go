package server

import (
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/chatbot-dev/chatbot/internal/errors"
	"github.com/chatbot-dev/chatbot/pkg/assets"
)

// serveSource serves the object named by the route wildcard.
func (s *Server) serveSource(src assets.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, err := src.Open(r.Context(), chi.URLParam(r, "*"))
		if err != nil {
			if !stderrors.Is(err, assets.ErrNotFound) {
				s.logger.Error("asset open failed",
					"path", r.URL.Path,
					"error", errors.FromError(err, "E302").FormatCompact(),
					"cause", err,
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			http.NotFound(w, r)
			return
		}
		defer obj.Body.Close()

		s.applyCacheHeaders(w, obj.Name)
		serveObject(w, r, obj)
	}
}

func serveObject(w http.ResponseWriter, r *http.Request, obj *assets.Object) {
	h := w.Header()
	if obj.ContentType != "" {
		h.Set("Content-Type", obj.ContentType)
	}
	if obj.ETag != "" {
		h.Set("ETag", obj.ETag)
	}

	if rs, ok := obj.Body.(io.ReadSeeker); ok {
		http.ServeContent(w, r, obj.Name, obj.ModTime, rs)
		return
	}

	if h.Get("Content-Type") == "" {
		if ctype := mime.TypeByExtension(path.Ext(obj.Name)); ctype != "" {
			h.Set("Content-Type", ctype)
		} else {
			h.Set("Content-Type", "application/octet-stream")
		}
	}
	if obj.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	if !obj.ModTime.IsZero() {
		h.Set("Last-Modified", obj.ModTime.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		io.Copy(w, obj.Body)
	}
}

// applyCacheHeaders disables caching in development. In production,
// fingerprinted files are immutable and everything else revalidates hourly.
func (s *Server) applyCacheHeaders(w http.ResponseWriter, name string) {
	switch {
	case s.cfg.IsDev():
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	case isFingerprinted(name):
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	default:
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
}

// isFingerprinted reports whether the name carries a content hash, as in
// "chatbot.3f9a1c2b.wasm".
func isFingerprinted(name string) bool {
	parts := strings.Split(path.Base(name), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// serveFavicon answers with <site-root>/favicon.ico.
func (s *Server) serveFavicon(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.cfg.FaviconPath())
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("favicon read failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/x-icon")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(data)
	}
}
