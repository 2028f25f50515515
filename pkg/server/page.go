package server

import (
	"bytes"
	"net/http"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/internal/dev"
	"github.com/chatbot-dev/chatbot/internal/errors"
	"github.com/chatbot-dev/chatbot/pkg/render"
	"github.com/chatbot-dev/chatbot/pkg/routes"
)

func (s *Server) servePage(route routes.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, r, route.Page, http.StatusOK)
	}
}

// serveNotFound redirects non-canonical spellings of a page path ("//",
// "/a/..") to the page and renders the not-found page otherwise. The browser
// resolves location.pathname with routes.Match, so both sides agree on the
// page for every URL the document is served under.
func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		if route, ok := routes.Match(s.routes, r.URL.EscapedPath()); ok {
			target := route.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
	}
	s.renderPage(w, r, s.root.NotFound, http.StatusNotFound)
}

// renderPage renders into a buffer first so a failing render never sends a
// partial document.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page app.Page, status int) {
	if page.View == nil {
		http.Error(w, http.StatusText(status), status)
		return
	}

	var buf bytes.Buffer
	err := render.NewRenderer(render.RendererConfig{}).RenderPage(&buf, render.PageData{
		Title:     page.Title,
		Body:      page.View().Render(),
		Bootstrap: s.bootstrap(),
	})
	if err != nil {
		s.logger.Error("page render failed",
			"path", r.URL.Path,
			"error", errors.New("E202").FormatCompact(),
			"cause", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		w.Write(buf.Bytes())
	}
}

func (s *Server) bootstrap() render.Bootstrap {
	b := render.Bootstrap{
		Script: s.resolver.Asset(s.cfg.BundleJS()),
		Wasm:   s.resolver.Asset(s.cfg.BundleWasm()),
	}
	if addr := s.cfg.ReloadAddr(); addr != "" {
		b.ReloadURL = "ws://" + addr + dev.ReloadPath
	}
	return b
}
