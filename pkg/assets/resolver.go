package assets

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
)

// Resolver maps an asset name to the URL browsers should request.
type Resolver interface {
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver that looks names up in m and prepends
// prefix.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{manifest: m, prefix: withSlash(prefix)}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that only prepends prefix.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: withSlash(prefix)}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}

// LoadResolver returns a manifest resolver when dir holds a readable
// manifest and a passthrough resolver otherwise. A manifest that exists but
// cannot be parsed is logged and ignored.
func LoadResolver(dir, prefix string) Resolver {
	m, err := LoadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			slog.Default().With("component", "assets").Warn("ignoring asset manifest", "dir", dir, "error", err)
		}
		return NewPassthroughResolver(prefix)
	}
	return NewResolver(m, prefix)
}

func withSlash(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}
