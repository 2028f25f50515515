package client

import (
	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/internal/errors"
	"github.com/chatbot-dev/chatbot/pkg/routes"
)

// SelectPage returns the page for a location pathname, or root.NotFound.
func SelectPage(root *app.Root, pathname string) (app.Page, error) {
	list, err := routes.Generate(root)
	if err != nil {
		return app.Page{}, err
	}
	if route, ok := routes.Match(list, pathname); ok {
		return route.Page, nil
	}
	return root.NotFound, nil
}

// HydrateApp hydrates the page matching the document location. When the
// markup does not match the tree the body is rendered from scratch instead.
func HydrateApp(doc Document, root *app.Root, opts ...Option) (*Runtime, error) {
	page, err := SelectPage(root, doc.Pathname())
	if err != nil {
		return nil, err
	}

	rt, err := Hydrate(doc, page.View(), opts...)
	if err == nil {
		return rt, nil
	}
	if !errors.HasCode(err, "E401") {
		return nil, err
	}

	rt, mountErr := Mount(doc, page.View(), opts...)
	if mountErr != nil {
		return nil, mountErr
	}
	rt.logger.Warn("hydration mismatch, rendered from scratch", "error", err)
	return rt, nil
}

// MountApp renders the page matching the document location into the empty
// body and sets the document title.
func MountApp(doc Document, root *app.Root, opts ...Option) (*Runtime, error) {
	page, err := SelectPage(root, doc.Pathname())
	if err != nil {
		return nil, err
	}
	doc.SetTitle(page.Title)
	return Mount(doc, page.View(), opts...)
}
