// Package routes derives the route table from the application tree. The
// server registers one handler per route; the browser picks the page to
// mount from location.pathname.
package routes

import (
	"sort"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/internal/errors"
)

// Route binds a canonical path to a page.
type Route struct {
	Path  string
	Title string
	Page  app.Page
}

// Generate returns the routes of root sorted by path. Page paths are
// canonicalized first; two pages with the same canonical path are an error.
func Generate(root *app.Root) ([]Route, error) {
	if root == nil {
		return nil, nil
	}

	seen := make(map[string]bool, len(root.Pages))
	list := make([]Route, 0, len(root.Pages))
	for _, page := range root.Pages {
		path, err := Canonicalize(page.Path)
		if err != nil {
			return nil, errors.New("E203").
				WithDetail("Page path " + page.Path + " is not a valid route.").
				Wrap(err)
		}
		if seen[path] {
			return nil, errors.New("E203").
				WithSuggestion("Rename one of the pages declaring " + path + ".")
		}
		seen[path] = true
		list = append(list, Route{Path: path, Title: page.Title, Page: page})
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list, nil
}

// Match returns the route for a request path. Paths that cannot be
// canonicalized never match.
func Match(list []Route, path string) (Route, bool) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return Route{}, false
	}
	for _, r := range list {
		if r.Path == canonical {
			return r, true
		}
	}
	return Route{}, false
}
