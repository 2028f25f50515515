// Package server is the HTTP side of the application.
//
// A Server serves the compiled client bundle under the package prefix
// (/pkg by default), static files under /assets, the favicon, a health
// check, Prometheus metrics and one server-rendered page per generated
// route. Every other path renders the application's not-found page with
// status 404.
//
//	cfg, _ := config.Load("chatbot.toml")
//	srv, _ := server.New(cfg, app.New())
//	err := srv.ListenAndServe(ctx)
//
// Static requests never escape their root: traversal attempts, missing
// files and directories all answer 404.
package server
