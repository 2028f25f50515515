//go:build js && wasm

// Command chatbot-hydrate is the browser bundle for server-rendered pages.
// It attaches event listeners to the markup already in the document body.
package main

import (
	"log/slog"

	"github.com/chatbot-dev/chatbot/app"
	"github.com/chatbot-dev/chatbot/pkg/client"
)

func main() {
	console := client.NewConsole()
	client.InstallPanicHook(console)
	defer client.Recover()

	slog.SetDefault(client.NewLogger(console, slog.LevelInfo))

	if _, err := client.HydrateApp(client.NewDocument(), app.New()); err != nil {
		panic(err)
	}

	select {}
}
