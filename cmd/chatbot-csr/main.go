//go:build js && wasm

// Command chatbot-csr renders the application entirely in the browser,
// mounting it into an empty document body.
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

	if _, err := client.MountApp(client.NewDocument(), app.New()); err != nil {
		panic(err)
	}

	select {}
}
