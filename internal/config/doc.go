// Package config loads the runtime options of the chatbot server.
//
// The options are stored in chatbot.toml at the project root (a .json file
// is decoded as JSON instead). They are read once at startup, overlaid with
// CHATBOT_* environment variables (a .env file next to the configuration is
// honoured), validated, and then shared read-only by every request handler.
//
// # Configuration File Structure
//
//	output-name      = "chatbot"
//	site-addr        = "127.0.0.1:3000"
//	site-root        = "target/site"
//	site-pkg-dir     = "pkg"
//	env              = "DEV"
//	reload-port      = 3001
//	shutdown-timeout = "30s"
//
//	[metrics]
//	enabled = true
//	path    = "/metrics"
//
//	[assets]
//	bucket = ""          # serve /assets from S3 when set
//	prefix = "site/"
//	region = "eu-west-1"
//
// # Usage
//
//	cfg, err := config.Load("chatbot.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.SiteAddr)
package config
