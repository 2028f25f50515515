package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E119)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "The server reads its site address and asset paths from a configuration file at startup.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Configuration file is malformed",
		Detail:   "The configuration file could not be decoded. TOML and JSON are supported, chosen by file extension.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or inconsistent.",
	},

	// ============================================
	// Server Errors (E200-E219)
	// ============================================

	"E201": {
		Category: CategoryServer,
		Message:  "Failed to bind listener",
		Detail:   "The configured site address is already in use or not available on this host.",
	},
	"E202": {
		Category: CategoryServer,
		Message:  "Render failed",
		Detail:   "The component tree could not be rendered to HTML.",
	},
	"E203": {
		Category: CategoryServer,
		Message:  "Duplicate route",
		Detail:   "Two pages of the component tree declare the same path.",
	},

	// ============================================
	// Asset Errors (E300-E319)
	// ============================================

	"E301": {
		Category: CategoryAssets,
		Message:  "Asset not found",
	},
	"E302": {
		Category: CategoryAssets,
		Message:  "Asset source failed",
		Detail:   "The backing store for static assets returned an error.",
	},

	// ============================================
	// Client Errors (E400-E419)
	// ============================================

	"E401": {
		Category: CategoryClient,
		Message:  "Hydration target missing",
		Detail:   "An interactive element rendered on the client has no matching data-hid element in the document.",
	},
}
