package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Configuration Errors (H100-H199)
	// ============================================

	"H100": {
		Category: CategoryConfig,
		Message:  "Failed to read configuration",
		Detail:   "The configuration file exists but could not be read or decoded.",
	},
	"H101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is outside its accepted range.",
	},
	"H102": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No hydrate.json was found at the given location.",
	},

	// ============================================
	// Parse Errors (H200-H299)
	// ============================================

	"H200": {
		Category: CategoryParse,
		Message:  "Failed to parse HTML",
		Detail:   "The server-rendered markup could not be tokenized.",
	},
	"H201": {
		Category: CategoryParse,
		Message:  "Invalid claim stamp",
		Detail:   "A claim-order attribute did not contain a non-negative integer.",
	},

	// ============================================
	// CLI Errors (H300-H399)
	// ============================================

	"H300": {
		Category: CategoryCLI,
		Message:  "Invalid claim order list",
		Detail:   "Claim orders are given as a comma-separated list of non-negative integers.",
	},
	"H301": {
		Category: CategoryCLI,
		Message:  "Target element not found",
		Detail:   "The selector did not match any element in the parsed document.",
	},
	"H302": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
	},
	"H303": {
		Category: CategoryCLI,
		Message:  "File access failed",
		Detail:   "An input or output file could not be opened or written.",
	},
}

// Codes returns all registered error codes in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
