package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Input Errors (H001-H009)
	// ============================================

	"H001": {
		Category: CategoryInput,
		Message:  "Invalid input",
		Detail:   "Escaping requires text. Stringify the value first if its text form is what you want escaped.",
		DocURL:   "https://htmlkit.dev/docs/errors/H001",
	},
	"H002": {
		Category: CategoryInput,
		Message:  "Invalid attribute name",
		Detail:   "Attribute names must be strings or symbols. Nested keys may also be nil to reuse the parent name.",
		DocURL:   "https://htmlkit.dev/docs/errors/H002",
	},
	"H003": {
		Category: CategoryInput,
		Message:  "Invalid attributes type",
		Detail:   "Attributes must be a mapping of names to values.",
		DocURL:   "https://htmlkit.dev/docs/errors/H003",
	},
	"H005": {
		Category: CategoryInput,
		Message:  "Unknown element",
		Detail:   "The tag is not in the element table. Use Element or Void to render arbitrary tag names.",
		DocURL:   "https://htmlkit.dev/docs/errors/H005",
	},

	// ============================================
	// Builder Errors (H004, H006-H009)
	// ============================================

	"H004": {
		Category: CategoryBuilder,
		Message:  "Missing argument",
		Detail:   "The builder declares required arguments that were not supplied to Call.",
		DocURL:   "https://htmlkit.dev/docs/errors/H004",
	},
	"H006": {
		Category: CategoryBuilder,
		Message:  "Builder requires a func",
		Detail:   "builder.New was called with a nil func.",
		DocURL:   "https://htmlkit.dev/docs/errors/H006",
	},

	// ============================================
	// Document Errors (H010-H019)
	// ============================================

	"H010": {
		Category: CategoryDocument,
		Message:  "Document parse failed",
		Detail:   "The document is not valid YAML or JSON.",
		DocURL:   "https://htmlkit.dev/docs/errors/H010",
	},
	"H011": {
		Category: CategoryDocument,
		Message:  "Invalid document node",
		Detail:   "Each node must be a mapping with a tag, text or raw field.",
		DocURL:   "https://htmlkit.dev/docs/errors/H011",
	},
	"H012": {
		Category: CategoryDocument,
		Message:  "Document not found",
		Detail:   "The document file could not be read.",
		DocURL:   "https://htmlkit.dev/docs/errors/H012",
	},
	"H013": {
		Category: CategoryDocument,
		Message:  "Alias expansion limit exceeded",
		Detail:   "YAML aliases in the input expand to too many nodes. Inline repeated content or split the document.",
		DocURL:   "https://htmlkit.dev/docs/errors/H013",
	},

	// ============================================
	// Config Errors (H020-H029)
	// ============================================

	"H020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "htmlkit.json or the HTMLKIT_ environment could not be loaded.",
		DocURL:   "https://htmlkit.dev/docs/errors/H020",
	},
	"H021": {
		Category: CategoryConfig,
		Message:  "Unknown charset",
		Detail:   "The input charset label is not a WHATWG encoding label.",
		DocURL:   "https://htmlkit.dev/docs/errors/H021",
	},
	"H022": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server address must contain a port between 0 and 65535.",
		DocURL:   "https://htmlkit.dev/docs/errors/H022",
	},
	"H023": {
		Category: CategoryConfig,
		Message:  "Invalid publish target",
		Detail:   "Publish targets are '-', a directory, file://dir or s3://bucket/prefix.",
		DocURL:   "https://htmlkit.dev/docs/errors/H023",
	},

	// ============================================
	// Server Errors (H030-H039)
	// ============================================

	"H030": {
		Category: CategoryServer,
		Message:  "Malformed request",
		Detail:   "The request body could not be decoded.",
		DocURL:   "https://htmlkit.dev/docs/errors/H030",
	},
	"H031": {
		Category: CategoryServer,
		Message:  "Publish failed",
		Detail:   "The rendered fragment could not be written to its sink.",
		DocURL:   "https://htmlkit.dev/docs/errors/H031",
	},

	// ============================================
	// CLI Errors (H040-H049)
	// ============================================

	"H040": {
		Category: CategoryCLI,
		Message:  "Missing input",
		Detail:   "No argument was given and standard input is empty.",
		DocURL:   "https://htmlkit.dev/docs/errors/H040",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
