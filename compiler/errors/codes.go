package errors

// Error codes grouped by compilation phase. Codes are stable identifiers:
// tooling may match on them, so existing codes must never be renumbered.
const (
	// Schema errors (GEM001-GEM099) cover document loading and shape checks.
	CodeMalformedDocument   = "GEM001" // document is not valid YAML
	CodeMissingOutputModels = "GEM002" // document lacks the output_models key
	CodeInvalidShape        = "GEM003" // output_models or a member has the wrong shape
	CodeMissingFieldKey     = "GEM004" // field entry lacks a name or type key
	CodeDuplicateModel      = "GEM005" // two models declare the same name
	CodeDuplicateField      = "GEM006" // one model declares a field twice
	CodeFileRead            = "GEM007" // schema file could not be read

	// Type resolution errors (TYPE001-TYPE099) cover type-expression parsing
	// and registry lookups.
	CodeUnknownType       = "TYPE001" // name is neither a model nor a registered type
	CodeMalformedTypeExpr = "TYPE002" // expression is syntactically invalid
	CodeArityMismatch     = "TYPE003" // generic received the wrong number of arguments

	// Cycle errors (CYCLE001) cover reference-graph analysis.
	CodeCircularReference = "CYCLE001" // models form a reference cycle
)
