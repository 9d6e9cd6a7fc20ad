package llmschema

// Package llmschema provides:
//
// - Composable field descriptors (text, markdown, number, boolean, date, enum,
//   entity, array, object) assembled into recursive schema definitions
// - Validation of untrusted input against a definition with a stable error
//   model via Issues (JSON Pointer, code, message), aggregating every failing
//   branch in one pass
// - Generic structural operations over parsed data: Diff, Merge, Search,
//   entity extraction and markdown-field collection
//
// Design policy:
// - Keep the engine pure: no I/O, no global registries; a Schema is an
//   explicit immutable value shared freely across goroutines.
// - SafeParse never returns an error; Parse is the single strict entry point
//   and its error carries the complete issue list.
// - Transform operations never validate; they degrade gracefully on missing
//   or malformed sub-values.
//
// Typical usage:
//
//	def := llmschema.NewDefinition(
//		llmschema.F("title", llmschema.Text().MinLen(1).Required()),
//		llmschema.F("priority", llmschema.Enum("low", "medium", "high").Default("medium")),
//	)
//	s := llmschema.New(def, llmschema.WithName("task"))
//	res := s.SafeParse(`{"title":"Ship it"}`)
