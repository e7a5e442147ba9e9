// Package output turns analysis results into serialized tables.
//
// Design:
//   • Writers own all presentation knowledge (TSV column layout, NA, JSON).
//   • Analysis stays domain-only; subcommands stay orchestration-only.
//   • JSON goes through pkg/api (v1) for a stable wire format.
//   • The reader recovers an expanded table, so filt and stat can run on
//     files without any ontology backend.
package output
