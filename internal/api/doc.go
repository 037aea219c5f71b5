// Package api defines the wire-format types shared by the HTTP server and
// the CLI's JSON output, and converts query parameters into browser state.
//
// Payloads use snake_case JSON tags. Views and detail panels are passed
// through from the browser package unchanged; the types here only wrap them
// with the envelope each endpoint returns.
package api
