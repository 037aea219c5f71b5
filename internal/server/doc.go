// Package server exposes the catalog browser over a gin HTTP API.
//
// The server holds one immutable browser.Browser at a time. Reload builds a
// replacement off to the side and swaps it in under a write lock, so every
// request renders against a consistent catalog. A failed reload keeps the
// previous catalog.
package server
