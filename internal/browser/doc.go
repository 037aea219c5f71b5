// Package browser turns a loaded catalog into render-ready views.
//
// All interactive state lives in State. Commands such as SetFieldQuery or
// ToggleSort return a new State and never touch the catalog. Browser.Render
// recomputes the whole View from a State on every call: album and TOC
// visibility from the general query, card visibility and matched-info blocks
// from the field/value query, the pill for pinned field shortcuts, invalid
// regex indicators, the detail panel and the player widget. Export and
// autocomplete work from the same data.
package browser
