// Package player builds preview player embed URLs and tracks the state of
// the sticky player widget.
package player

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/deusvagus/musicplayer/internal/config"
)

// FailureMessage replaces the player when the embed cannot load.
const FailureMessage = "播放器加載失敗"

// ErrNoID is returned when a track has no player id.
var ErrNoID = errors.New("track has no player id")

// Embed describes the external preview player.
type Embed struct {
	Template string `json:"template"`
	Height   int    `json:"height"`
}

// FromConfig returns the configured embed.
func FromConfig(cfg *config.Config) Embed {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return Embed{Template: cfg.Player.URLTemplate, Height: cfg.Player.Height}
}

// URL substitutes the escaped id into the template's single %s.
func (e Embed) URL(id string) (string, error) {
	return URL(e.Template, id)
}

// URL substitutes the escaped id into template's single %s.
func URL(template, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrNoID
	}
	if strings.Count(template, "%s") != 1 {
		return "", fmt.Errorf("player template %q must contain exactly one %%s", template)
	}
	return strings.Replace(template, "%s", url.QueryEscape(id), 1), nil
}

// Widget is the sticky player state. Methods return the next state.
type Widget struct {
	Visible bool   `json:"visible"`
	Loading bool   `json:"loading"`
	ID      string `json:"id,omitempty"`
	Src     string `json:"src,omitempty"`
	Height  int    `json:"height,omitempty"`
	Message string `json:"message,omitempty"`
}

// Load shows the widget and starts loading the embed for id.
func (w Widget) Load(e Embed, id string) (Widget, error) {
	src, err := e.URL(id)
	if err != nil {
		return w, err
	}
	return Widget{
		Visible: true,
		Loading: true,
		ID:      strings.TrimSpace(id),
		Src:     src,
		Height:  e.Height,
	}, nil
}

// Loaded marks the embed as ready.
func (w Widget) Loaded() Widget {
	if !w.Visible {
		return w
	}
	w.Loading = false
	return w
}

// Failed replaces the embed with the failure message.
func (w Widget) Failed() Widget {
	if !w.Visible {
		return w
	}
	w.Loading = false
	w.Src = ""
	w.Message = FailureMessage
	return w
}

// Close hides the widget and drops its content.
func (w Widget) Close() Widget {
	return Widget{}
}
