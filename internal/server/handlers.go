package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deusvagus/musicplayer/internal/api"
	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/logging"
	"github.com/deusvagus/musicplayer/internal/prefs"
)

func (s *Server) handleHealth(c *gin.Context) {
	s.writeJSON(c, http.StatusOK, api.HealthResponse{Status: "ok", Load: api.FromBrowser(s.Browser())})
}

func (s *Server) handleCatalog(c *gin.Context) {
	b := s.Browser()
	state := browser.NewState(s.defaultTheme(c.Request.Context()))
	s.writeJSON(c, http.StatusOK, api.SearchResponse{State: state, View: b.Render(state)})
}

func (s *Server) handleFields(c *gin.Context) {
	s.writeJSON(c, http.StatusOK, api.FieldsResponse{Options: s.Browser().Options()})
}

func (s *Server) handlePersonnel(c *gin.Context) {
	names, ok := s.Browser().Personnel()
	if names == nil {
		names = []string{}
	}
	s.writeJSON(c, http.StatusOK, api.PersonnelResponse{Available: ok, Names: names})
}

func (s *Server) handleSearch(c *gin.Context) {
	state, ok := s.searchState(c)
	if !ok {
		return
	}
	b := s.Browser()
	view := b.Render(state)
	if view.FieldInvalid || view.ValueInvalid {
		logging.WithContext(c.Request.Context(), s.logger).Debug("invalid regex in search",
			logging.String("field", state.Field),
			logging.String("value", state.Value),
			logging.Bool("field_invalid", view.FieldInvalid),
			logging.Bool("value_invalid", view.ValueInvalid),
		)
	}
	s.writeJSON(c, http.StatusOK, api.SearchResponse{State: state, View: view})
}

func (s *Server) handleTrack(c *gin.Context) {
	album, errAlbum := strconv.Atoi(c.Param("album"))
	track, errTrack := strconv.Atoi(c.Param("track"))
	if errAlbum != nil || errTrack != nil {
		s.writeError(c, http.StatusBadRequest, "invalid track reference")
		return
	}
	detail, ok := s.Browser().Detail(browser.TrackRef{Album: album, Track: track})
	if !ok {
		s.writeError(c, http.StatusNotFound, "track not found")
		return
	}
	s.writeJSON(c, http.StatusOK, api.TrackResponse{Detail: detail})
}

func (s *Server) handleExport(c *gin.Context) {
	mode, err := browser.ParseExportMode(c.Query(api.ParamMode))
	if err != nil {
		s.writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	state, ok := s.searchState(c)
	if !ok {
		return
	}
	body, err := s.Browser().Render(state).ExportJSON(mode)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	name := browser.ExportFileName(state, mode)
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(name))
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (s *Server) handleSuggest(c *gin.Context) {
	kind := browser.SuggestKind(c.Param("kind"))
	q := c.Query(api.ParamGeneral)
	suggestions, err := s.Browser().Suggest(kind, q)
	if err != nil {
		s.writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	if suggestions == nil {
		suggestions = []browser.Suggestion{}
	}
	s.writeJSON(c, http.StatusOK, api.SuggestResponse{Kind: kind, Query: q, Suggestions: suggestions})
}

func (s *Server) handlePrefsList(c *gin.Context) {
	if !s.requirePrefs(c) {
		return
	}
	items, err := s.prefs.List(c.Request.Context())
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []prefs.Entry{}
	}
	s.writeJSON(c, http.StatusOK, api.PrefsListResponse{Items: items})
}

func (s *Server) handlePrefGet(c *gin.Context) {
	if !s.requirePrefs(c) {
		return
	}
	key := c.Param("key")
	var (
		value string
		err   error
	)
	if key == prefs.KeyTheme {
		value, err = s.prefs.Theme(c.Request.Context())
	} else {
		value, err = s.prefs.Get(c.Request.Context(), key)
	}
	if errors.Is(err, prefs.ErrNotFound) {
		s.writeError(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(c, http.StatusOK, api.PrefResponse{Key: key, Value: value})
}

func (s *Server) handlePrefPut(c *gin.Context) {
	if !s.requirePrefs(c) {
		return
	}
	var body api.PrefUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		s.writeError(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	key := c.Param("key")
	var err error
	if key == prefs.KeyTheme {
		err = s.prefs.SetTheme(c.Request.Context(), body.Value)
		if err != nil {
			s.writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		body.Value, err = s.prefs.Theme(c.Request.Context())
	} else {
		err = s.prefs.Set(c.Request.Context(), key, body.Value)
	}
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(c, http.StatusOK, api.PrefResponse{Key: key, Value: body.Value})
}

func (s *Server) handleReload(c *gin.Context) {
	if s.load == nil {
		s.writeError(c, http.StatusServiceUnavailable, "reload not configured")
		return
	}
	next, err := s.Reload(c.Request.Context())
	if err != nil {
		s.writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(c, http.StatusOK, api.ReloadResponse{Load: api.FromBrowser(next)})
}

func (s *Server) searchState(c *gin.Context) (browser.State, bool) {
	params, err := api.ParseSearchParams(c.Request.URL.Query())
	if err != nil {
		s.writeError(c, http.StatusBadRequest, err.Error())
		return browser.State{}, false
	}
	return params.State(s.defaultTheme(c.Request.Context())), true
}

func (s *Server) defaultTheme(ctx context.Context) string {
	if s.prefs == nil {
		return browser.ThemeDark
	}
	theme, err := s.prefs.Theme(ctx)
	if err != nil {
		logging.WithContext(ctx, s.logger).Warn("theme preference unavailable", logging.Error(err))
		return browser.ThemeDark
	}
	return theme
}

func (s *Server) requirePrefs(c *gin.Context) bool {
	if s.prefs == nil {
		s.writeError(c, http.StatusServiceUnavailable, "preferences not available")
		return false
	}
	return true
}

func (s *Server) writeJSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func (s *Server) writeError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: message})
}
