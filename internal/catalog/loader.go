package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deusvagus/musicplayer/internal/config"
	"github.com/deusvagus/musicplayer/internal/logging"
)

// Paths locates the files of the static metadata tree relative to a Source.
type Paths struct {
	Manifest  string
	IDDir     string
	DataIndex string
	DataDir   string
	Personnel string
}

// DefaultPaths returns the conventional tree layout.
func DefaultPaths() Paths {
	return Paths{
		Manifest:  "IDs/manifest.json",
		IDDir:     "IDs",
		DataIndex: "data/data.json",
		DataDir:   "data",
		Personnel: "personnel.json",
	}
}

// FileStats counts files attempted and successfully loaded in one phase.
type FileStats struct {
	Attempted int `json:"attempted"`
	Loaded    int `json:"loaded"`
}

// Report summarizes a load.
type Report struct {
	IDFiles     FileStats      `json:"id_files"`
	DetailFiles FileStats      `json:"detail_files"`
	IDLines     int            `json:"id_lines"`
	SkippedIDs  int            `json:"skipped_id_lines"`
	Failures    []FetchFailure `json:"failures,omitempty"`
	Collisions  []Collision    `json:"collisions,omitempty"`
	Duration    time.Duration  `json:"duration"`
}

// Result is the outcome of a successful load.
type Result struct {
	Catalog            *Catalog
	IDs                *IDMap
	FieldNames         []string
	Personnel          []string
	PersonnelAvailable bool
	Report             Report
}

// Loader builds a Catalog from a Source.
type Loader struct {
	source      Source
	paths       Paths
	policy      CollisionPolicy
	concurrency int
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths overrides the tree layout.
func WithPaths(p Paths) LoaderOption {
	return func(l *Loader) { l.paths = p }
}

// WithCollisionPolicy sets the IdMap collision policy.
func WithCollisionPolicy(policy CollisionPolicy) LoaderOption {
	return func(l *Loader) {
		if policy != "" {
			l.policy = policy
		}
	}
}

// WithConcurrency bounds concurrent fetches. Zero or less means unbounded.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) { l.concurrency = n }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader reading from source.
func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:      source,
		paths:       DefaultPaths(),
		policy:      LastWins,
		concurrency: 8,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.NewComponentLogger(l.logger, "catalog")
	return l
}

// NewLoaderFromConfig wires a loader from configuration.
func NewLoaderFromConfig(cfg *config.Config, logger *slog.Logger) (*Loader, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	source, err := NewSource(cfg.Source.BaseURL, cfg.RequestTimeout())
	if err != nil {
		return nil, err
	}
	policy, err := ParseCollisionPolicy(cfg.Source.IDCollisionPolicy)
	if err != nil {
		return nil, err
	}
	return NewLoader(source,
		WithPaths(Paths{
			Manifest:  cfg.Source.ManifestPath,
			IDDir:     cfg.Source.IDDir,
			DataIndex: cfg.Source.DataIndexPath,
			DataDir:   cfg.Source.DataDir,
			Personnel: cfg.Source.PersonnelPath,
		}),
		WithCollisionPolicy(policy),
		WithConcurrency(cfg.Source.MaxConcurrentFetches),
		WithLogger(logger),
	), nil
}

type manifest struct {
	Albums []string `json:"albums"`
}

type albumRecord struct {
	Album  any        `json:"album"`
	Tracks *[]Details `json:"tracks"`
}

type fetched struct {
	name string
	uri  string
	data []byte
	err  error
}

// Load fetches the manifest, every ID file, the data index and every detail
// file, then merges them. Only manifest and data index failures are fatal.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{IDs: NewIDMap(l.policy)}

	names, err := l.loadManifest(ctx)
	if err != nil {
		return nil, err
	}
	l.loadIDFiles(ctx, names, result)

	detailPaths, err := l.loadDataIndex(ctx)
	if err != nil {
		return nil, err
	}
	albums := l.loadDetailFiles(ctx, detailPaths, result)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	catalog := &Catalog{Albums: make([]Album, 0, len(albums))}
	for _, rec := range albums {
		album := Album{Title: albumTitle(rec.Album), Tracks: make([]Track, 0, len(*rec.Tracks))}
		for _, details := range *rec.Tracks {
			fullTitle := ""
			if v, ok := details.Get(FieldTrack); ok && v != nil {
				fullTitle = Stringify(v)
			}
			track := Track{FullTitle: fullTitle, Details: details}
			if id, ok := result.IDs.Lookup(fullTitle); ok {
				track.ID = PlayerID(id)
			}
			album.Tracks = append(album.Tracks, track)
		}
		catalog.Albums = append(catalog.Albums, album)
	}
	result.Catalog = catalog
	result.FieldNames = catalog.FieldNames()

	result.Personnel, err = l.loadPersonnel(ctx)
	if err != nil {
		logging.WarnWithContext(l.logger, "personnel list unavailable", "personnel_unavailable",
			logging.String(logging.FieldURI, l.source.URI(l.paths.Personnel)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check personnel_path or ignore if the list is not published"),
			logging.String(logging.FieldImpact, "personnel shortcut disabled"),
		)
	} else {
		result.PersonnelAvailable = true
	}

	result.Report.Collisions = result.IDs.Collisions()
	for _, c := range result.Report.Collisions {
		logging.WarnWithContext(l.logger, "id collision", "id_collision",
			logging.String("key", c.Key),
			logging.String("kept", c.Kept),
			logging.String("dropped", c.Dropped),
			logging.String("policy", string(l.policy)),
			logging.String(logging.FieldErrorHint, "two id files list different ids for the same title"),
			logging.String(logging.FieldImpact, "one id was discarded"),
		)
	}
	result.Report.Duration = time.Since(start)
	l.logger.Info("catalog loaded",
		logging.Int("albums", len(catalog.Albums)),
		logging.Int("tracks", catalog.TrackCount()),
		logging.Int("ids", result.IDs.Len()),
		logging.Int("fields", len(result.FieldNames)),
		logging.Int("failures", len(result.Report.Failures)),
		logging.Duration("duration", result.Report.Duration),
	)
	return result, nil
}

func (l *Loader) loadManifest(ctx context.Context) ([]string, error) {
	uri := l.source.URI(l.paths.Manifest)
	data, err := l.source.Fetch(ctx, l.paths.Manifest)
	if err != nil {
		return nil, l.fatal(ErrManifest, uri, err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, l.fatal(ErrManifest, uri, fmt.Errorf("decode manifest: %w", err))
	}
	if m.Albums == nil {
		return nil, l.fatal(ErrManifest, uri, errors.New("manifest has no albums list"))
	}
	return m.Albums, nil
}

func (l *Loader) loadIDFiles(ctx context.Context, names []string, result *Result) {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = joinTreePath(l.paths.IDDir, name)
	}
	files := l.fetchAll(ctx, paths)
	result.Report.IDFiles.Attempted = len(files)
	for _, f := range files {
		if f.err != nil {
			l.partial(result, "id_file", f.uri, f.err)
			continue
		}
		added, skipped := result.IDs.AddFile(string(f.data), f.name)
		result.Report.IDFiles.Loaded++
		result.Report.IDLines += added
		result.Report.SkippedIDs += skipped
		l.logger.Debug("id file loaded",
			logging.String(logging.FieldURI, f.uri),
			logging.Int("lines", added),
			logging.Int("skipped", skipped),
		)
	}
}

func (l *Loader) loadDataIndex(ctx context.Context) ([]string, error) {
	uri := l.source.URI(l.paths.DataIndex)
	data, err := l.source.Fetch(ctx, l.paths.DataIndex)
	if err != nil {
		return nil, l.fatal(ErrDataIndex, uri, err)
	}
	files, err := decodeDataIndex(data)
	if err != nil {
		return nil, l.fatal(ErrDataIndex, uri, err)
	}
	return files, nil
}

func (l *Loader) loadDetailFiles(ctx context.Context, files []string, result *Result) []albumRecord {
	paths := make([]string, len(files))
	for i, file := range files {
		paths[i] = joinTreePath(l.paths.DataDir, file)
	}
	fetchedFiles := l.fetchAll(ctx, paths)
	result.Report.DetailFiles.Attempted = len(fetchedFiles)
	var albums []albumRecord
	for _, f := range fetchedFiles {
		if f.err != nil {
			l.partial(result, "detail_file", f.uri, f.err)
			continue
		}
		records, err := decodeDetailFile(f.data)
		if err != nil {
			l.partial(result, "detail_file", f.uri, err)
			continue
		}
		result.Report.DetailFiles.Loaded++
		albums = append(albums, records...)
	}
	return albums
}

func (l *Loader) loadPersonnel(ctx context.Context) ([]string, error) {
	if strings.TrimSpace(l.paths.Personnel) == "" {
		return nil, errors.New("personnel path not configured")
	}
	data, err := l.source.Fetch(ctx, l.paths.Personnel)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("decode personnel: %w", err)
	}
	return names, nil
}

// fetchAll fetches every path concurrently and returns results in input
// order once all have settled. A failing fetch never cancels the others.
func (l *Loader) fetchAll(ctx context.Context, paths []string) []fetched {
	results := make([]fetched, len(paths))
	var g errgroup.Group
	if l.concurrency > 0 {
		g.SetLimit(l.concurrency)
	}
	for i, name := range paths {
		g.Go(func() error {
			data, err := l.source.Fetch(ctx, name)
			results[i] = fetched{name: name, uri: l.source.URI(name), data: data, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (l *Loader) fatal(kind error, uri string, err error) error {
	loadErr := &LoadError{Kind: kind, URI: uri, Err: err}
	logging.ErrorWithContext(l.logger, "catalog initialization failed", "catalog_load_failed",
		logging.String(logging.FieldURI, uri),
		logging.Error(err),
	)
	return loadErr
}

func (l *Loader) partial(result *Result, kind, uri string, err error) {
	result.Report.Failures = append(result.Report.Failures, FetchFailure{Kind: kind, URI: uri, Err: err.Error()})
	logging.WarnWithContext(l.logger, "skipping unreadable file", kind+"_failed",
		logging.String(logging.FieldURI, uri),
		logging.Error(err),
		logging.String(logging.FieldImpact, "entries from this file are missing from the catalog"),
	)
}

func joinTreePath(dir, name string) string {
	name = strings.TrimLeft(name, "/")
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}

func albumTitle(v any) string {
	if v == nil {
		return ""
	}
	return Stringify(v)
}

// decodeDataIndex flattens the group -> paths mapping in document order.
// A group value may be a list of paths or a single path.
func decodeDataIndex(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode data index: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("decode data index: expected JSON object")
	}
	var files []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode data index: %w", err)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode data index group %v: %w", keyTok, err)
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			files = append(files, list...)
			continue
		}
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("decode data index group %v: expected list of paths", keyTok)
		}
		files = append(files, single)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode data index: %w", err)
	}
	return files, nil
}

// decodeDetailFile accepts a JSON array of albums or a single album object.
func decodeDetailFile(data []byte) ([]albumRecord, error) {
	trimmed := bytes.TrimSpace(data)
	var records []albumRecord
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode detail file: %w", err)
		}
	} else {
		var single albumRecord
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, fmt.Errorf("decode detail file: %w", err)
		}
		records = []albumRecord{single}
	}
	for i, rec := range records {
		if rec.Tracks == nil {
			return nil, fmt.Errorf("album %d (%s) has no tracks list", i, albumTitle(rec.Album))
		}
	}
	return records, nil
}
