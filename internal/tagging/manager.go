package tagging

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/handiism/mp3tagger/internal/audio"
	"github.com/handiism/mp3tagger/internal/config"
	"github.com/handiism/mp3tagger/internal/http"
	ioutils "github.com/handiism/mp3tagger/internal/io"
	"github.com/handiism/mp3tagger/internal/model"
	"github.com/handiism/mp3tagger/internal/resolver"
	"golang.org/x/sync/errgroup"
)

// ErrNoAudioFiles is returned by Initialize when the directory holds no
// file with a configured extension.
var ErrNoAudioFiles = errors.New("no audio files found")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a tagging progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager coordinates a tagging batch.
type Manager struct {
	settings     *config.Settings
	httpClient   *http.Client
	tagger       *audio.Tagger
	verifier     *audio.Verifier
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	totalSteps int32
	doneSteps  int32

	onProgress func(ProgressEvent)
}

// NewManager creates a new tagging Manager.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	tagConfig := settings.ToTagConfig()

	return &Manager{
		settings:     settings,
		httpClient:   http.NewClient(),
		tagger:       audio.NewTagger(tagConfig),
		verifier:     audio.NewVerifier(tagConfig),
		playlist:     audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
		imageService: ioutils.NewImageService(settings.CoverArtInTagsMaxSize, settings.ConvertCoverArtToJPG),
		onProgress:   onProgress,
	}
}

// Initialize discovers the audio files of dir and returns a fresh state.
//
// The last template from the settings is compiled into the state so a
// prompt can offer it again.
func (m *Manager) Initialize(dir string) (BatchState, error) {
	names, err := ioutils.ListAudioFiles(dir, m.settings.NormalizedExtensions())
	if err != nil {
		return BatchState{}, err
	}
	if len(names) == 0 {
		return BatchState{}, fmt.Errorf("%s: %w", dir, ErrNoAudioFiles)
	}

	sources := make([]model.Source, len(names))
	for i, name := range names {
		sources[i] = model.Source{Path: name, Position: i + 1}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Found: %s", name), Level: LevelVerbose})
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d audio files in %s", len(names), dir), Level: LevelInfo})

	state := NewBatchState(dir, sources)
	if m.settings.LastTemplate != "" {
		if withTemplate, err := state.WithTemplate(m.settings.LastTemplate); err == nil {
			state = withTemplate
		}
	}
	return state, nil
}

// Resolve runs one resolution pass over every file of state.
//
// The tracks of the previous pass supply the defaults. On error the
// unchanged state is returned together with every file's failure.
func (m *Manager) Resolve(state BatchState) (BatchState, error) {
	tracks, err := resolver.ResolveAll(state.pattern(), state.Sources, state.Common, state.Tracks)
	if err != nil {
		return state, err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Resolved %d files with %q", len(tracks), state.Template), Level: LevelVerbose})
	return state.WithTracks(tracks), nil
}

// Plan computes the renames for state using the sanitize setting.
func (m *Manager) Plan(state BatchState) ([]Rename, error) {
	return Plan(state, m.settings.SanitizeFileNames)
}

// Commit writes the tags of every track and renames the files.
//
// The steps run in this order, and the first failure stops the run:
//  1. Plan the new names
//  2. Check every file can be written, concurrently
//  3. Write tags, verifying them if enabled
//  4. Rename files
//  5. Write playlists
//
// Files already processed when a step fails are left as they are. With
// DryRun set, the planned renames are reported and nothing is written.
func (m *Manager) Commit(ctx context.Context, state BatchState) error {
	if missing := Missing(state); len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}
	if invalid := Invalid(state); len(invalid) > 0 {
		return &InvalidError{Invalid: invalid}
	}

	renames, err := m.Plan(state)
	if err != nil {
		return err
	}

	if m.settings.DryRun {
		for _, r := range renames {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Would tag %s", r.From), Level: LevelInfo})
			if m.settings.RenameFiles && r.Changed() {
				m.progress(ProgressEvent{Message: fmt.Sprintf("Would rename %s -> %s", r.From, r.To), Level: LevelInfo})
			}
		}
		return nil
	}

	total := len(renames)
	if m.settings.RenameFiles {
		total *= 2
	}
	atomic.StoreInt32(&m.totalSteps, int32(total))
	atomic.StoreInt32(&m.doneSteps, 0)

	if err := m.preflight(ctx, state.Dir, renames); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error: %v", err), Level: LevelError})
		return err
	}

	artwork := m.loadArtwork(ctx, state.Dir)

	for _, r := range renames {
		if err := m.tagFile(ctx, state.Dir, r, artwork); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", r.From, err), Level: LevelError})
			return err
		}
		atomic.AddInt32(&m.doneSteps, 1)
	}

	if m.settings.RenameFiles {
		if err := m.renameFiles(ctx, state.Dir, renames); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error renaming: %v", err), Level: LevelError})
			return err
		}
	}

	if m.settings.CreatePlaylist {
		m.writePlaylists(ctx, state.Dir, renames)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Tagged %d files", len(renames)), Level: LevelSuccess})
	return nil
}

// GetProgress returns the number of finished and total commit steps.
func (m *Manager) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&m.doneSteps), atomic.LoadInt32(&m.totalSteps)
}

// preflight checks that every file can be opened for writing.
func (m *Manager) preflight(ctx context.Context, dir string, renames []Rename) error {
	g, ctx := errgroup.WithContext(ctx)
	if m.settings.MaxPreflightJobs > 0 {
		g.SetLimit(m.settings.MaxPreflightJobs)
	}

	for _, r := range renames {
		g.Go(func() error {
			if err := ioutils.CheckWritable(ctx, filepath.Join(dir, r.From)); err != nil {
				return fmt.Errorf("%s: %w", r.From, err)
			}
			return nil
		})
	}

	return g.Wait()
}

func (m *Manager) tagFile(ctx context.Context, dir string, r Rename, artwork []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.settings.ModifyTags && artwork == nil {
		return nil
	}

	path := filepath.Join(dir, r.From)
	if err := m.tagger.SaveTags(path, r.Track, artwork); err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Tagged: %s", r.From), Level: LevelVerbose})

	if m.settings.VerifyTags {
		if err := m.verifier.Verify(path, r.Track); err != nil {
			return err
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Verified: %s", r.From), Level: LevelVerbose})
	}
	return nil
}

// renameFiles renames every file to its planned name.
//
// A file whose current name is the new name of another file is first moved
// to a temporary name, so chains and swaps of names succeed.
func (m *Manager) renameFiles(ctx context.Context, dir string, renames []Rename) error {
	targets := make(map[string]bool, len(renames))
	for _, r := range renames {
		if r.Changed() {
			targets[r.To] = true
		}
	}

	current := make([]string, len(renames))
	for i, r := range renames {
		current[i] = r.From
		if !r.Changed() || !targets[r.From] {
			continue
		}
		tmp := fmt.Sprintf(".mp3tagger-%d.tmp", i)
		if err := ioutils.Rename(ctx, dir, r.From, tmp); err != nil {
			return err
		}
		current[i] = tmp
	}

	for i, r := range renames {
		if r.Changed() {
			if err := ioutils.Rename(ctx, dir, current[i], r.To); err != nil {
				return err
			}
			m.progress(ProgressEvent{Message: fmt.Sprintf("Renamed: %s -> %s", r.From, r.To), Level: LevelVerbose})
		}
		atomic.AddInt32(&m.doneSteps, 1)
	}
	return nil
}

// loadArtwork returns the cover art to embed, or nil if none is configured
// or it cannot be read.
func (m *Manager) loadArtwork(ctx context.Context, dir string) []byte {
	path := m.settings.CoverArtPath
	if path == "" && m.settings.DetectCoverArt {
		path = ioutils.FindCoverArt(dir)
	}
	if path == "" {
		return nil
	}

	var data []byte
	var err error
	if http.IsURL(path) {
		data, err = m.httpClient.Get(ctx, path)
		if err == nil {
			data, err = m.imageService.Prepare(ctx, data)
		}
	} else {
		data, err = m.imageService.Load(ctx, path)
	}
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error loading cover art %s: %v", path, err), Level: LevelWarning})
		return nil
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Embedding cover art: %s", filepath.Base(path)), Level: LevelVerbose})
	return data
}

// writePlaylists writes one playlist per album, listing the tracks by
// track number.
func (m *Manager) writePlaylists(ctx context.Context, dir string, renames []Rename) {
	tracks := make([]*model.Track, len(renames))
	names := make(map[*model.Track]string, len(renames))
	for i, r := range renames {
		tracks[i] = r.Track
		names[r.Track] = r.From
		if m.settings.RenameFiles {
			names[r.Track] = r.To
		}
	}

	albums, groups := model.AlbumGroups(tracks)
	for _, album := range albums {
		group := groups[album]
		sort.SliceStable(group, func(i, j int) bool {
			a, _ := group[i].TrackNumber()
			b, _ := group[j].TrackNumber()
			return a < b
		})

		entries := make([]audio.PlaylistEntry, len(group))
		for i, t := range group {
			entries[i] = audio.PlaylistEntry{
				FileName: names[t],
				Artist:   t.Get(model.FieldArtist),
				Title:    t.Title(),
			}
		}

		name := PlaylistFileName(album, m.playlist.Format())
		content := m.playlist.CreatePlaylist(album, entries)
		if err := ioutils.WriteFile(ctx, filepath.Join(dir, name), []byte(content)); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
			continue
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", name), Level: LevelSuccess})
	}
}

// PlaylistFileName returns the playlist file name for album.
func PlaylistFileName(album string, format audio.PlaylistFormat) string {
	if album == "" {
		album = "playlist"
	}
	return ioutils.SanitizeFileName(album + format.Extension())
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
