package connection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/papercomputeco/cogniz/pkg/config"
)

// projectState is the part of config.toml that decides the active project.
type projectState struct {
	connection config.ConnectionConfig
	session    config.SessionConfig
}

func (s *Service) projectState() (projectState, error) {
	cfg, err := s.cfger.LoadConfig()
	if err != nil {
		return projectState{}, err
	}
	return projectState{connection: cfg.Connection, session: cfg.Session}, nil
}

// WatchProject calls onChange each time config.toml is rewritten with a
// different connection or selected project. It blocks until ctx is done.
// The parent directory is watched because editors replace files on save.
func (s *Service) WatchProject(ctx context.Context, logger *slog.Logger, onChange func()) error {
	path := s.ConfigPath()
	if path == "" {
		return errors.New("no config file to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	last, err := s.projectState()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}

			next, err := s.projectState()
			if err != nil {
				// partially written file, wait for the next event
				logger.Debug("config reload failed", "path", path, "error", err)
				continue
			}
			if next == last {
				continue
			}

			logger.Info("active project changed",
				"project_id", next.connection.ProjectID,
				"selected_project_id", next.session.ProjectID,
			)
			last = next
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", "error", err)
		}
	}
}
