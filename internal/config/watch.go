package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watch reloads the config file whenever it changes and hands the fresh
// config to apply. It returns a stop function. Watching a config loaded
// from defaults (no file) is a no-op.
func Watch(cfg *Config, logger zerolog.Logger, apply func(*Config)) (func(), error) {
	if cfg.Path() == "" {
		return func() {}, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(cfg.Path()); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				fresh, err := Load(cfg.Path())
				if err != nil {
					logger.Warn().Err(err).Str("path", cfg.Path()).Msg("config reload failed")
					continue
				}
				logger.Debug().Str("path", cfg.Path()).Msg("config reloaded")
				apply(fresh)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("config watcher error")
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
