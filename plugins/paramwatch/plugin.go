// Package paramwatch invalidates the protocol-parameter cache of a
// cardanocli client when the cached file is changed behind its back.
//
// The client replaces its session copy by renaming a fresh file onto it,
// which shows up as a Create event; those are ignored. A Write, Remove or
// Rename of the cached file means someone else touched it, and the next
// build will query the parameters again.
package paramwatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/cardanocli/pkg/cardanocli"
	"github.com/bft-labs/cardanocli/pkg/log"
)

// Plugin watches the directories holding cached protocol parameters.
type Plugin struct {
	mu      sync.Mutex
	cache   cardanocli.ParamCache
	logger  cardanocli.Logger
	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	dirs    []string
}

// New creates the plugin. Extra directories are watched in addition to
// the client's tmp folder and the folder of a preloaded parameters file.
func New(extraDirs ...string) *Plugin {
	return &Plugin{dirs: extraDirs}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string { return "paramwatch" }

// Initialize registers the watches before returning, so changes made right
// after New are not missed, then starts the event loop.
func (p *Plugin) Initialize(ctx context.Context, cfg cardanocli.PluginConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if cfg.Cache == nil {
		return fmt.Errorf("paramwatch: no parameter cache")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("paramwatch: create watcher: %w", err)
	}
	dirs := append([]string{cfg.TmpDir}, p.dirs...)
	if path := cfg.Cache.Path(); path != "" {
		dirs = append(dirs, filepath.Dir(path))
	}
	seen := make(map[string]bool)
	for _, dir := range dirs {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("paramwatch: watch %s: %w", dir, err)
		}
		logger.Debug("watching protocol parameters", log.String("dir", dir))
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cache = cfg.Cache
	p.logger = logger
	p.watcher = watcher
	p.cancel = cancel
	p.mu.Unlock()

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)
	return nil
}

// Shutdown stops the event loop and releases the watcher.
func (p *Plugin) Shutdown(context.Context) error {
	p.mu.Lock()
	cancel, watcher := p.cancel, p.watcher
	p.cancel, p.watcher = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	p.wg.Wait()
	return watcher.Close()
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			p.handle(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("paramwatch: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	cached := p.cache.Path()
	if cached == "" || filepath.Clean(event.Name) != filepath.Clean(cached) {
		return
	}
	p.cache.Invalidate()
	p.logger.Info("protocol parameters changed on disk, cache invalidated",
		log.String("path", cached), log.String("op", event.Op.String()))
}
