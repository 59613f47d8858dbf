package cardanocli

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/bft-labs/cardanocli/internal/decode"
	"github.com/bft-labs/cardanocli/internal/domain"
	"github.com/bft-labs/cardanocli/internal/ports"
)

// paramsFileName is the session copy of the protocol parameters in Dir/tmp.
const paramsFileName = "protocolParams.json"

// paramCache remembers where the current protocol parameters live.
// fetchMu makes fetches single-writer: concurrent callers needing the file
// wait for one fetch instead of racing on the same path.
type paramCache struct {
	fetchMu sync.Mutex

	mu   sync.RWMutex
	path string
}

func newParamCache(preloaded string) *paramCache {
	return &paramCache{path: preloaded}
}

// Path returns the cached file, or "".
func (p *paramCache) Path() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.path
}

// Invalidate drops the cached path.
func (p *paramCache) Invalidate() {
	p.mu.Lock()
	p.path = ""
	p.mu.Unlock()
}

func (p *paramCache) set(path string) {
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
}

// fetchParamsLocked queries the parameters into a unique temp file, decodes
// them and only then moves the file onto the session path and updates the
// cache. On failure the cache and the session file are left as they were.
// The caller holds fetchMu.
func (c *Client) fetchParamsLocked(ctx context.Context) (domain.ProtocolParams, string, error) {
	tmp := c.namer.Name("protocolParams", ".json")
	defer os.Remove(tmp)

	if _, err := c.run(ctx, c.compiler.QueryProtocolParameters(tmp)); err != nil {
		return domain.ProtocolParams{}, "", err
	}
	data, err := os.ReadFile(tmp)
	if err != nil {
		return domain.ProtocolParams{}, "", fmt.Errorf("read protocol parameters: %w", err)
	}
	params, err := decode.ProtocolParams(data)
	if err != nil {
		return domain.ProtocolParams{}, "", err
	}
	if err := c.artifacts.WriteFile(c.sessionParamsPath, data); err != nil {
		return domain.ProtocolParams{}, "", err
	}
	c.params.set(c.sessionParamsPath)
	c.logger.Info("protocol parameters cached", ports.String("path", c.sessionParamsPath))
	return params, c.sessionParamsPath, nil
}

// QueryProtocolParameters always runs the query, refreshes the cache and
// returns the parsed document.
func (c *Client) QueryProtocolParameters(ctx context.Context) (ProtocolParams, error) {
	c.params.fetchMu.Lock()
	defer c.params.fetchMu.Unlock()
	params, _, err := c.fetchParamsLocked(ctx)
	return params, err
}

// RefreshProtocolParams refetches the parameters and returns the cached path.
func (c *Client) RefreshProtocolParams(ctx context.Context) (string, error) {
	c.params.fetchMu.Lock()
	defer c.params.fetchMu.Unlock()
	_, path, err := c.fetchParamsLocked(ctx)
	return path, err
}

// InvalidateProtocolParams drops the cached parameters path.
func (c *Client) InvalidateProtocolParams() {
	c.params.Invalidate()
	c.logger.Debug("protocol parameters cache invalidated")
}

// ProtocolParamsPath returns the cached parameters file, or "" when none
// has been fetched or supplied.
func (c *Client) ProtocolParamsPath() string {
	return c.params.Path()
}

// ensureProtocolParams returns the cached path, fetching once if needed.
func (c *Client) ensureProtocolParams(ctx context.Context) (string, error) {
	if path := c.params.Path(); path != "" {
		return path, nil
	}
	c.params.fetchMu.Lock()
	defer c.params.fetchMu.Unlock()
	// Another caller may have filled the cache while we waited.
	if path := c.params.Path(); path != "" {
		return path, nil
	}
	_, path, err := c.fetchParamsLocked(ctx)
	return path, err
}
