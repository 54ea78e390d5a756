// Package assets handles game asset loading and caching.
//
// Assets are addressed by slash-separated paths such as "assets/car.obj",
// resolved against a list of search roots, or by http(s) URLs.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/racer/internal/engine/texture"
	"github.com/Faultbox/racer/internal/logger"
	"github.com/Faultbox/racer/pkg/obj"
)

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset not found")

// maxParallelLoads bounds concurrent fetches in LoadMeshes.
const maxParallelLoads = 4

// Manager handles asset loading from directories and URLs.
type Manager struct {
	roots  []string
	cache  *Cache
	client *http.Client
	log    *zap.Logger
	mu     sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		cache:  NewCache(),
		client: http.DefaultClient,
		log:    logger.Named("assets"),
	}
}

// SetHTTPClient replaces the client used for URL assets.
func (m *Manager) SetHTTPClient(c *http.Client) {
	m.client = c
}

// AddRoot adds a search directory.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()

	m.log.Debug("root added", zap.String("dir", dir))
	return nil
}

// Cache returns the manager's byte cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Load returns the raw bytes of an asset. URLs are fetched with ctx;
// absolute paths are read directly; anything else is searched in the roots.
func (m *Manager) Load(ctx context.Context, path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	switch {
	case isURL(path):
		data, err = m.fetch(ctx, path)
	case filepath.IsAbs(path):
		data, err = os.ReadFile(path)
	default:
		data, err = m.readFromRoots(path)
	}
	if err != nil {
		return nil, err
	}

	m.cache.Set(path, data)
	return data, nil
}

func (m *Manager) readFromRoots(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rel := filepath.FromSlash(path)
	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.roots[i], rel))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

func (m *Manager) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return data, nil
}

// LoadMesh loads and parses a mesh file.
func (m *Manager) LoadMesh(ctx context.Context, path string) (*obj.Mesh, error) {
	data, err := m.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	mesh, err := obj.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return mesh, nil
}

// LoadMeshes loads the named meshes concurrently. A mesh that fails to load
// or parse is logged and replaced by an empty mesh, so every name in paths
// is present in the result.
func (m *Manager) LoadMeshes(ctx context.Context, paths map[string]string) map[string]*obj.Mesh {
	var (
		mu     sync.Mutex
		result = make(map[string]*obj.Mesh, len(paths))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)

	for name, path := range paths {
		g.Go(func() error {
			mesh, err := m.LoadMesh(gctx, path)
			if err != nil {
				m.log.Warn("mesh unavailable, using empty mesh",
					zap.String("mesh", name),
					zap.String("path", path),
					zap.Error(err),
				)
				mesh = &obj.Mesh{}
			} else {
				m.log.Info("mesh loaded",
					zap.String("mesh", name),
					zap.String("path", path),
					zap.Int("triangles", mesh.TriangleCount()),
				)
			}

			mu.Lock()
			result[name] = mesh
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return result
}

// LoadImage loads and decodes an image asset.
func (m *Manager) LoadImage(ctx context.Context, path string) (*image.RGBA, error) {
	data, err := m.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return texture.Decode(path, data)
}

// LoadImageAsync decodes an image in the background. The channel yields the
// image once, or is closed without a value if loading fails.
func (m *Manager) LoadImageAsync(ctx context.Context, path string) <-chan *image.RGBA {
	ch := make(chan *image.RGBA, 1)

	go func() {
		defer close(ch)

		img, err := m.LoadImage(ctx, path)
		if err != nil {
			m.log.Warn("image unavailable, keeping placeholder",
				zap.String("path", path),
				zap.Error(err),
			)
			return
		}

		m.log.Info("image loaded",
			zap.String("path", path),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()),
		)
		ch <- img
	}()

	return ch
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	hits, misses := m.cache.Stats()
	m.log.Debug("asset cache closed",
		zap.Int("entries", m.cache.Len()),
		zap.Int("hits", hits),
		zap.Int("misses", misses))

	m.roots = nil
	m.cache.Clear()
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
