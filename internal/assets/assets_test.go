package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/racer/internal/logger"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1/1/1 2/1/1 3/1/1
`

func writeFile(t *testing.T, dir, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(3, 3, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	restore := logger.Set(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestLoadRootPriority(t *testing.T) {
	low, high := t.TempDir(), t.TempDir()
	writeFile(t, low, "assets/car.obj", []byte("low"))
	writeFile(t, high, "assets/car.obj", []byte("high"))
	writeFile(t, low, "assets/wheel.obj", []byte("only-low"))

	m := NewManager()
	require.NoError(t, m.AddRoot(low))
	require.NoError(t, m.AddRoot(high))

	data, err := m.Load(context.Background(), "assets/car.obj")
	require.NoError(t, err)
	assert.Equal(t, "high", string(data))

	data, err = m.Load(context.Background(), "assets/wheel.obj")
	require.NoError(t, err)
	assert.Equal(t, "only-low", string(data))
}

func TestLoadNotFound(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.AddRoot(t.TempDir()))

	_, err := m.Load(context.Background(), "assets/missing.obj")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddRootRejectsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.txt", []byte("x"))

	m := NewManager()
	assert.Error(t, m.AddRoot(filepath.Join(dir, "file.txt")))
	assert.Error(t, m.AddRoot(filepath.Join(dir, "nope")))
}

func TestLoadAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abs.obj", []byte("absolute"))

	m := NewManager()
	data, err := m.Load(context.Background(), filepath.Join(dir, "abs.obj"))
	require.NoError(t, err)
	assert.Equal(t, "absolute", string(data))
}

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "assets/car.obj", []byte("v1"))
	logs := observe(t)

	m := NewManager()
	require.NoError(t, m.AddRoot(dir))

	_, err := m.Load(context.Background(), "assets/car.obj")
	require.NoError(t, err)

	// Served from cache even after the file changes
	writeFile(t, dir, "assets/car.obj", []byte("v2"))
	data, err := m.Load(context.Background(), "assets/car.obj")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	hits, misses := m.Cache().Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	m.Close()
	assert.Equal(t, 0, m.Cache().Len())

	closed := logs.FilterMessage("asset cache closed").All()
	require.Len(t, closed, 1)
	fields := closed[0].ContextMap()
	assert.EqualValues(t, 1, fields["entries"])
	assert.EqualValues(t, 1, fields["hits"])
	assert.EqualValues(t, 1, fields["misses"])
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/assets/car.obj":
			_, _ = w.Write([]byte(triangleOBJ))
		case "/broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := NewManager()
	m.SetHTTPClient(srv.Client())
	ctx := context.Background()

	mesh, err := m.LoadMesh(ctx, srv.URL+"/assets/car.obj")
	require.NoError(t, err)
	assert.Equal(t, 3, mesh.VertexCount())

	_, err = m.Load(ctx, srv.URL+"/missing.obj")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Load(ctx, srv.URL+"/broken")
	assert.ErrorContains(t, err, "500")
}

func TestLoadURLHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	m := NewManager()
	m.SetHTTPClient(srv.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := m.Load(ctx, srv.URL+"/slow.obj")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadMeshes(t *testing.T) {
	logs := observe(t)

	dir := t.TempDir()
	writeFile(t, dir, "assets/car.obj", []byte(triangleOBJ))
	writeFile(t, dir, "assets/bad.obj", []byte("f 1 2 3\n"))

	m := NewManager()
	require.NoError(t, m.AddRoot(dir))

	meshes := m.LoadMeshes(context.Background(), map[string]string{
		"car":     "assets/car.obj",
		"wheel":   "assets/wheel.obj",
		"spoiler": "assets/bad.obj",
	})

	require.Len(t, meshes, 3)
	assert.Equal(t, 3, meshes["car"].VertexCount())

	// Failures degrade to empty meshes
	require.NotNil(t, meshes["wheel"])
	assert.True(t, meshes["wheel"].Empty())
	require.NotNil(t, meshes["spoiler"])
	assert.True(t, meshes["spoiler"].Empty())

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	assert.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, "assets", w.LoggerName)
	}
}

func TestLoadImageAsync(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "assets/racing-texture-atlas.png", pngBytes(t))

	m := NewManager()
	require.NoError(t, m.AddRoot(dir))

	select {
	case img, ok := <-m.LoadImageAsync(context.Background(), "assets/racing-texture-atlas.png"):
		require.True(t, ok)
		assert.Equal(t, 4, img.Bounds().Dx())
		assert.Equal(t, color.RGBA{R: 9, G: 8, B: 7, A: 255}, img.RGBAAt(3, 3))
	case <-time.After(5 * time.Second):
		t.Fatal("image never arrived")
	}
}

func TestLoadImageAsyncFailureClosesChannel(t *testing.T) {
	logs := observe(t)

	m := NewManager()
	require.NoError(t, m.AddRoot(t.TempDir()))

	select {
	case img, ok := <-m.LoadImageAsync(context.Background(), "assets/missing.png"):
		assert.False(t, ok)
		assert.Nil(t, img)
	case <-time.After(5 * time.Second):
		t.Fatal("channel never closed")
	}
	assert.Equal(t, 1, logs.FilterMessage("image unavailable, keeping placeholder").Len())
}
