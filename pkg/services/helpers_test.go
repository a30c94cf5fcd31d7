package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/danehillard/dhp/pkg/database"
	"github.com/rfberaldo/sqlz"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut string
	puts    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}}
}

func (m *memoryStore) Put(key string, body io.Reader) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.puts++

	if m.failPut != "" && strings.Contains(key, m.failPut) {
		return fmt.Errorf("put %s: storage unavailable", key)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	m.objects[key] = b
	return nil
}

func (m *memoryStore) Get(key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("get %s: not found", key)
	}

	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *memoryStore) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		delete(m.objects, key)
	}

	return nil
}

func (m *memoryStore) List(prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := []string{}

	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			result = append(result, key)
		}
	}

	sort.Strings(result)
	return result, nil
}

func (m *memoryStore) URL(key string) (string, error) {
	return "https://media.example.com/" + key, nil
}

func (m *memoryStore) keys() []string {
	result, _ := m.List("")
	return result
}

func (m *memoryStore) decode(t *testing.T, key string) image.Image {
	t.Helper()

	m.mu.Lock()
	b, ok := m.objects[key]
	m.mu.Unlock()

	require.True(t, ok, "object %s not stored", key)

	img, _, err := image.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	return img
}

func newTestDB(t *testing.T) *sqlz.DB {
	t.Helper()

	db, err := database.Connect("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func jpegImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	buf := &bytes.Buffer{}
	require.NoError(t, jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}
