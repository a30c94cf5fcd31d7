package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "plain", fileName: "sunset.jpg", want: "sunset"},
		{name: "spaces and case", fileName: "My Lake Trip.JPEG", want: "my-lake-trip"},
		{name: "nested path", fileName: "/tmp/uploads/IMG_0042.png", want: "img-0042"},
		{name: "nothing usable", fileName: "___.jpg", want: "image"},
		{name: "empty", fileName: "", want: "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.fileName))
		})
	}
}

func TestPhotographKeys(t *testing.T) {
	id := "2ba50a18-2a0f-4656-b877-f98a6b7b0415"

	assert.Equal(t, "photographs/"+id+"/", PhotographPrefix(DefaultPhotographFolder, id))
	assert.Equal(t, "photographs/"+id+"/0a1b2c3d4e5f/original-lake-sunset.jpg", OriginalKey(DefaultPhotographFolder, id, "0a1b2c3d4e5f", "Lake Sunset.JPG"))
	assert.Equal(t, "photographs/"+id+"/0a1b2c3d4e5f/small.jpg", DerivativeKey(DefaultPhotographFolder, id, "0a1b2c3d4e5f", "small"))
}

func TestNewGenerationIsUnique(t *testing.T) {
	seen := map[string]bool{}

	for range 100 {
		generation := NewGeneration()

		assert.Len(t, generation, 12)
		assert.Regexp(t, `^[0-9a-f]+$`, generation)
		assert.False(t, seen[generation], "duplicate generation %s", generation)

		seen[generation] = true
	}
}
