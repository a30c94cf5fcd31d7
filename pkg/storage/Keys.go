package storage

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const DefaultPhotographFolder = "photographs"

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

/*
PhotographPrefix is the folder holding every generation of files for a
single photograph.
*/
func PhotographPrefix(folder, photoUUID string) string {
	return path.Join(folder, photoUUID) + "/"
}

/*
NewGeneration returns a short random name for one set of files written for
a photograph. Every upload, replacement and regeneration writes under a new
generation, so files the record points at are never overwritten.
*/
func NewGeneration() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

/*
OriginalKey returns the storage key for an uploaded original. The slugged
file name and its lower-cased extension are kept.

	photographs/<uuid>/<generation>/original-<slugged name><ext>
*/
func OriginalKey(folder, photoUUID, generation, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return path.Join(folder, photoUUID, generation, "original-"+Stem(originalName)+ext)
}

/*
DerivativeKey returns the storage key for a named derivative. Derivatives
are always JPEG.

	photographs/<uuid>/<generation>/<name>.jpg
*/
func DerivativeKey(folder, photoUUID, generation, name string) string {
	return path.Join(folder, photoUUID, generation, name+".jpg")
}

/*
Stem slugs the base name of a file, without its extension.
*/
func Stem(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(base), "-"), "-")

	if base == "" || base == "." {
		return "image"
	}

	return base
}
