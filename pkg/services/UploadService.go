package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/adampresley/adamgokit/slices"
	"github.com/danehillard/dhp/pkg/models"
	"github.com/danehillard/dhp/pkg/storage"
	"github.com/google/uuid"
)

var (
	ErrUploadTooLarge = errors.New("upload exceeds the maximum size")
	ErrTitleRequired  = errors.New("title is required")
)

const DefaultMaxUploadBytes int64 = 50 << 20

type UploadInput struct {
	Title         string
	Description   string
	FileName      string
	Body          io.Reader
	AlbumIDs      []uint
	UserID        uint
	Public        bool
	PublishedDate time.Time
}

type UploadServicer interface {
	Delete(photoUUID string) error
	Regenerate(photo *models.Photograph) error
	Replace(photoUUID, fileName string, body io.Reader) (*models.Photograph, error)
	Upload(input UploadInput) (*models.Photograph, error)
}

type UploadServiceConfig struct {
	DerivativeService DerivativeServicer
	Folder            string
	MaxUploadBytes    int64
	ObjectStore       storage.ObjectStorer
	PhotographService PhotographServicer
}

/*
UploadService owns the lifecycle of a photograph's stored files: the
original, its derivatives and the record that points at them.
*/
type UploadService struct {
	derivativeService DerivativeServicer
	folder            string
	maxUploadBytes    int64
	objectStore       storage.ObjectStorer
	photographService PhotographServicer
}

func NewUploadService(config UploadServiceConfig) UploadService {
	if config.Folder == "" {
		config.Folder = storage.DefaultPhotographFolder
	}

	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = DefaultMaxUploadBytes
	}

	return UploadService{
		derivativeService: config.DerivativeService,
		folder:            config.Folder,
		maxUploadBytes:    config.MaxUploadBytes,
		objectStore:       config.ObjectStore,
		photographService: config.PhotographService,
	}
}

/*
Upload stores a new original, generates its derivatives and saves the
photograph. Nothing is left in storage when any step fails.
*/
func (s UploadService) Upload(input UploadInput) (*models.Photograph, error) {
	var (
		err      error
		original []byte
		result   DerivativeResult
	)

	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if original, err = s.readOriginal(input.Body); err != nil {
		return nil, err
	}

	photo := &models.Photograph{
		UUID:          uuid.NewString(),
		Title:         input.Title,
		Description:   input.Description,
		Public:        input.Public,
		PublishedDate: input.PublishedDate,
		UserID:        input.UserID,
	}

	l := slog.With("uuid", photo.UUID, "fileName", input.FileName)

	if result, err = s.derivativeService.Generate(photo.UUID, bytes.NewReader(original)); err != nil {
		return nil, fmt.Errorf("error generating derivatives for '%s': %w", input.FileName, err)
	}

	photo.Image = storage.OriginalKey(s.folder, photo.UUID, result.Generation, input.FileName)
	result.Apply(photo)

	if err = s.objectStore.Put(photo.Image, bytes.NewReader(original)); err != nil {
		s.removeObjects(l, result.Keys())
		return nil, fmt.Errorf("error storing original '%s': %w", input.FileName, err)
	}

	if err = s.photographService.Create(photo, input.AlbumIDs); err != nil {
		s.removeObjects(l, append(result.Keys(), photo.Image))
		return nil, err
	}

	l.Info("photograph uploaded", "id", photo.ID, "orientation", photo.Orientation.String())
	return photo, nil
}

/*
Replace swaps the original of an existing photograph and regenerates its
derivatives. The photograph keeps its UUID. The new files are written
under a new generation, and the previous files are removed only once the
record points at the new ones. On any failure the record and its files are
left as they were.
*/
func (s UploadService) Replace(photoUUID, fileName string, body io.Reader) (*models.Photograph, error) {
	var (
		err      error
		original []byte
		photo    *models.Photograph
		result   DerivativeResult
	)

	if photo, err = s.photographService.GetByUUID(photoUUID); err != nil {
		return nil, err
	}

	if original, err = s.readOriginal(body); err != nil {
		return nil, err
	}

	l := slog.With("uuid", photo.UUID, "fileName", fileName)
	previousKeys := append(photo.DerivativeKeys(), photo.Image)

	if result, err = s.derivativeService.Generate(photo.UUID, bytes.NewReader(original)); err != nil {
		return nil, fmt.Errorf("error generating derivatives for '%s': %w", fileName, err)
	}

	newOriginalKey := storage.OriginalKey(s.folder, photo.UUID, result.Generation, fileName)

	if err = s.objectStore.Put(newOriginalKey, bytes.NewReader(original)); err != nil {
		s.removeObjects(l, result.Keys())
		return nil, fmt.Errorf("error storing original '%s': %w", fileName, err)
	}

	updated := *photo
	updated.Image = newOriginalKey
	result.Apply(&updated)

	if err = s.photographService.UpdateImages(&updated); err != nil {
		s.removeObjects(l, append(result.Keys(), newOriginalKey))
		return nil, err
	}

	s.removeObjects(l, previousKeys)

	l.Info("photograph original replaced", "id", updated.ID, "generation", result.Generation)
	return &updated, nil
}

/*
Regenerate rebuilds the derivatives of a photograph from the original
already in storage. The new set is written under a new generation and the
previous derivatives are removed once the record is updated.
*/
func (s UploadService) Regenerate(photo *models.Photograph) error {
	var (
		err      error
		original io.ReadCloser
		result   DerivativeResult
	)

	if original, err = s.objectStore.Get(photo.Image); err != nil {
		return err
	}

	defer original.Close()

	l := slog.With("uuid", photo.UUID)
	previousKeys := photo.DerivativeKeys()

	if result, err = s.derivativeService.Generate(photo.UUID, original); err != nil {
		return fmt.Errorf("error generating derivatives for photograph %s: %w", photo.UUID, err)
	}

	updated := *photo
	result.Apply(&updated)

	if err = s.photographService.UpdateImages(&updated); err != nil {
		s.removeObjects(l, result.Keys())
		return err
	}

	*photo = updated
	s.removeObjects(l, staleKeys(previousKeys, result.Keys()))
	return nil
}

/*
Delete removes the photograph record and every stored file under its
folder.
*/
func (s UploadService) Delete(photoUUID string) error {
	var (
		err   error
		photo *models.Photograph
		keys  []string
	)

	if photo, err = s.photographService.GetByUUID(photoUUID); err != nil {
		return err
	}

	if err = s.photographService.Delete(photoUUID); err != nil {
		return err
	}

	if keys, err = s.objectStore.List(storage.PhotographPrefix(s.folder, photo.UUID)); err != nil {
		slog.Error("error listing files of deleted photograph. removing known keys only", "uuid", photo.UUID, "error", err)
		keys = []string{}
	}

	for _, key := range append(photo.DerivativeKeys(), photo.Image) {
		if !slices.IsInSlice(key, keys) {
			keys = append(keys, key)
		}
	}

	if err = s.objectStore.Delete(keys...); err != nil {
		return fmt.Errorf("error removing files of photograph %s: %w", photo.UUID, err)
	}

	slog.Info("photograph deleted", "uuid", photo.UUID, "filesRemoved", len(keys))
	return nil
}

func (s UploadService) readOriginal(body io.Reader) ([]byte, error) {
	if body == nil {
		return nil, fmt.Errorf("%w: no image provided", ErrUnsupportedImage)
	}

	original, err := io.ReadAll(io.LimitReader(body, s.maxUploadBytes+1))

	if err != nil {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}

	if int64(len(original)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrUploadTooLarge, s.maxUploadBytes)
	}

	return original, nil
}

func (s UploadService) removeObjects(l *slog.Logger, keys []string) {
	if len(keys) == 0 {
		return
	}

	if err := s.objectStore.Delete(keys...); err != nil {
		l.Error("error removing stored files", "keys", keys, "error", err)
	}
}

/*
staleKeys returns the keys in from that are not in keep.
*/
func staleKeys(from, keep []string) []string {
	result := []string{}

	for _, key := range from {
		if !slices.IsInSlice(key, keep) {
			result = append(result, key)
		}
	}

	return result
}
