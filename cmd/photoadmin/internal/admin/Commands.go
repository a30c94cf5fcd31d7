package admin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adampresley/adamgokit/slices"
	"github.com/danehillard/dhp/pkg/models"
	"github.com/danehillard/dhp/pkg/services"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownAction   = errors.New("unknown action")
	ErrMissingArgument = errors.New("missing argument")
)

/*
Arguments are the flags a command reads. Which ones are required depends
on the action.
*/
type Arguments struct {
	Album       string
	Albums      []string
	Description string
	File        string
	Price       string
	Private     bool
	SortOrder   int
	Title       string
	User        uint
	UUID        string
}

type CommandsConfig struct {
	AlbumService      services.AlbumServicer
	OfferingService   services.OfferingServicer
	Out               io.Writer
	PhotographService services.PhotographServicer
	UploadService     services.UploadServicer
}

type Commands struct {
	albumService      services.AlbumServicer
	offeringService   services.OfferingServicer
	out               io.Writer
	photographService services.PhotographServicer
	uploadService     services.UploadServicer
}

func NewCommands(config CommandsConfig) Commands {
	if config.Out == nil {
		config.Out = os.Stdout
	}

	return Commands{
		albumService:      config.AlbumService,
		offeringService:   config.OfferingService,
		out:               config.Out,
		photographService: config.PhotographService,
		uploadService:     config.UploadService,
	}
}

func (c Commands) Run(action string, args Arguments) error {
	switch action {
	case "upload":
		return c.Upload(args)
	case "replace":
		return c.Replace(args)
	case "delete":
		return c.Delete(args)
	case "create-album":
		return c.CreateAlbum(args)
	case "add-to-album":
		return c.AddToAlbum(args)
	case "create-service":
		return c.CreateService(args)
	case "list":
		return c.List()
	}

	return fmt.Errorf("%w '%s'", ErrUnknownAction, action)
}

func (c Commands) Upload(args Arguments) error {
	var (
		err      error
		f        *os.File
		albumIDs []uint
		photo    *models.Photograph
	)

	if err = require(map[string]string{"file": args.File, "title": args.Title}); err != nil {
		return err
	}

	if albumIDs, err = c.albumIDs(args.Albums); err != nil {
		return err
	}

	if f, err = os.Open(args.File); err != nil {
		return fmt.Errorf("error opening '%s': %w", args.File, err)
	}

	defer f.Close()

	photo, err = c.uploadService.Upload(services.UploadInput{
		Title:         args.Title,
		Description:   args.Description,
		FileName:      filepath.Base(args.File),
		Body:          f,
		AlbumIDs:      albumIDs,
		UserID:        args.User,
		Public:        !args.Private,
		PublishedDate: time.Now(),
	})

	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "uploaded %s (%s, %dx%d)\n", photo.UUID, photo.Orientation.String(), photo.Width, photo.Height)
	return nil
}

func (c Commands) Replace(args Arguments) error {
	var (
		err   error
		f     *os.File
		photo *models.Photograph
	)

	if err = require(map[string]string{"uuid": args.UUID, "file": args.File}); err != nil {
		return err
	}

	if f, err = os.Open(args.File); err != nil {
		return fmt.Errorf("error opening '%s': %w", args.File, err)
	}

	defer f.Close()

	if photo, err = c.uploadService.Replace(args.UUID, filepath.Base(args.File), f); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "replaced original of %s (%s, %dx%d)\n", photo.UUID, photo.Orientation.String(), photo.Width, photo.Height)
	return nil
}

func (c Commands) Delete(args Arguments) error {
	if err := require(map[string]string{"uuid": args.UUID}); err != nil {
		return err
	}

	if err := c.uploadService.Delete(args.UUID); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "deleted %s\n", args.UUID)
	return nil
}

func (c Commands) CreateAlbum(args Arguments) error {
	if err := require(map[string]string{"title": args.Title}); err != nil {
		return err
	}

	album := &models.Album{
		Title:     args.Title,
		SortOrder: args.SortOrder,
		Public:    !args.Private,
	}

	if args.User > 0 {
		album.UserID = &args.User
	}

	if err := c.albumService.Create(album); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "created album %s '%s'\n", album.UUID, album.Title)
	return nil
}

func (c Commands) AddToAlbum(args Arguments) error {
	var (
		err   error
		album *models.Album
		photo *models.Photograph
	)

	if err = require(map[string]string{"uuid": args.UUID, "album": args.Album}); err != nil {
		return err
	}

	if album, err = c.albumService.GetAlbum(args.Album); err != nil {
		return err
	}

	if photo, err = c.photographService.GetByUUID(args.UUID); err != nil {
		return err
	}

	if err = c.albumService.AddPhotograph(album.ID, photo.ID); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "added %s to album '%s'\n", photo.UUID, album.Title)
	return nil
}

func (c Commands) CreateService(args Arguments) error {
	if err := require(map[string]string{"title": args.Title}); err != nil {
		return err
	}

	service := &models.Service{
		Title:       args.Title,
		Description: args.Description,
	}

	if args.Price != "" {
		price, err := decimal.NewFromString(strings.TrimPrefix(args.Price, "$"))

		if err != nil {
			return fmt.Errorf("invalid price '%s': %w", args.Price, err)
		}

		service.Price = decimal.NewNullDecimal(price)
	}

	if err := c.offeringService.Create(service); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "created service %d '%s' %s\n", service.ID, service.Title, service.DisplayPrice())
	return nil
}

/*
List prints every album with its photographs, including private ones,
followed by the services.
*/
func (c Commands) List() error {
	var (
		err       error
		albums    []*models.Album
		photos    []models.Photograph
		offerings []models.Service
	)

	if albums, err = c.albumService.GetAlbumList(false); err != nil {
		return err
	}

	for _, album := range albums {
		fmt.Fprintf(c.out, "album %s '%s' (sort %d, public %t)\n", album.UUID, album.Title, album.SortOrder, album.Public)

		if photos, err = c.photographService.GetByAlbum(album.ID, false); err != nil {
			return err
		}

		for _, photo := range photos {
			missing := ""

			if !photo.HasAllDerivatives() {
				missing = " missing derivatives"
			}

			fmt.Fprintf(c.out, "   photo %s '%s' %s %dx%d%s\n", photo.UUID, photo.Title, photo.Orientation.String(), photo.Width, photo.Height, missing)
		}
	}

	if offerings, err = c.offeringService.GetAll(); err != nil {
		return err
	}

	for _, offering := range offerings {
		fmt.Fprintf(c.out, "service %d '%s' %s\n", offering.ID, offering.Title, offering.DisplayPrice())
	}

	return nil
}

func (c Commands) albumIDs(albumUUIDs []string) ([]uint, error) {
	albums := []*models.Album{}

	for _, albumUUID := range albumUUIDs {
		album, err := c.albumService.GetAlbum(albumUUID)

		if err != nil {
			return nil, err
		}

		albums = append(albums, album)
	}

	return slices.Map(albums, func(album *models.Album, index int) uint {
		return album.ID
	}), nil
}

func require(values map[string]string) error {
	missing := []string{}

	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, "-"+name)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingArgument, strings.Join(missing, ", "))
	}

	return nil
}
