package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/danehillard/dhp/cmd/photoadmin/internal/admin"
	"github.com/danehillard/dhp/cmd/photoadmin/internal/configuration"
	"github.com/danehillard/dhp/pkg/database"
	"github.com/danehillard/dhp/pkg/services"
	"github.com/danehillard/dhp/pkg/storage"
)

var (
	Version string = "development"
	appName string = "dhp-photoadmin"
)

func main() {
	config := configuration.LoadConfig()
	setupLogger(&config)

	slog.Debug("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("action", config.Action),
		slog.String("awsEndpointUrl", config.AwsEndpointUrl),
	)

	if err := run(config); err != nil {
		slog.Error("command failed", "action", config.Action, "error", err)
		os.Exit(1)
	}
}

func run(config configuration.Config) error {
	db, err := database.Connect(config.DSN)

	if err != nil {
		return err
	}

	s3Client, err := storage.ConnectS3(storage.S3Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	})

	if err != nil {
		return err
	}

	objectStore := storage.NewS3Store(storage.S3StoreConfig{
		Bucket:   config.AwsBucket,
		Region:   config.AwsRegion,
		S3Client: s3Client,
	})

	if err = objectStore.EnsureBucket(); err != nil {
		return err
	}

	photographService := services.NewPhotographService(services.PhotographServiceConfig{
		DB: db,
	})

	derivativeService, err := services.NewDerivativeService(services.DerivativeServiceConfig{
		Folder:      config.PhotographFolder,
		ObjectStore: objectStore,
	})

	if err != nil {
		return err
	}

	commands := admin.NewCommands(admin.CommandsConfig{
		AlbumService:      services.NewAlbumService(services.AlbumServiceConfig{DB: db}),
		OfferingService:   services.NewOfferingService(services.OfferingServiceConfig{DB: db}),
		Out:               os.Stdout,
		PhotographService: photographService,
		UploadService: services.NewUploadService(services.UploadServiceConfig{
			DerivativeService: derivativeService,
			Folder:            config.PhotographFolder,
			MaxUploadBytes:    int64(config.MaxUploadMB) << 20,
			ObjectStore:       objectStore,
			PhotographService: photographService,
		}),
	})

	return commands.Run(config.Action, admin.Arguments{
		Album:       config.Album,
		Albums:      splitList(config.Albums),
		Description: config.Description,
		File:        config.File,
		Price:       config.Price,
		Private:     config.Private,
		SortOrder:   config.SortOrder,
		Title:       config.Title,
		User:        uint(max(config.User, 0)),
		UUID:        config.UUID,
	})
}

func splitList(value string) []string {
	result := []string{}

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}
