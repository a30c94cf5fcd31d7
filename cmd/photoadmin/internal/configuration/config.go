package configuration

import "github.com/adampresley/configinator"

type Config struct {
	Action             string `flag:"action" env:"ACTION" default:"list" description:"One of upload, replace, delete, create-album, add-to-album, create-service or list"`
	Album              string `flag:"album" env:"ALBUM" default:"" description:"UUID of the album for add-to-album"`
	Albums             string `flag:"albums" env:"ALBUMS" default:"" description:"Comma separated album UUIDs to add an upload to"`
	AwsEndpointUrl     string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion          string `flag:"awsregion" env:"AWS_REGION" default:"us-east-1" description:"AWS region"`
	AwsAccessKeyId     string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket          string `flag:"awsbucket" env:"AWS_BUCKET" default:"danehillard.com" description:"S3 bucket"`
	Description        string `flag:"description" env:"DESCRIPTION" default:"" description:"Description of the photograph or service"`
	DSN                string `flag:"dsn" env:"DSN" default:"file:./data/dhp.db" description:"Data source name"`
	File               string `flag:"file" env:"FILE" default:"" description:"Path to the original image"`
	LogLevel           string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxUploadMB        int    `flag:"maxuploadmb" env:"MAX_UPLOAD_MB" default:"50" description:"Largest original accepted, in megabytes"`
	PhotographFolder   string `flag:"pf" env:"PHOTOGRAPH_FOLDER" default:"photographs" description:"S3 folder for photographs and their derivatives"`
	Price              string `flag:"price" env:"PRICE" default:"" description:"Price of a service, such as 150.00. Empty for no price"`
	Private            bool   `flag:"private" env:"PRIVATE" default:"false" description:"Upload or create the item as not public"`
	SortOrder          int    `flag:"sortorder" env:"SORT_ORDER" default:"11" description:"Sort order of a new album"`
	Title              string `flag:"title" env:"TITLE" default:"" description:"Title of the photograph, album or service"`
	User               int    `flag:"user" env:"USER_ID" default:"1" description:"ID of the user that owns the upload"`
	UUID               string `flag:"uuid" env:"PHOTO_UUID" default:"" description:"UUID of the photograph to replace, delete or add to an album"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
