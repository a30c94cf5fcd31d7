package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AwsEndpointUrl     string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"http://localhost:4566" description:"AWS endpoint URL"`
	AwsRegion          string `flag:"awsregion" env:"AWS_REGION" default:"us-east-1" description:"AWS region"`
	AwsAccessKeyId     string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket          string `flag:"awsbucket" env:"AWS_BUCKET" default:"danehillard.com" description:"S3 bucket"`
	BackfillInterval   int    `flag:"bfi" env:"BACKFILL_INTERVAL_MINUTES" default:"60" description:"Minutes between derivative backfill runs"`
	ContactEmail       string `flag:"contactemail" env:"CONTACT_EMAIL" default:"github@danehillard.com" description:"Address contact form messages are sent to"`
	DSN                string `flag:"dsn" env:"DSN" default:"file:./data/dhp.db" description:"Data source name"`
	EmailApiKey        string `flag:"emailapikey" env:"EMAIL_API_KEY" default:"" description:"API key for sending emails"`
	HomePagePhotoCount int    `flag:"hppc" env:"HOME_PAGE_PHOTO_COUNT" default:"12" description:"Number of photographs on the home page"`
	Host               string `flag:"host" env:"HOST" default:"localhost:8081" description:"The address and port to bind the HTTP server to"`
	LogLevel           string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxBackfillWorkers int    `flag:"mbw" env:"MAX_BACKFILL_WORKERS" default:"4" description:"Maximum number of concurrent derivative backfill workers"`
	PhotographFolder   string `flag:"pf" env:"PHOTOGRAPH_FOLDER" default:"photographs" description:"S3 folder for photographs and their derivatives"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
