package storage

// Config points at the S3-compatible bucket that holds library exports.
type Config struct {
	// Endpoint is host[:port]; an http:// or https:// prefix is stripped.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	Region    string `mapstructure:"region" default:""`

	Bucket string `mapstructure:"bucket" default:"booktracker"`
	// ExportPrefix is prepended to every export object, as <prefix>/<owner>/<name>.json.
	ExportPrefix string `mapstructure:"export_prefix" default:"exports"`

	// TimeoutSeconds bounds dialing, the TLS handshake and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
