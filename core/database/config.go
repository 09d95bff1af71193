package database

// Supported values of Config.Driver.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config describes the database connection.
type Config struct {
	Driver string `mapstructure:"driver" default:"mysql"`
	Host   string `mapstructure:"host" default:"localhost"`
	Port   int    `mapstructure:"port" default:"3306"`
	User   string `mapstructure:"user" default:"root"`
	// Password may contain any characters; it is escaped in the DSN.
	Password string `mapstructure:"password" default:""`
	// Name is the schema name for MySQL and the file path (or ":memory:") for SQLite.
	Name string `mapstructure:"name" default:"booktracker"`
	// TimeoutSeconds bounds the connect, read and write deadlines and the startup ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
