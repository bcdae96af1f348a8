package cmd

// Config carries all runtime settings, loaded from the environment by the
// application entry point.
type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	WSAccessToken string
}
