package config

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "3000" // the port Juice Shop listens on
	}

	return ServerConfig{
		Port: port,
	}
}
