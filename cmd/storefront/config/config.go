package config

import (
	"flag"
	"os"
	"time"

	"go-storefront/internal/storefront"
	"go-storefront/internal/storefront/data/database"
	"go-storefront/internal/storefront/imageproxy"
)

const (
	serverAddressFlag      = "a"
	serverAddressEnv       = "RUN_ADDRESS"
	serverAddressDefault   = "localhost:8080"
	backendAPIURLFlag      = "b"
	backendAPIURLEnv       = "BACKEND_API_URL"
	backendAPIURLDefault   = "http://localhost:8081/api/v1"
	dbConnectionStringFlag = "d"
	dbConnectionStringEnv  = "DATABASE_URI"
	dbConnectionStringDef  = ""
)

type Config struct {
	Server          storefront.Config
	ImageProxy      imageproxy.Config
	JWTConfig       JWTConfig
	DB              database.Config
	ShutdownTimeout time.Duration
}

type JWTConfig struct {
	Algorithm      string
	Secret         string
	ExpirationTime time.Duration
}

func Load() (*Config, error) {
	serverAddress := flag.String(
		serverAddressFlag,
		serverAddressDefault,
		"Server address host:port",
	)

	backendAPIURL := flag.String(
		backendAPIURLFlag,
		backendAPIURLDefault,
		"Backend API base URL (images are proxied from its origin)",
	)

	dbConnectionString := flag.String(
		dbConnectionStringFlag,
		dbConnectionStringDef,
		"PostgreSQL connection string",
	)

	flag.Parse()

	if valStr, ok := os.LookupEnv(serverAddressEnv); ok {
		*serverAddress = valStr
	}

	if valStr, ok := os.LookupEnv(backendAPIURLEnv); ok {
		*backendAPIURL = valStr
	}

	if valStr, ok := os.LookupEnv(dbConnectionStringEnv); ok {
		*dbConnectionString = valStr
	}

	return &Config{
		Server: storefront.Config{
			ServerAddress:   *serverAddress,
			ShutdownTimeout: time.Second * 5,
		},
		ImageProxy: imageproxy.Config{
			UpstreamOrigin: imageproxy.DeriveUpstreamOrigin(*backendAPIURL),
			FetchTimeout:   imageproxy.DefaultFetchTimeout,
		},
		JWTConfig: JWTConfig{
			Algorithm:      "HS256",
			Secret:         "secret",
			ExpirationTime: time.Hour,
		},
		DB: database.Config{
			ConnectionString: *dbConnectionString,
		},
		ShutdownTimeout: time.Second * 5,
	}, nil
}
