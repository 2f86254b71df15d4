package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/trudransh/kpa-formsdb/data"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a disposable MariaDB for local kpa-formsdb development with the
environment variables from the .env file.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11.4"
	}
	dbName := envOr("DB_DATABASE", "kpa_forms")
	dbUser := envOr("DB_USER", "kpa_service")
	dbPassword := envOr("DB_PASSWORD", "kpa_password")

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "rootpass",
				"MARIADB_DATABASE":      dbName,
				"MARIADB_USER":          dbUser,
				"MARIADB_PASSWORD":      dbPassword,
			},
			Files: []testcontainers.ContainerFile{
				{
					Reader:            strings.NewReader(data.InitdbMariaDBTables),
					ContainerFilePath: "/docker-entrypoint-initdb.d/002-ddl-tables.sql",
					FileMode:          0o644,
				},
				{
					Reader:            strings.NewReader(data.InitdbMariaDBPrivileges),
					ContainerFilePath: "/docker-entrypoint-initdb.d/003-ddl-privileges.sql",
					FileMode:          0o644,
				},
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start MariaDB container: %v\n", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v\n", err)
	}
	port, err := container.MappedPort(ctx, "3306")
	if err != nil {
		log.Fatalf("Failed to get container port: %v\n", err)
	}

	log.Printf("MariaDB ready: DB_TYPE=mysql DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s\n",
		host, port.Port(), dbName, dbUser)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
	if err := container.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate container: %v\n", err)
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
