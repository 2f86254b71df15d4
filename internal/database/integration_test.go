package database_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trudransh/kpa-formsdb/internal/config"
	"github.com/trudransh/kpa-formsdb/internal/database"
	"github.com/trudransh/kpa-formsdb/internal/models"
	"github.com/trudransh/kpa-formsdb/internal/services"
)

// TestWithMariaDB runs the migration, seed, and unique-key behavior
// against a real MariaDB container
func TestWithMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11.4"
	}

	mariadbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "rootpass",
				"MARIADB_DATABASE":      "testdb",
				"MARIADB_USER":          "testuser",
				"MARIADB_PASSWORD":      "testpass",
			},
			WaitingFor: wait.ForLog("ready for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB container: %v", err)
	}
	defer func() {
		if err := mariadbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB container: %v", err)
		}
	}()

	host, err := mariadbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := mariadbContainer.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        "testdb",
		DBUser:            "testuser",
		DBPassword:        "testpass",
		DBConnectionLimit: 5,
		BcryptCost:        bcrypt.MinCost,
		SeedDefaultUser:   true,
	}

	// Give the entrypoint time to finish its restart cycle
	time.Sleep(5 * time.Second)

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.Seed(db, cfg); err != nil {
		t.Fatalf("Failed to seed database: %v", err)
	}

	t.Run("SeedIsIdempotent", func(t *testing.T) {
		testSeedIsIdempotent(t, db, cfg)
	})

	t.Run("UniqueFormNumberEnforced", func(t *testing.T) {
		testUniqueFormNumberEnforced(t, db)
	})

	t.Run("HealthCheck", func(t *testing.T) {
		result := services.HealthCheck(cfg, db)
		if result.Status != "healthy" {
			t.Errorf("Expected healthy status, got %q (%s)", result.Status, result.ErrorMessage)
		}
	})
}

func testSeedIsIdempotent(t *testing.T, db *gorm.DB, cfg *config.Config) {
	if err := database.Seed(db, cfg); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	var count int64
	db.Model(&models.User{}).Where("phone_number = ?", database.DefaultUserPhone).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one seeded user, got %d", count)
	}
}

// testUniqueFormNumberEnforced writes a second row directly, bypassing the
// service-layer pre-check, to confirm the index itself is the final guard
func testUniqueFormNumberEnforced(t *testing.T, db *gorm.DB) {
	fields, err := models.NewJSON(map[string]interface{}{"wheelGauge": "1600 (+2,-1)"})
	if err != nil {
		t.Fatalf("Failed to build fields blob: %v", err)
	}
	first := &models.WheelSpecification{
		FormNumber:    "IT-WS-1",
		SubmittedBy:   "integration",
		SubmittedDate: "2025-07-03",
		Status:        services.StatusSaved,
		Fields:        fields,
	}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	empty, err := models.NewJSON(map[string]interface{}{})
	if err != nil {
		t.Fatalf("Failed to build empty blob: %v", err)
	}
	dup := &models.WheelSpecification{
		FormNumber:    "IT-WS-1",
		SubmittedBy:   "someone_else",
		SubmittedDate: "2025-07-04",
		Status:        services.StatusSaved,
		Fields:        empty,
	}
	if err := db.Create(dup).Error; err == nil {
		t.Error("Expected duplicate form number insert to fail at the index")
	}

	var count int64
	db.Model(&models.WheelSpecification{}).Where("form_number = ?", "IT-WS-1").Count(&count)
	if count != 1 {
		t.Errorf("Expected one row for IT-WS-1, got %d", count)
	}
}

// TestConnectRejectsUnknownDialect does not need a container
func TestConnectRejectsUnknownDialect(t *testing.T) {
	_, err := database.Connect(&config.Config{DBType: "oracle", DBDatabase: "x"})
	if err == nil {
		t.Fatal("Expected error for unsupported database type")
	}
}
