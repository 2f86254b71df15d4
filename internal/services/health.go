package services

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/trudransh/kpa-formsdb/internal/config"
	"github.com/trudransh/kpa-formsdb/internal/utils"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
		return result
	}

	if err := sqlDB.Ping(); err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_ping_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
		log.Printf("Health check failed - database ping: %v", err)
		return result
	}

	// SQLite is file-backed; networked databases also get a raw TCP probe so
	// an exhausted pool and an unreachable host are distinguishable
	if cfg.DBType != "sqlite" {
		if err := utils.PingDatabase(cfg.DBHost, cfg.DBPort); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_tcp_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database endpoint unreachable: %v", err)
			log.Printf("Health check failed - database endpoint: %v", err)
			return result
		}
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	return result
}
