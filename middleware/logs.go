package middleware

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"

	"ParkSys/Models"
)

// LogConfig holds configuration for the logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Enable file logging
	File bool
	// Log file path
	LogFilePath string
	// Skip logging for specific paths
	SkipPaths []string
}

// LogData contains all the information that will be logged
type LogData struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	Error     string        `json:"error,omitempty"`
	Username  string        `json:"username,omitempty"`
}

// DefaultLogConfig returns a default configuration for the logging middleware
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:     true,
		File:        true,
		LogFilePath: "logs/requests.log",
		SkipPaths:   []string{"/health"},
	}
}

// RequestLogger logs every request as a JSON line.
func RequestLogger() fiber.Handler {
	return RequestLoggerWithConfig(DefaultLogConfig())
}

func RequestLoggerWithConfig(config LogConfig) fiber.Handler {
	var logFile *os.File
	if config.File {
		if err := os.MkdirAll(filepath.Dir(config.LogFilePath), 0755); err != nil {
			log.Printf("Error creating logs directory: %v\n", err)
		} else {
			file, err := os.OpenFile(config.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				log.Printf("Error opening log file: %v\n", err)
			} else {
				logFile = file
			}
		}
	}

	return func(c *fiber.Ctx) error {
		for _, path := range config.SkipPaths {
			if c.Path() == path {
				return c.Next()
			}
		}

		start := time.Now()
		err := c.Next()

		data := LogData{
			Timestamp: start,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			Latency:   time.Since(start),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
		}
		if err != nil {
			data.Error = err.Error()
		}
		if user, ok := c.Locals("user").(Models.User); ok {
			data.Username = user.Username
		}

		line, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			return err
		}
		if config.Console {
			log.Println(string(line))
		}
		if logFile != nil {
			logFile.Write(append(line, '\n'))
		}
		return err
	}
}
