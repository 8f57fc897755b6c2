// Package api provides the REST API server for midi2progmem
package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/james-see/midi2progmem/pkg/encoder"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title midi2progmem API
// @version 1.0
// @description API for converting MIDI files to PROGMEM byte arrays
// @host localhost:8080
// @BasePath /api/v1

// NewRouter builds the gin engine with all routes registered
func NewRouter() *gin.Engine {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/convert", handleConvert)
		v1.GET("/info", formatInfo)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewRouter().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "midi2progmem",
	})
}

// formatInfo godoc
// @Summary Describe the packed event format
// @Description Returns the record layout of the generated byte array
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/info [get]
func formatInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bytes_per_event": encoder.BytesPerEvent,
		"fields":          []string{"delta_time_high", "delta_time_low", "event_type", "note", "velocity", "channel"},
		"event_types":     gin.H{"0": "note off", "1": "note on"},
		"max_delta":       encoder.MaxDelta,
	})
}

// handleConvert godoc
// @Summary Convert a MIDI file to a PROGMEM array
// @Description Upload a MIDI file and receive the generated C source
// @Tags convert
// @Accept multipart/form-data
// @Produce text/plain
// @Param file formData file true "MIDI file to convert"
// @Param array_name query string false "C identifier for the array (default: MIDI_DATA)"
// @Success 200 {string} string "C source"
// @Failure 400 {object} map[string]string
// @Router /api/v1/convert [post]
func handleConvert(c *gin.Context) {
	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	// Read file content
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	if !encoder.IsMIDI(data) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not a standard MIDI file"})
		return
	}

	conv := encoder.NewConverter()
	enc, err := conv.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	enc.Source = header.Filename

	arrayName := c.DefaultQuery("array_name", encoder.DefaultArrayName)
	source, err := encoder.Render(enc, arrayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Generate output filename
	outputName := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	if outputName == "" {
		outputName = "converted"
	}
	outputName += ".h"

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName))
	c.Header("X-Event-Count", fmt.Sprintf("%d", enc.Count()))
	c.Header("X-Midi-Resolution", fmt.Sprintf("%d", enc.Resolution))
	c.Data(http.StatusOK, "text/x-c", []byte(source))
}
