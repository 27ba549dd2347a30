// main.go
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/clinica/patients-api/config"
	"github.com/clinica/patients-api/endpoint"
	"github.com/clinica/patients-api/middleware"
	"github.com/clinica/patients-api/model"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWTSECRET must be set")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Patient{}); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.ConfigMiddleware(cfg))
	router.Use(middleware.DatabaseMiddleware(db))

	registerRoutes(router)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func registerRoutes(router *gin.Engine) {
	router.GET("/health", endpoint.Health)

	auth := router.Group("/auth")
	auth.POST("/register", endpoint.Register)
	auth.POST("/login", endpoint.Login)

	patients := router.Group("/patients")
	patients.Use(middleware.AuthRequired())
	patients.POST("", endpoint.CreatePatient)
	patients.GET("", endpoint.ListPatients)
	patients.GET("/:id", endpoint.GetPatient)
	patients.PUT("/:id", endpoint.UpdatePatient)
	patients.DELETE("/:id", endpoint.DeletePatient)
}
