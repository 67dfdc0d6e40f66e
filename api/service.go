package api

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obinexuscomputing/marktree/tmpstore"
	"github.com/obinexuscomputing/marktree/util"
)

const (
	// api routes
	PingURL              = "/ping"
	DocumentsTokenizeURL = "/documents/tokenize"
	DocumentsParseURL    = "/documents/parse"
	DocumentsOptimizeURL = "/documents/optimize"
	DocumentsResultsURL  = "/documents/results"
)

// Service exposes the parsing pipeline over HTTP: tokenize, parse and
// optimize endpoints plus retrieval of stored parse results.
type Service struct {
	config util.Config
	store  tmpstore.Store
	router *gin.Engine
	server *http.Server
}

// Returns new service instance with provided config and result store.
func NewService(config util.Config, store tmpstore.Store) (*Service, error) {
	service := &Service{
		config: config,
		store:  store,
	}

	server := &http.Server{
		Addr: config.HTTPServerAddress,
	}

	// caps how long a client can take to send just the headers (blocks slowloris).
	server.ReadHeaderTimeout = 5 * time.Second
	// caps time to read the full request (incl. body).
	server.ReadTimeout = 10 * time.Second
	// caps time you'll spend writing the response (no "forever hanging" clients)
	server.WriteTimeout = 15 * time.Second
	// how long to keep idle keep-alive connections open.
	server.IdleTimeout = 60 * time.Second

	service.setupRouter(server)

	service.server = server

	return service, nil
}

// Establishes HTTP router.
func (service *Service) setupRouter(server *http.Server) {
	router := gin.Default()

	router.Use(service.corsMiddleware())
	router.Use(requestIDMiddleware())

	router.GET(PingURL, func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "pong")
	})

	documents := router.Group("/documents")
	documents.POST("/tokenize", service.tokenizeDocument)
	documents.POST("/parse", service.parseDocument)
	documents.POST("/optimize", service.optimizeDocument)
	documents.GET("/results/:id", service.getParseResult)

	server.Handler = router
	service.router = router
}

// handling CORS
func (service *Service) corsMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if slices.Contains(service.config.AllowedOrigins, origin) {
			ctx.Header("Access-Control-Allow-Origin", origin)
		}

		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		allowedHeaders := []string{
			"Content-Type",
			RequestIDHeader,
		}

		ctx.Header("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ","))

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}

// Start runs the HTTP server
func (service *Service) Start() error {
	return service.server.ListenAndServe()
}

func (service *Service) Shutdown(ctx context.Context) error {
	return service.server.Shutdown(ctx)
}
