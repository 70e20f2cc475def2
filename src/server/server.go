package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"rate-relay/src/interfaces"
	"rate-relay/src/logger"
	"rate-relay/src/models"
	"rate-relay/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// RelayServer
// -----------------------------------------------------------------------------

type RelayServer struct {
	Config     *models.MConfig
	Logger     *logger.Logger
	engine     *gin.Engine
	registry   *Registry
	dispatcher *Dispatcher
	source     interfaces.IRateSource
}

// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewRelayServer(cfg *models.MConfig, log *logger.Logger, source interfaces.IRateSource) *RelayServer {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := NewRegistry(utils.FullName, logger.NewLogger("Registry"))

	s := &RelayServer{
		Config:     cfg,
		Logger:     log,
		engine:     gin.Default(),
		registry:   registry,
		dispatcher: NewDispatcher(registry, source, cfg),
		source:     source,
	}

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *RelayServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/rates/:date", s.getRates)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start blocks on the listener. Failure to bind is the one fatal condition
// for the whole process; per-connection failures never reach here.
func (s *RelayServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)
	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

// Registry exposes the connection registry, mainly for the health endpoint
// and tests.
func (s *RelayServer) Registry() *Registry {
	return s.registry
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *RelayServer) getHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":      "ok",
		"connections": s.registry.Len(),
	})
}

// -----------------------------------------------------------------------------

func (s *RelayServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"currencies":      s.Config.Exchange.Currencies,
		"request_timeout": s.Config.Network.RequestTimeout,
	})
}

// -----------------------------------------------------------------------------

// getRates serves one day's rates over REST, sharing the websocket path's
// source (and therefore its cache).
func (s *RelayServer) getRates(c *gin.Context) {
	dateKey := c.Param("date")
	if _, err := time.ParseInLocation(models.DateKeyLayout, dateKey, time.Local); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid date %q, expected DD.MM.YYYY", dateKey)})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(s.Config.Network.RequestTimeout)*time.Second)
	defer cancel()

	record, err := s.source.Fetch(ctx, dateKey, s.Config.Exchange.Currencies)
	if err != nil {
		s.Logger.Error("Rate lookup for %s failed: %v", dateKey, err)
		c.JSON(502, gin.H{"error": "exchange rates are currently unavailable"})
		return
	}

	c.JSON(200, record)
}

// -----------------------------------------------------------------------------
// WebSocket Handler
// -----------------------------------------------------------------------------

func (s *RelayServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := newClient(conn, s.Logger)
	identity := s.registry.Register(client)

	go client.writePump()
	go client.readPump(identity, s.registry, s.dispatcher)
}
