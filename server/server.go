// Package server exposes the memory surface over HTTP. It is thin
// plumbing: handlers decode requests, delegate to the memory manager and
// map results to JSON; no memory semantics live here.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/playermind/playermind/core"
	"github.com/playermind/playermind/logging"
	"github.com/playermind/playermind/memory"
)

// Config configures the HTTP server.
type Config struct {
	ListenAddr string
}

// Server is the REST front for a memory manager.
type Server struct {
	config  Config
	manager *memory.Manager
	logger  logging.Logger
	app     *fiber.App
}

// NewServer creates the server and registers its routes. The manager is
// injected so it can be shared with other components.
func NewServer(config Config, manager *memory.Manager, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{config: config, manager: manager, logger: logger, app: app}

	app.Get("/", s.handleHealth)
	app.Get("/health", s.handleHealth)
	app.Post("/event", s.handleRecordEvent)
	app.Get("/context/:player", s.handleContext)
	app.Get("/memory/status", s.handleStatus)
	app.Get("/memory/facts/:player", s.handleFacts)
	app.Get("/memory/recent/:player", s.handleRecent)
	app.Post("/memory/consolidate/:player", s.handleConsolidate)
	app.Delete("/memory/short-term/:player", s.handleClearShortTerm)
	app.Delete("/memory/short-term", s.handleClearShortTerm)
	app.Delete("/memory", s.handleClearAll)
	app.Post("/memory/export", s.handleExport)

	return s
}

// App returns the underlying fiber app (used by tests).
func (s *Server) App() *fiber.App { return s.app }

// Run starts the server on the configured address and blocks.
func (s *Server) Run() error {
	s.logger.Info("starting memory API server", "listen", s.config.ListenAddr)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	stats := s.manager.Status()
	return c.JSON(fiber.Map{
		"status":             "healthy",
		"events_processed":   stats.TotalEvents,
		"consolidations_run": stats.ConsolidationsRun,
	})
}

type recordEventRequest struct {
	Player  string            `json:"player"`
	Kind    core.EventKind    `json:"kind"`
	Payload map[string]string `json:"payload"`
}

func (s *Server) handleRecordEvent(c *fiber.Ctx) error {
	var req recordEventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	ev, err := s.manager.RecordEvent(c.UserContext(), req.Player, req.Kind, req.Payload)
	if err != nil {
		if ev.ID != "" {
			// Event was accepted; only the snapshot write failed. Memory
			// stays authoritative, so report the event with a warning.
			s.logger.Error("snapshot save failed after event", "player", req.Player, "error", err)
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"event": ev, "warning": "snapshot not persisted"})
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": ev})
}

func (s *Server) handleContext(c *fiber.Ctx) error {
	ctx := s.manager.Context(c.UserContext(), c.Params("player"))
	return c.JSON(ctx)
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.manager.Status())
}

func (s *Server) handleFacts(c *fiber.Ctx) error {
	facts := s.manager.Facts(c.Params("player"))
	if facts == nil {
		facts = []core.Fact{}
	}
	return c.JSON(fiber.Map{"player": c.Params("player"), "facts": facts})
}

func (s *Server) handleRecent(c *fiber.Ctx) error {
	events := s.manager.Recent(c.Params("player"), c.QueryInt("count", 0))
	if events == nil {
		events = []core.Event{}
	}
	return c.JSON(fiber.Map{"player": c.Params("player"), "events": events})
}

func (s *Server) handleConsolidate(c *fiber.Ctx) error {
	if err := s.manager.ForceConsolidate(c.UserContext(), c.Params("player")); err != nil {
		if errors.Is(err, memory.ErrNoSummarizer) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(fiber.Map{"status": "consolidated", "player": c.Params("player")})
}

func (s *Server) handleClearShortTerm(c *fiber.Ctx) error {
	player := c.Params("player")
	if err := s.manager.ClearShortTerm(player); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"status": "short-term cleared", "player": player})
}

func (s *Server) handleClearAll(c *fiber.Ctx) error {
	if err := s.manager.ClearAll(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"status": "memory cleared"})
}

type exportRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	var req exportRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return fiber.NewError(fiber.StatusBadRequest, "path is required")
	}
	if err := s.manager.Export(req.Path); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"status": "exported", "path": req.Path})
}
