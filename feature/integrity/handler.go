package integrity

import (
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/core/utils"
	"catalog-sync/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	var _ = checks.DatabaseReport{} // Force import for Swagger
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/document", h.HandleDocumentCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
}

func disabled(err error) bool {
	return errors.Is(err, ErrStorageDisabled) || errors.Is(err, ErrDatabaseDisabled)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Document, Storage, Database). Unconfigured checks are skipped.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} Report "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.CheckAll(c.Context())
	if !report.OK {
		l.Warn("Integrity checks reported problems")
	}
	return c.JSON(report)
}

// HandleDocumentCheck checks the catalog page.
// @Summary Check Document
// @Description Parses the catalog page, reports whether it is complete or trimmed and validates every row.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.DocumentReport "Document Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/document [get]
func (h *Handler) HandleDocumentCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckDocument(c.Context())
	if err != nil {
		l.Error("Document check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(report.Issues) > 0 {
		l.Warn("Document issues detected", zap.Strings("issues", report.Issues))
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the bucket.
// @Summary Check Storage
// @Description Checks the storage bucket, the document folder and the page object. Optionally creates the missing bucket and folder.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create missing bucket and folder"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	report, err := h.service.CheckStorage(c.Context())
	if disabled(err) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(report.Missing) > 0 {
		l.Warn("Missing storage entries detected", zap.Strings("missing", report.Missing))

		if fix {
			l.Info("Attempting to fix storage")
			if err := h.service.FixStorage(c.Context(), report.Missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix storage",
					"details": err.Error(),
					"missing": report.Missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  report.Missing,
				"report": report,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"report": report,
	})
}

// HandleDatabaseCheck checks the products table.
// @Summary Check Database
// @Description Checks that the products table has the mapped columns with compatible types.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.DatabaseReport "Database Report"
// @Failure 503 {object} map[string]string "Database not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting database schema check")

	report, err := h.service.CheckDatabase(c.Context())
	if disabled(err) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Database check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
