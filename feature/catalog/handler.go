package catalog

import (
	"errors"
	"io"

	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/record"
	"catalog-sync/core/utils"
	"catalog-sync/feature/spreadsheet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadField is the multipart field carrying a workbook.
const UploadField = "workbook"

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Post("/plan", h.HandlePlan)
	group.Post("/apply", h.HandleApply)
	group.Get("/products", h.HandleListProducts)
	group.Get("/products/:code", h.HandleGetProduct)
}

// source returns the uploaded workbook or CSV source, or nil for the
// configured one. The sheet and header_row form fields override the
// configured sheet options.
func (h *Handler) source(c *fiber.Ctx) (reconcile.Source, error) {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		// no upload
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	opts := h.service.Settings().Sheet
	if sheet := c.FormValue("sheet"); sheet != "" {
		opts.Sheet = sheet
	}
	if row := utils.ToInt(c.FormValue("header_row")); row > 0 {
		opts.HeaderRow = row
	}
	return spreadsheet.NewBytesSource(fh.Filename, data, opts), nil
}

// HandlePlan returns the change set without writing.
// @Summary Plan Catalog Sync
// @Description Diffs the catalog page against the configured source or an uploaded workbook. Nothing is written.
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param workbook formData file false "Workbook or CSV to use as the source"
// @Param sheet formData string false "Sheet holding the table"
// @Param header_row formData integer false "1-based header row"
// @Success 200 {object} reconcile.Plan "Plan"
// @Failure 400 {object} map[string]string "No source"
// @Failure 422 {object} map[string]string "Invalid page or source"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	src, err := h.source(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	plan, err := h.service.Plan(c.Context(), src)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(plan)
}

// HandleApply plans and writes the page.
// @Summary Apply Catalog Sync
// @Description Diffs the catalog page against the source and rewrites the table. Use dry_run to only plan.
// @Tags catalog
// @Accept multipart/form-data
// @Produce json
// @Param workbook formData file false "Workbook or CSV to use as the source"
// @Param sheet formData string false "Sheet holding the table"
// @Param header_row formData integer false "1-based header row"
// @Param dry_run query boolean false "Plan only"
// @Success 200 {object} ApplyResult "Apply Result"
// @Failure 400 {object} map[string]string "No source"
// @Failure 422 {object} map[string]string "Invalid page or source"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	dryRun := utils.ToBool(c.Query("dry_run"))

	src, err := h.source(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	res, err := h.service.Apply(c.Context(), src, dryRun)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Catalog apply finished",
		zap.Bool("dry_run", dryRun),
		zap.Bool("written", res.Written),
		zap.String("changes", res.Plan.Changes.String()))
	return c.JSON(res)
}

// HandleListProducts returns every product of the page.
// @Summary List Products
// @Description Lists the products of the catalog page in page order.
// @Tags catalog
// @Produce json
// @Success 200 {array} record.Product "Products"
// @Failure 422 {object} map[string]string "Invalid page"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/products [get]
func (h *Handler) HandleListProducts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	set, err := h.service.Products(c.Context())
	if err != nil {
		return h.fail(c, l, err)
	}

	schema := set.Schema()
	products := make([]record.Product, 0, set.Len())
	for _, r := range set.Records() {
		products = append(products, schema.ToProduct(r))
	}
	return c.JSON(products)
}

// HandleGetProduct returns one product of the page.
// @Summary Get Product
// @Description Get a single product of the catalog page by its key.
// @Tags catalog
// @Produce json
// @Param code path string true "Product key"
// @Success 200 {object} record.Product "Product"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/products/{code} [get]
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	p, err := h.service.Product(c.Context(), c.Params("code"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(p)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Catalog request failed", zap.Error(err))
	} else {
		l.Warn("Catalog request rejected", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps an error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrNoSource):
		return fiber.StatusBadRequest
	case errors.Is(err, record.ErrStructure), errors.Is(err, record.ErrValidation):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
