package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storekeeper-api/internal/application/analytics"
	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/usecase"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
)

// StoreHandler tiendas y su valorización (protegido).
type StoreHandler struct {
	uc        *usecase.StoreUseCase
	valuation *analytics.ValuationUseCase
	log       *logger.Logger
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase, valuation *analytics.ValuationUseCase, log *logger.Logger) *StoreHandler {
	return &StoreHandler{uc: uc, valuation: valuation, log: log}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.StoreResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tiendas del usuario
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        search  query  string  false  "Texto en nombre o descripción"
// @Success      200     {object}  dto.StoreListResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	q := dto.StoreListQuery{PageRequest: pageFromQuery(c), Search: c.Query("search")}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de tienda con productos
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tienda (parcial)
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la tienda"
// @Param        body  body  dto.UpdateStoreRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.StoreResponse
// @Router       /api/stores/{id} [patch]
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStoreRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Productos de una tienda
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id        path   string  true   "ID de la tienda"
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(10)
// @Param        category  query  string  false  "Categoría"
// @Param        search    query  string  false  "Texto"
// @Param        lowStock  query  bool    false  "Solo cantidad <= 10"
// @Success      200       {object}  dto.StoreProductsResponse
// @Router       /api/stores/{id}/products [get]
func (h *StoreHandler) Products(c *fiber.Ctx) error {
	q := dto.StoreProductsQuery{
		PageRequest: pageFromQuery(c),
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		LowStock:    c.QueryBool("lowStock", false),
	}
	out, err := h.uc.Products(c.UserContext(), GetUserID(c), c.Params("id"), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InventoryValue godoc
// @Summary      Valor del inventario por categoría
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/stores/{id}/inventory-value [get]
func (h *StoreHandler) InventoryValue(c *fiber.Ctx) error {
	out, err := h.valuation.InventoryValue(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InventoryReport godoc
// @Summary      Reporte PDF de valorización
// @Tags         stores
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {file}  binary
// @Router       /api/stores/{id}/inventory-report [get]
func (h *StoreHandler) InventoryReport(c *fiber.Ctx) error {
	pdf, filename, err := h.valuation.InventoryReport(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
