package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-admin/internal/api/dto"
	"github.com/spec-kit/helpdesk-admin/internal/auth"
	"github.com/spec-kit/helpdesk-admin/internal/service"
	apperrors "github.com/spec-kit/helpdesk-admin/pkg/util/errorutil"
)

// TablesHandler exposes the admin data tables. Every mutating endpoint
// returns the re-rendered view so clients never merge state themselves.
type TablesHandler struct {
	tables *service.TableService
}

// NewTablesHandler constructs handler.
func NewTablesHandler(tables *service.TableService) *TablesHandler {
	return &TablesHandler{tables: tables}
}

func session(c *fiber.Ctx) (service.Session, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return service.Session{}, apperrors.NewUnauthorized("authentication required")
	}
	return service.SessionFor(principal), nil
}

func (h *TablesHandler) render(c *fiber.Ctx, interactions ...service.Interaction) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	view, err := h.tables.Render(c.UserContext(), s, c.Params("resource"), interactions...)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// List handles GET /admin/tables.
func (h *TablesHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.tables.Resources()})
}

// Show handles GET /admin/tables/:resource. Optional page, page_size and
// search parameters are applied before rendering.
func (h *TablesHandler) Show(c *fiber.Ctx) error {
	var q dto.TableQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewValidationError("invalid query", map[string]any{"query": err.Error()})
	}
	q.HasSearch = c.Context().QueryArgs().Has("search")

	var interactions []service.Interaction
	if q.HasSearch {
		interactions = append(interactions, service.Interaction{Kind: service.InteractionSearch, Search: q.Search})
	}
	if q.Page != 0 || q.PageSize != 0 {
		interactions = append(interactions, service.Interaction{Kind: service.InteractionPage, Page: q.Page, PageSize: q.PageSize})
	}
	return h.render(c, interactions...)
}

// Skeleton handles GET /admin/tables/:resource/skeleton.
func (h *TablesHandler) Skeleton(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	view, err := h.tables.Skeleton(c.UserContext(), s, c.Params("resource"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": view})
}

// Sort handles POST /admin/tables/:resource/sort.
func (h *TablesHandler) Sort(c *fiber.Ctx) error {
	var req dto.SortRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Column == "" {
		return apperrors.NewValidationError("column required", nil)
	}
	return h.render(c, service.Interaction{Kind: service.InteractionSort, Column: req.Column})
}

// Search handles POST /admin/tables/:resource/search.
func (h *TablesHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return h.render(c, service.Interaction{Kind: service.InteractionSearch, Search: req.Search})
}

// Columns handles POST /admin/tables/:resource/columns.
func (h *TablesHandler) Columns(c *fiber.Ctx) error {
	var req dto.ColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Column == "" {
		return apperrors.NewValidationError("column required", nil)
	}
	return h.render(c, service.Interaction{Kind: service.InteractionToggleColumn, Column: req.Column, Visible: req.Visible})
}

// Selection handles POST /admin/tables/:resource/selection.
func (h *TablesHandler) Selection(c *fiber.Ctx) error {
	var req dto.SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.All != nil {
		return h.render(c, service.Interaction{Kind: service.InteractionSelectAll, Checked: *req.All})
	}
	return h.render(c, service.Interaction{Kind: service.InteractionToggleRow, Key: req.Key})
}

// Page handles POST /admin/tables/:resource/page.
func (h *TablesHandler) Page(c *fiber.Ctx) error {
	var req dto.PageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return h.render(c, service.Interaction{Kind: service.InteractionPage, Page: req.Page, PageSize: req.PageSize})
}

// DeleteSelection handles DELETE /admin/tables/:resource/selection.
func (h *TablesHandler) DeleteSelection(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	deleted, err := h.tables.DeleteSelected(c.UserContext(), s, c.Params("resource"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteResponse{Deleted: deleted}})
}

// ResetState handles DELETE /admin/tables/:resource/state.
func (h *TablesHandler) ResetState(c *fiber.Ctx) error {
	s, err := session(c)
	if err != nil {
		return err
	}
	if err := h.tables.ResetState(c.UserContext(), s, c.Params("resource")); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
