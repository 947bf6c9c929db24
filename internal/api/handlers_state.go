package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fitnutri/internal/store"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GetState(c *fiber.Ctx) error {
	return c.JSON(handler.store.State())
}

func (handler *Handler) GetSlice(c *fiber.Ctx) error {
	slice, ok := handler.store.State().Slice(c.Params("slice"))
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "error.unknown_slice", nil)
	}
	return c.JSON(slice)
}

func (handler *Handler) ListActionTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"types": store.ActionTypes()})
}

// DispatchAction accepts /api/actions/<slice>/<name>, the escaped
// /api/actions/<slice>%2F<name> and /api/actions/<slice>.<name>.
func (handler *Handler) DispatchAction(c *fiber.Ctx) error {
	actionType := c.Params("type")
	if slice := c.Params("slice"); slice != "" {
		actionType = slice + "/" + c.Params("name")
	}
	if unescaped, err := url.PathUnescape(actionType); err == nil {
		actionType = unescaped
	}

	action, err := store.DecodeAction(actionType, c.Body())
	if err != nil {
		return handler.respondError(c, err)
	}
	if err := handler.store.Dispatch(action); err != nil {
		return handler.respondError(c, err)
	}

	sliceName := store.SliceOf(action.Type())
	state, _ := handler.store.State().Slice(sliceName)
	return c.JSON(fiber.Map{
		"type":  action.Type(),
		"slice": sliceName,
		"state": state,
	})
}
