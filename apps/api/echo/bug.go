package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Akr1040317/hiveUniDash/core/bug"
)

type bugApi struct {
	deps ServerDeps
}

func registerBugAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := bugApi{deps: deps}

	bg := g.Group("/bugs", jwt, region)
	bg.GET("", api.query)
	bg.GET("/board", api.board)
	bg.POST("", api.create)
	bg.GET("/:id", api.retrieve)
	bg.PUT("/:id", api.update)
	bg.PATCH("/:id/status", api.updateStatus)
	bg.PATCH("/:id/field", api.updateField)
	bg.DELETE("/:id", api.destroy)
}

func (api *bugApi) query(ctx echo.Context) error {
	var filter bug.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []bug.Bug{})
	}
	items := api.deps.BugSvc.Filter(ctx.Request().Context(), getContextRegion(ctx), filter)
	return ctx.JSON(http.StatusOK, items)
}

// board returns the bugs grouped by workflow column, titles and extras
// resolved for the request's tenant.
func (api *bugApi) board(ctx echo.Context) error {
	b := api.deps.Boards.BugBoard(ctx.Request().Context(), getContextRegion(ctx))
	return ctx.JSON(http.StatusOK, b.Columns())
}

func (api *bugApi) create(ctx echo.Context) error {
	var data bug.NewBug
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBug")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	b, err := api.deps.BugSvc.Create(ctx.Request().Context(), getContextRegion(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating bug")
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *bugApi) retrieve(ctx echo.Context) error {
	b, err := api.deps.BugSvc.GetByID(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == bug.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding bug by ID")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *bugApi) update(ctx echo.Context) error {
	var data bug.UpdateBug
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBug")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	b, err := api.deps.BugSvc.Update(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == bug.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating bug")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *bugApi) updateStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}

	// through the board, so a failed write snaps the card back
	err := api.deps.Boards.MoveBug(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data.Status)
	if err != nil {
		if errors.Cause(err) == bug.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *bugApi) updateField(ctx echo.Context) error {
	var data FieldRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FieldRequest")
	}
	if data.Field == "" {
		return errors.Wrap(echo.NewHTTPError(http.StatusBadRequest, "field is required"), "updating bug field")
	}

	err := api.deps.Boards.EditBugField(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data.Field, data.Value)
	if err != nil {
		if errors.Cause(err) == bug.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *bugApi) destroy(ctx echo.Context) error {
	if err := api.deps.BugSvc.Delete(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id")); err != nil {
		if errors.Cause(err) == bug.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting bug")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	StatusRequest struct {
		Status string `json:"status"`
	}

	FieldRequest struct {
		Field string      `json:"field"`
		Value interface{} `json:"value"`
	}
)
