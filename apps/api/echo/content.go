package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Akr1040317/hiveUniDash/core/content"
)

type contentApi struct {
	deps ServerDeps
}

func registerContentAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := contentApi{deps: deps}

	cg := g.Group("/content", jwt, region)
	cg.GET("", api.query)
	cg.GET("/stats", api.stats)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *contentApi) query(ctx echo.Context) error {
	var filter content.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []content.Content{})
	}
	items := api.deps.ContentSvc.Filter(ctx.Request().Context(), getContextRegion(ctx), filter)
	return ctx.JSON(http.StatusOK, items)
}

func (api *contentApi) stats(ctx echo.Context) error {
	stats := api.deps.ContentSvc.Stats(ctx.Request().Context(), getContextRegion(ctx))
	return ctx.JSON(http.StatusOK, stats)
}

func (api *contentApi) create(ctx echo.Context) error {
	var data content.NewContent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewContent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cnt, err := api.deps.ContentSvc.Create(ctx.Request().Context(), getContextRegion(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating content")
	}
	return ctx.JSON(http.StatusCreated, cnt)
}

func (api *contentApi) retrieve(ctx echo.Context) error {
	cnt, err := api.deps.ContentSvc.GetByID(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding content by ID")
	}
	return ctx.JSON(http.StatusOK, cnt)
}

func (api *contentApi) update(ctx echo.Context) error {
	var data content.UpdateContent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateContent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cnt, err := api.deps.ContentSvc.Update(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating content")
	}
	return ctx.JSON(http.StatusOK, cnt)
}

func (api *contentApi) destroy(ctx echo.Context) error {
	if err := api.deps.ContentSvc.Delete(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id")); err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting content")
	}
	return ctx.NoContent(http.StatusNoContent)
}
