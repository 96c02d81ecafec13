package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Akr1040317/hiveUniDash/core/feature"
)

type featureApi struct {
	deps ServerDeps
}

func registerFeatureAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := featureApi{deps: deps}

	fg := g.Group("/features", jwt, region)
	fg.GET("", api.query)
	fg.GET("/board", api.board)
	fg.POST("", api.create)
	fg.GET("/:id", api.retrieve)
	fg.PUT("/:id", api.update)
	fg.PATCH("/:id/status", api.updateStatus)
	fg.PATCH("/:id/field", api.updateField)
	fg.DELETE("/:id", api.destroy)
}

func (api *featureApi) query(ctx echo.Context) error {
	var filter feature.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []feature.Feature{})
	}
	items := api.deps.FeatureSvc.Filter(ctx.Request().Context(), getContextRegion(ctx), filter)
	return ctx.JSON(http.StatusOK, items)
}

func (api *featureApi) board(ctx echo.Context) error {
	b := api.deps.Boards.FeatureBoard(ctx.Request().Context(), getContextRegion(ctx))
	return ctx.JSON(http.StatusOK, b.Columns())
}

func (api *featureApi) create(ctx echo.Context) error {
	var data feature.NewFeature
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeature")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	f, err := api.deps.FeatureSvc.Create(ctx.Request().Context(), getContextRegion(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating feature")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *featureApi) retrieve(ctx echo.Context) error {
	f, err := api.deps.FeatureSvc.GetByID(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == feature.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding feature by ID")
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *featureApi) update(ctx echo.Context) error {
	var data feature.UpdateFeature
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateFeature")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	f, err := api.deps.FeatureSvc.Update(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == feature.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating feature")
	}
	return ctx.JSON(http.StatusOK, f)
}

func (api *featureApi) updateStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}

	// through the board, so a failed write snaps the card back
	err := api.deps.Boards.MoveFeature(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data.Status)
	if err != nil {
		if errors.Cause(err) == feature.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *featureApi) updateField(ctx echo.Context) error {
	var data FieldRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FieldRequest")
	}
	if data.Field == "" {
		return errors.Wrap(echo.NewHTTPError(http.StatusBadRequest, "field is required"), "updating feature field")
	}

	err := api.deps.Boards.EditFeatureField(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data.Field, data.Value)
	if err != nil {
		if errors.Cause(err) == feature.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *featureApi) destroy(ctx echo.Context) error {
	if err := api.deps.FeatureSvc.Delete(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id")); err != nil {
		if errors.Cause(err) == feature.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting feature")
	}
	return ctx.NoContent(http.StatusNoContent)
}
