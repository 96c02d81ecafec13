package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Akr1040317/hiveUniDash/core/quiz"
)

type quizApi struct {
	deps ServerDeps
}

func registerQuizAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := quizApi{deps: deps}

	qg := g.Group("/quizzes", jwt, region)
	qg.GET("", api.query)
	qg.GET("/webinars", api.webinars)
	qg.POST("", api.create)
	qg.GET("/:id", api.retrieve)
	qg.DELETE("/:id", api.destroy)
}

func (api *quizApi) query(ctx echo.Context) error {
	items := api.deps.QuizSvc.All(ctx.Request().Context(), getContextRegion(ctx))
	return ctx.JSON(http.StatusOK, items)
}

func (api *quizApi) webinars(ctx echo.Context) error {
	items := api.deps.QuizSvc.Webinars(ctx.Request().Context(), getContextRegion(ctx))
	return ctx.JSON(http.StatusOK, items)
}

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	q, err := api.deps.QuizSvc.Create(ctx.Request().Context(), getContextRegion(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *quizApi) retrieve(ctx echo.Context) error {
	q, err := api.deps.QuizSvc.GetByID(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == quiz.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding quiz by ID")
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *quizApi) destroy(ctx echo.Context) error {
	if err := api.deps.QuizSvc.Delete(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id")); err != nil {
		if errors.Cause(err) == quiz.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting quiz")
	}
	return ctx.NoContent(http.StatusNoContent)
}
