package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/question"
	"github.com/trezcool/darasa/core/submission"
)

type questionApi struct {
	subSvc submission.ServiceInterface
}

func registerQuestionAPI(g *echo.Group, jwt echo.MiddlewareFunc, subSvc submission.ServiceInterface) {
	api := questionApi{subSvc: subSvc}

	qg := g.Group("/questions", jwt)
	qg.GET("", api.list)
	qg.GET("/:id", api.retrieve)
	qg.POST("/:id/submissions", api.submit)
	qg.GET("/:id/submissions/latest", api.latestSubmission)
}

// Handlers

func (api *questionApi) list(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, question.All())
}

// retrieve returns the question along with the caller's latest saved answer,
// if any, so the editor can be pre-filled.
func (api *questionApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	qst, ok := question.Get(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}

	resp := QuestionDetailResponse{Question: qst}
	sub, err := api.subSvc.Latest(ctx.Request().Context(), claims.Subject, qst.ID)
	switch {
	case err == nil:
		resp.LatestSubmission = &sub
	case errors.Cause(err) != submission.ErrNotFound:
		return errors.Wrap(err, "getting latest submission")
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (api *questionApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data SubmitRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitRequest")
	}

	sub, err := api.subSvc.Save(ctx.Request().Context(), claims.Subject, ctx.Param("id"), data.Answer)
	if err != nil {
		return errors.Wrap(err, "saving submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *questionApi) latestSubmission(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	sub, err := api.subSvc.Latest(ctx.Request().Context(), claims.Subject, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == submission.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting latest submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}
