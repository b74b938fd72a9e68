package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/chat"
)

type chatApi struct {
	svc       chat.ServiceInterface
	assistant *chat.Assistant
	validate  *validator.Validate
}

func registerChatAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc chat.ServiceInterface,
	assistant *chat.Assistant,
	validate *validator.Validate,
) {
	api := chatApi{
		svc:       svc,
		assistant: assistant,
		validate:  validate,
	}

	cg := g.Group("/chat", jwt)
	cg.POST("/messages", api.sendMessage)
	cg.GET("/history", api.history)
	cg.DELETE("/history", api.clearHistory)
}

// Handlers

// sendMessage runs one chat turn: the student's message and the assistant's
// reply are appended to the stored history and the whole transcript is saved back.
func (api *chatApi) sendMessage(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data chat.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	tr, err := api.svc.History(reqCtx, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting chat history")
	}

	msgs := append(tr.Messages, chat.Message{Role: chat.RoleHuman, Content: data.Message})

	reply, err := api.assistant.Reply(reqCtx, data.Message, data.Language, claims.Subject, data.Question)
	if err != nil {
		return errors.Wrap(err, "getting assistant reply")
	}
	msgs = append(msgs, chat.Message{Role: chat.RoleAI, Content: reply})

	tr, err = api.svc.SaveTranscript(reqCtx, claims.Subject, msgs, data.Language)
	if err != nil {
		return errors.Wrap(err, "saving transcript")
	}
	return ctx.JSON(http.StatusOK, tr)
}

func (api *chatApi) history(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	tr, err := api.svc.History(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting chat history")
	}
	return ctx.JSON(http.StatusOK, tr)
}

func (api *chatApi) clearHistory(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Clear(ctx.Request().Context(), claims.Subject); err != nil {
		return errors.Wrap(err, "clearing chat history")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Chat history cleared."})
}
