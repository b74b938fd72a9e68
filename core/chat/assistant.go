package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/question"
	"github.com/trezcool/darasa/core/user"
	llmsvc "github.com/trezcool/darasa/services/llm"
)

// systemPrompt frames every exchange; it is sent as-is regardless of the
// requested output language.
const systemPrompt = "You are a helper chatbot. You are assisting a student with their programming problem."

// Assistant composes mentoring prompts and forwards them to the completion API.
type Assistant struct {
	llm    llmsvc.Client
	usrSvc user.ServiceInterface
}

func NewAssistant(llm llmsvc.Client, usrSvc user.ServiceInterface) *Assistant {
	return &Assistant{
		llm:    llm,
		usrSvc: usrSvc,
	}
}

// Reply answers one chat turn: it persists the chosen language as the user's
// preference, composes the mentoring prompt for the current question and returns
// the completion API's reply text. A single blocking round trip; completion
// failures propagate to the caller.
func (a *Assistant) Reply(ctx context.Context, userInput, language, userID, questionID string) (string, error) {
	if err := a.usrSvc.SetLanguage(ctx, userID, language); err != nil {
		return "", errors.Wrap(err, "updating language preference")
	}

	prompt := buildPrompt(question.Describe(questionID), userInput, language)
	return a.llm.Chat(ctx, []llmsvc.Message{
		{Role: llmsvc.RoleSystem, Content: systemPrompt},
		{Role: llmsvc.RoleUser, Content: prompt},
	})
}

// buildPrompt combines the mentoring instructions, the problem description and
// the student's question. Only the reply body is localized; the instructions stay
// in English.
func buildPrompt(description, userInput, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are mentoring a student who is trying to solve the following programming problem:\n%q\n", description)
	b.WriteString("The student will ask questions related to the problem. DO NOT OUTPUT THE SOLUTION OF THE ENTIRE PROBLEM. ")
	b.WriteString("You can provide hints and suggestions to their questions. If they have questions related to programming concepts, ")
	b.WriteString("you can answer them by providing snippets of code.\n")
	b.WriteString("Only provide answers if it is related to the question.\n")
	if language == user.LanguageMarathi {
		b.WriteString("Provide the answer in Marathi\n")
	}
	fmt.Fprintf(&b, "The student's question is: %s", userInput)
	return b.String()
}
