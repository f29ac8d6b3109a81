package rag

import (
	"context"
	"strings"

	"github.com/vikrambhat2/AgenticRAG/internal/llm"
)

const (
	// NoInformationMessage is returned without consulting the model when
	// retrieval produced no context.
	NoInformationMessage = "No relevant information found in the document."

	// NotFoundPhrase is the reply the model is told to give when the
	// excerpts do not contain the answer.
	NotFoundPhrase = "Not found in the document."
)

const systemPrompt = "You are an AI assistant that answers ONLY based on the provided document excerpts. " +
	"Do not use external knowledge. If the answer is not found, reply with '" + NotFoundPhrase + "'\n\n" +
	"DOCUMENT EXCERPTS:\n"

// Answerer asks the model to answer from the retrieved context only.
type Answerer struct {
	Provider    llm.Provider
	Temperature float64
}

// Answer returns the model's raw reply. Blank context short-circuits to
// NoInformationMessage.
func (a *Answerer) Answer(ctx context.Context, contextText, question string) (string, error) {
	if strings.TrimSpace(contextText) == "" {
		return NoInformationMessage, nil
	}

	resp, err := a.Provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			llm.SystemMessage(systemPrompt + contextText),
			llm.UserMessage(question),
		},
		Temperature: a.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
