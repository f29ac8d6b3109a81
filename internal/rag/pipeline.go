package rag

import "context"

// Reply is the outcome of one question.
type Reply struct {
	// Raw is the model text exactly as returned.
	Raw string
	// Answer is Raw without reasoning segments.
	Answer string
	// Reasoning is the content of the first <think> segment, if any.
	Reasoning string
	// Context is the retrieved excerpt text the answer was based on.
	Context string
}

// Pipeline runs retrieval then answering.
type Pipeline struct {
	Retriever *Retriever
	Answerer  *Answerer
}

// Ask retrieves context for question and answers it.
func (p *Pipeline) Ask(ctx context.Context, question string) (Reply, error) {
	contextText, err := p.Retriever.Retrieve(ctx, question)
	if err != nil {
		return Reply{}, err
	}

	raw, err := p.Answerer.Answer(ctx, contextText, question)
	if err != nil {
		return Reply{}, err
	}

	reasoning, answer := SplitReasoning(raw)
	return Reply{
		Raw:       raw,
		Answer:    answer,
		Reasoning: reasoning,
		Context:   contextText,
	}, nil
}
