package llm

import "strings"

const (
	summarizeInstruction = "Summarize this document:"
	contextHeader        = "Context:"
	questionHeader       = "Question: "
)

// SummarizePrompt asks the model to summarize the full document text.
func SummarizePrompt(pages []string) string {
	return summarizeInstruction + "\n" + strings.Join(pages, "\n")
}

// AskPrompt asks a question with the full document text as context.
func AskPrompt(pages []string, question string) string {
	return contextHeader + "\n" + strings.Join(pages, "\n") + "\n\n" + questionHeader + question
}

// ChatPrompt is the raw user message. Earlier turns are never sent back to
// the model.
func ChatPrompt(message string) string {
	return message
}
