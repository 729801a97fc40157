package lessongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a language teacher writing vocabulary lessons.

Rules:
- Produce a short title and a list of word pairs for the requested topic.
- "source" is a single word or short phrase in the source language, lower case.
- "target" is its most common translation in the target language.
- Never use the sequence " - " inside a word.
- Every source must be distinct. Prefer everyday words over rare ones.`

func buildUserMessage(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Source language: %s\n", req.SourceLang)
	fmt.Fprintf(&b, "Target language: %s\n", req.TargetLang)
	fmt.Fprintf(&b, "Number of pairs: %d", req.Count)
	return b.String()
}
