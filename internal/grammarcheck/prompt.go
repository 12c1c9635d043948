package grammarcheck

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a Chinese teacher grading short sentences written by Vietnamese learners preparing for HSK.

Rules:
- Judge only the learner's sentence. It must use the target word with the given meaning.
- Without a target word, the sentence is a free translation and must express the given meaning.
- Accept any grammatical, natural sentence; do not require a particular structure.
- Minor punctuation differences are not errors.
- Write the explanation in Vietnamese, at most two sentences, simple enough for a beginner.
- When the sentence is wrong, give a corrected version that keeps the learner's idea. When it is correct, leave "corrected" empty.`

func buildUserMessage(in Input) string {
	var b strings.Builder
	if in.Term != "" {
		fmt.Fprintf(&b, "Target word: %s\n", in.Term)
	} else {
		b.WriteString("Target word: (none, free translation)\n")
	}
	if in.Pronunciation != "" {
		fmt.Fprintf(&b, "Pinyin: %s\n", in.Pronunciation)
	}
	if in.Meaning != "" {
		fmt.Fprintf(&b, "Meaning (Vietnamese): %s\n", in.Meaning)
	}
	fmt.Fprintf(&b, "\nLearner's sentence:\n%s", strings.TrimSpace(in.Sentence))
	return b.String()
}
