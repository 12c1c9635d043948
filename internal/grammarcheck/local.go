package grammarcheck

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// precheck rejects input that no checker should accept.
func precheck(in Input) *Verdict {
	if strings.TrimSpace(in.Sentence) == "" {
		return &Verdict{Explanation: "Bạn chưa viết câu.", Source: SourceLocal}
	}
	return nil
}

// LocalCheck accepts a sentence that contains the target term and at least
// one Han character. It cannot judge grammar.
func LocalCheck(in Input) *Verdict {
	if v := precheck(in); v != nil {
		return v
	}
	sentence := norm.NFC.String(in.Sentence)
	term := norm.NFC.String(strings.TrimSpace(in.Term))

	if !hasHan(sentence) {
		return &Verdict{Explanation: "Câu phải viết bằng chữ Hán.", Source: SourceLocal}
	}
	if term != "" && !strings.Contains(sentence, term) {
		return &Verdict{Explanation: "Câu chưa dùng từ " + term + ".", Source: SourceLocal}
	}
	return &Verdict{Correct: true, Explanation: "Câu có dùng từ cần luyện (chưa kiểm tra ngữ pháp).", Source: SourceLocal}
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
