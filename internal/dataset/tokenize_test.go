package dataset

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want [][]string
	}{
		{"empty", "", nil},
		{"single row no newline", "a,b,c", [][]string{{"a", "b", "c"}}},
		{"quoted comma and escaped quote", "a,\"b,c\",\"d\"\"e\"", [][]string{{"a", "b,c", "d\"e"}}},
		{"crlf", "a,b\r\nc,d\r\n", [][]string{{"a", "b"}, {"c", "d"}}},
		{"newline inside quotes", "\"x\ny\",z\n", [][]string{{"x\ny", "z"}}},
		{"blank rows dropped", "a\n\n , \nb\n", [][]string{{"a"}, {"b"}}},
		{"trailing empty field", "a,\n", [][]string{{"a", ""}}},
		{"quote mid field", "ab\"c,d\"e", [][]string{{"abc,de"}}},
		{"unterminated quote", "a,\"bc\nd", [][]string{{"a", "bc\nd"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.in)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokenize_NeverDropsContent(t *testing.T) {
	in := "từ mới,phiên âm\n你好,nǐ hǎo\n"
	got := Tokenize(in)
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[1][0] != "你好" || got[1][1] != "nǐ hǎo" {
		t.Errorf("row 1 = %q", got[1])
	}
}
