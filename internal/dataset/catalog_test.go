package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog(t *testing.T) {
	data := []byte(`
datasets:
  - name: Vocabulary
    path: words.csv
  - name: Speaking
    path: onhsk3.txt
  - path: https://example.com/dich.txt
  - name: Grammar
    path: nguphaphsk1.txt
    label: PHẦN
  - name: Sheet
    path: https://docs.google.com/spreadsheets/d/x/pub?output=csv
`)
	c, err := ParseCatalog(data)
	require.NoError(t, err)
	require.Len(t, c.Entries, 5)

	assert.Equal(t, KindTabular, c.Entries[0].Kind)
	assert.Equal(t, KindSpeakingLine, c.Entries[1].Kind)
	assert.Equal(t, KindTranslationTriad, c.Entries[2].Kind)
	assert.Equal(t, "https://example.com/dich.txt", c.Entries[2].Name)
	assert.Equal(t, KindGrammar, c.Entries[3].Kind)
	assert.Equal(t, "PHẦN", c.Entries[3].Label)
	assert.Equal(t, KindTabular, c.Entries[4].Kind)

	e, ok := c.Find("Speaking")
	assert.True(t, ok)
	assert.Equal(t, "onhsk3.txt", e.Path)
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := map[string]string{
		"missing path": "datasets:\n  - name: a\n",
		"duplicate":    "datasets:\n  - {name: a, path: x.csv}\n  - {name: a, path: y.csv}\n",
		"unknown kind": "datasets:\n  - {name: a, path: x.csv, kind: audio}\n",
		"bad yaml":     "datasets: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	for _, e := range c.Entries {
		if e.Kind == KindGrammar {
			assert.NotEmpty(t, e.Label, e.Name)
			continue
		}
		assert.Equal(t, e.Kind, InferKind(e.Path), e.Name)
	}
}
