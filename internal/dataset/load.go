package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotVocabulary is returned by Load for grammar-note entries.
var ErrNotVocabulary = errors.New("entry is not a vocabulary source")

// Source fetches the raw bytes behind a catalog path.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Load fetches an entry and builds its dataset according to its kind.
func Load(ctx context.Context, src Source, e Entry) (Dataset, error) {
	kind := e.Kind
	if kind == "" {
		kind = InferKind(e.Path)
	}
	if kind == KindGrammar {
		return Dataset{}, fmt.Errorf("load %s: %w", e.Name, ErrNotVocabulary)
	}

	data, err := src.Fetch(ctx, e.Path)
	if err != nil {
		return Dataset{}, fmt.Errorf("load %s: %w", e.Name, err)
	}

	var ds Dataset
	switch kind {
	case KindTabular:
		if strings.HasSuffix(strings.ToLower(e.Path), ".xlsx") {
			ds, err = ParseWorkbook(data)
			if err != nil {
				return Dataset{}, fmt.Errorf("load %s: %w", e.Name, err)
			}
		} else {
			ds = ParseTabular(string(data))
		}
	case KindSpeakingLine:
		ds = ParseSpeaking(string(data))
	case KindTranslationTriad:
		ds = ParseTriads(string(data))
	default:
		return Dataset{}, fmt.Errorf("load %s: unknown kind %q", e.Name, kind)
	}
	return ds, nil
}
