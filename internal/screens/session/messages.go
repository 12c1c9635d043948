package session

import (
	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/abhisek/hanzidrill/internal/grammarcheck"
)

// datasetLoadedMsg is sent when a dataset fetch finishes. Gen identifies the
// load so that superseded results can be dropped.
type datasetLoadedMsg struct {
	Gen     uint64
	Dataset dataset.Dataset
	Err     error
}

// checkDoneMsg is sent when the sentence checker answers. Seq is the
// question it belongs to.
type checkDoneMsg struct {
	Seq      int
	Sentence string
	Verdict  *grammarcheck.Verdict
	Err      error
}
