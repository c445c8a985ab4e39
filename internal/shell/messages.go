package shell

import (
	"github.com/llehouerou/songdl/internal/catalog"
	"github.com/llehouerou/songdl/internal/pipeline"
)

// SearchResultMsg is sent when the catalog search completes.
type SearchResultMsg struct {
	Candidates []catalog.Candidate
	Err        error
}

// FetchResultMsg is sent when the download-to-placement suffix finishes.
type FetchResultMsg struct {
	Result *pipeline.Result
	Err    error
}
