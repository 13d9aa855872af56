package fetcher

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"
)

// TermPosting represents a single (term, document, frequency) entry in a segment JSON file.
type TermPosting struct {
	Term          string  `json:"term"`
	DocID         uint32  `json:"doc_id"`
	TermFrequency float32 `json:"term_frequency"`
}

// TermPostingRoot represents the top-level structure of a segment JSON file.
type TermPostingRoot struct {
	Segments [][]TermPosting `json:"segments"`
}

// httpClient bounds how long a remote fetch may hang; os.ReadFile has no
// equivalent knob and needs none.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// FetchJson fetches JSON data from either a URL or a local file path.
func FetchJson(path string) ([]byte, error) {
	// Check if the path is a URL (starts with "http" or "https")
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		response, err := httpClient.Get(path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch json: %w", err)
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("non-ok HTTP response: %s", response.Status)
		}

		data, err := io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		return data, nil
	}

	// Treat it as a local file path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read local file: %w", err)
	}
	return data, nil
}

// ParseTermPostings parses the JSON data into a slice of segments, each a
// slice of term postings. Postings within a segment are sorted by DocID
// (stably), so search/storage.Segment.BulkIndex adds each term's documents
// to its blocks in ascending DocID order, the order in which
// TermIterator.TermFrequency looks up term frequencies by rank.
func ParseTermPostings(data []byte) ([][]TermPosting, error) {
	var root TermPostingRoot
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	for _, segment := range root.Segments {
		sort.SliceStable(segment, func(i, j int) bool {
			return segment[i].DocID < segment[j].DocID
		})
	}
	return root.Segments, nil
}
