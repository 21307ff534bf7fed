package result

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stackbench/stackbench/internal/bench"
)

// Uploader ships aggregated results to the results service so they can be
// queried by API label later. A failed upload is fatal to the invocation;
// there are no retries at this layer.
type Uploader struct {
	URL    string
	Client *http.Client
}

func NewUploader(url string) *Uploader {
	return &Uploader{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadPayload struct {
	RunID     string           `json:"run_id"`
	StartTime time.Time        `json:"start_time"`
	APIName   string           `json:"api_name"`
	StackName string           `json:"stack_name"`
	Results   bench.Aggregated `json:"results"`
}

// Save posts one run's aggregated results, filed under the API label and
// stack name captured in meta.
func (u *Uploader) Save(ctx context.Context, meta *RunMeta, results bench.Aggregated) error {
	body, err := json.Marshal(uploadPayload{
		RunID:     meta.ID,
		StartTime: meta.StartTime,
		APIName:   meta.APIName,
		StackName: meta.StackName,
		Results:   results,
	})
	if err != nil {
		return fmt.Errorf("marshaling upload payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.Client.Do(req)
	if err != nil {
		return fmt.Errorf("uploading results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("uploading results: server returned %s", resp.Status)
	}
	return nil
}
