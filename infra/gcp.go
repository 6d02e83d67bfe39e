package infra

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const metadataProjectIdUrl = "http://metadata.google.internal/computeMetadata/v1/project/project-id"

// the project of a running instance never changes
var projectIdCache = expirable.NewLRU[string, string](1, nil, 0)

// ProjectIdFromMetadata asks the GCP metadata server for the current project. It returns an empty
// project id, and no error, when the process does not run on GCP.
func ProjectIdFromMetadata(ctx context.Context) (string, error) {
	if projectId, ok := projectIdCache.Get(metadataProjectIdUrl); ok {
		return projectId, nil
	}

	var projectId string
	err := retry.Do(
		func() error {
			var err error
			projectId, err = fetchMetadataProjectId(ctx)
			return err
		},
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
	if err != nil {
		return "", err
	}
	projectIdCache.Add(metadataProjectIdUrl, projectId)
	return projectId, nil
}

func fetchMetadataProjectId(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataProjectIdUrl, nil)
	if err != nil {
		return "", retry.Unrecoverable(err)
	}
	req.Header.Set("Metadata-Flavor", "Google")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		// metadata.google.internal only resolves on GCP
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("unexpected status code from the metadata server: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "error reading the metadata server response")
	}
	return strings.TrimSpace(string(body)), nil
}
