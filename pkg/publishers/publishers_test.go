package publishers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vartha-hq/vartha/internal/domain"
)

func writePublishersFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRegistry(t *testing.T) {
	t.Setenv("TEST_SQS_SECRET", "shh-not-in-config")

	path := writePublishersFile(t, "publishers.yaml", `
publishers:
  - id: ops-queue
    type: queue
    queue:
      provider: aws-sqs
      sqs:
        uri: https://sqs.ap-southeast-2.amazonaws.com/123/ingest
        region: ap-southeast-2
        access_key_id: AKIAEXAMPLE
        secret_access_key: ${TEST_SQS_SECRET}
  - id: webhook
    type: http
    enabled: false
    http:
      url: https://hooks.example.org/ingest
`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	all := reg.All()
	require.Len(t, all, 2)

	cfg, ok := reg.ByID("ops-queue")
	require.True(t, ok)
	require.NotNil(t, cfg.Queue)
	require.NotNil(t, cfg.Queue.SQS)
	assert.Equal(t, "shh-not-in-config", cfg.Queue.SQS.SecretAccessKey, "env references must expand")

	enabled := reg.Enabled()
	require.Len(t, enabled, 1)
	assert.Equal(t, "ops-queue", enabled[0].ID)

	webhook, ok := reg.ByID("webhook")
	require.True(t, ok)
	require.NotNil(t, webhook.HTTP)
	assert.Equal(t, "POST", webhook.HTTP.Method, "method defaults to POST")
	assert.Equal(t, httpDefaultTimeoutSeconds, webhook.HTTP.TimeoutSeconds)
}

func TestLoadRegistryValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing id",
			content: "publishers:\n  - type: http\n    http:\n      url: https://x.example.org\n",
			wantErr: "id is required",
		},
		{
			name:    "unknown queue provider",
			content: "publishers:\n  - id: q\n    type: queue\n    queue:\n      provider: rabbitmq\n",
			wantErr: "not supported",
		},
		{
			name:    "sqs without region",
			content: "publishers:\n  - id: q\n    type: queue\n    queue:\n      provider: aws-sqs\n      sqs:\n        uri: https://sqs.example.org/q\n        access_key_id: a\n        secret_access_key: b\n",
			wantErr: "sqs.region is required",
		},
		{
			name:    "gcp without topic",
			content: "publishers:\n  - id: q\n    type: queue\n    queue:\n      provider: gcp\n      gcp:\n        project_id: proj\n",
			wantErr: "gcp.topic is required",
		},
		{
			name:    "http without url",
			content: "publishers:\n  - id: h\n    type: http\n    http:\n      method: PUT\n",
			wantErr: "http.url is required",
		},
		{
			name:    "duplicate ids",
			content: "publishers:\n  - id: h\n    type: http\n    http:\n      url: https://x.example.org\n  - id: h\n    type: http\n    http:\n      url: https://y.example.org\n",
			wantErr: "duplicate publisher id",
		},
		{
			name:    "empty file",
			content: "publishers: []\n",
			wantErr: "no publishers entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writePublishersFile(t, "publishers.yaml", tt.content)
			_, err := LoadRegistry(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewIngestEvent(t *testing.T) {
	t.Parallel()

	records := []domain.NewsRecord{
		{Source: domain.SourceRNZ, Location: "https://www.rnz.co.nz/news/a", Category: "nz-news", Title: "A"},
		{Source: domain.SourceRNZ, Location: "https://www.rnz.co.nz/world/b", Category: "world", Title: "B"},
		{Source: domain.SourceOneNews, Location: "https://www.1news.co.nz/news/c", Category: "nz-news", Title: "C"},
	}

	evt := NewIngestEvent(records)
	assert.Equal(t, 3, evt.Count)
	assert.Equal(t, []string{"RNZ", "1 News"}, evt.Sources, "sources deduplicated in first-seen order")
	require.Len(t, evt.Records, 3)
	assert.Equal(t, "https://www.rnz.co.nz/world/b", evt.Records[1].Location)
	assert.False(t, evt.RunAt.IsZero())
}
