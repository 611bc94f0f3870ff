//go:build integration

package notify

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegration_AMQPPublish(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set, skipping integration test")
	}

	p, err := DialAMQP(url)
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.PublishSubmitted(context.Background(), application()))
}
