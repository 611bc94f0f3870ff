package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/admission-advisor/internal/catalog"
	"github.com/jonathan/admission-advisor/internal/llm"
	"github.com/jonathan/admission-advisor/internal/observability"
	"github.com/jonathan/admission-advisor/internal/prompts"
)

// DefaultTimeout bounds one counselor reply.
const DefaultTimeout = 15 * time.Second

const component = "chat"

// CatalogProvider returns the catalog snapshot to answer from.
type CatalogProvider interface {
	Current() *catalog.Catalog
}

// Counselor answers chat messages. It never fails: every error becomes a
// polite reply.
type Counselor struct {
	client  llm.Client
	catalog CatalogProvider
	timeout time.Duration
}

// NewCounselor creates a counselor. A nil client answers with the disconnected message.
func NewCounselor(client llm.Client, provider CatalogProvider, timeout time.Duration) *Counselor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Counselor{client: client, catalog: provider, timeout: timeout}
}

// Reply answers message.
func (c *Counselor) Reply(ctx context.Context, message string) string {
	if c.client == nil {
		observability.RecordAIFallback(component, observability.ReasonNoClient)
		return prompts.MustGet(prompts.ChatFile, "disconnected")
	}

	var cat *catalog.Catalog
	if c.catalog != nil {
		cat = c.catalog.Current()
	}

	reply, err := c.ask(ctx, message, RetrieveContext(message, cat.Offerings()))
	if err != nil {
		reason := observability.ReasonError
		if errors.Is(err, context.DeadlineExceeded) {
			reason = observability.ReasonTimeout
		}
		observability.RecordAIFallback(component, reason)
		log.Printf("[chat] reply failed: %v", err)
		return prompts.MustGet(prompts.ChatFile, "unavailable")
	}
	return reply
}

func (c *Counselor) ask(ctx context.Context, message string, entries []ContextEntry) (string, error) {
	if entries == nil {
		entries = []ContextEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to encode context: %w", err)
	}

	prompt, err := prompts.Render(prompts.ChatFile, "counselor", map[string]string{
		"Context": string(data),
		"Message": message,
	})
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	reply := strings.TrimSpace(resp)
	if reply == "" {
		return "", errors.New("empty reply")
	}
	return reply, nil
}
