package briefing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sandevgo/anjali/internal/core"
)

// QuoteClient fetches a random quote from zenquotes.io.
type QuoteClient struct {
	client  *http.Client
	baseURL string
}

func NewQuoteClient(baseURL string, timeout time.Duration) *QuoteClient {
	return &QuoteClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (q *QuoteClient) RandomQuote(ctx context.Context) (core.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.baseURL+"/api/random", nil)
	if err != nil {
		return core.Quote{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)

	resp, err := q.client.Do(req)
	if err != nil {
		return core.Quote{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Quote{}, fmt.Errorf("quote api returned status %d", resp.StatusCode)
	}

	var data []struct {
		Q string `json:"q"`
		A string `json:"a"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return core.Quote{}, fmt.Errorf("decode: %w", err)
	}
	if len(data) == 0 || data[0].Q == "" {
		return core.Quote{}, fmt.Errorf("no quote returned")
	}
	return core.Quote{Text: data[0].Q, Author: data[0].A}, nil
}
