package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/sitshu/stock-analyst/internal/model"
)

const (
	feedURL      = "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US"
	defaultLimit = 20
	fetchTimeout = 10 * time.Second
)

// Client fetches ticker headlines from the Yahoo Finance RSS feed.
type Client struct {
	parser *gofeed.Parser
}

// NewClient creates a news Client.
func NewClient() *Client {
	p := gofeed.NewParser()
	p.UserAgent = "Mozilla/5.0 (stock-analyst)"
	return &Client{parser: p}
}

// Headlines returns up to limit recent news items for the ticker.
func (c *Client) Headlines(ctx context.Context, ticker string, limit int) ([]model.NewsItem, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if limit <= 0 {
		limit = defaultLimit
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(fmt.Sprintf(feedURL, url.QueryEscape(ticker)), ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", ticker, err)
	}

	items := []model.NewsItem{}
	for _, it := range feed.Items {
		if len(items) >= limit {
			break
		}
		items = append(items, model.NewsItem{
			Title:     it.Title,
			Link:      it.Link,
			Published: it.PublishedParsed,
			Source:    "Yahoo Finance",
			Summary:   it.Description,
		})
	}
	return items, nil
}
