package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockRecommender/internal/domain"
	"StockRecommender/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier sends ranked digests to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishDigest posts the ranked list as a Markdown message to Telegram.
func (n *Notifier) PublishDigest(ctx context.Context, results []domain.Recommendation) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", formatDigest(results))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

func formatDigest(results []domain.Recommendation) string {
	var b strings.Builder
	b.WriteString("*Rekomendasi Saham*\n\n")
	for _, rec := range results {
		fmt.Fprintf(&b, "%d. *%s* (%s): %.3f\n    sentimen %.3f | kemiripan %.3f | %d berita | %s\n",
			rec.Rank,
			rec.StockCode,
			rec.StockName,
			rec.FinalScore,
			rec.SentimentComponent,
			rec.SimilarityComponent,
			rec.ArticleCount,
			rec.Label)
	}
	return b.String()
}
