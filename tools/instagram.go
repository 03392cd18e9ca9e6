package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// SendInstagramText sends a text reply through the Instagram messaging API
// (Graph API). recipientID is the provider id, without the "instagram-"
// prefix used on conversations.
func SendInstagramText(ctx context.Context, recipientID string, text string) error {
	token := strings.TrimSpace(os.Getenv("INSTAGRAM_ACCESS_TOKEN"))
	pageID := strings.TrimSpace(os.Getenv("INSTAGRAM_PAGE_ID"))
	if token == "" || pageID == "" {
		return fmt.Errorf("INSTAGRAM_ACCESS_TOKEN or INSTAGRAM_PAGE_ID not set")
	}

	endpoint := fmt.Sprintf("https://graph.facebook.com/v20.0/%s/messages", pageID)

	reqBody := map[string]any{
		"recipient": map[string]any{"id": recipientID},
		"message": map[string]any{
			"text": text,
		},
	}

	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("instagram api error: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
