package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"rentitforward/internal/domain/entity"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
)

const oneSignalBaseURL = "https://onesignal.com/api/v1"

// OneSignalService delivers pushes through the OneSignal REST API.
// Tokens are OneSignal player IDs rather than FCM registrations.
type OneSignalService struct {
	appID   string
	apiKey  string
	baseURL string
	client  *http.Client
	appURL  string
}

func NewOneSignalService(appID, apiKey, appURL string) *OneSignalService {
	return &OneSignalService{
		appID:   appID,
		apiKey:  apiKey,
		baseURL: oneSignalBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		appURL:  appURL,
	}
}

type oneSignalRequest struct {
	AppID            string            `json:"app_id"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Headings         map[string]string `json:"headings"`
	Contents         map[string]string `json:"contents"`
	Data             map[string]string `json:"data,omitempty"`
	URL              string            `json:"url,omitempty"`
	Priority         int               `json:"priority,omitempty"`
	TTL              int               `json:"ttl,omitempty"`
	BigPicture       string            `json:"big_picture,omitempty"`
	CollapseID       string            `json:"collapse_id,omitempty"`
	AndroidChannelID string            `json:"existing_android_channel_id,omitempty"`
	IOSCategory      string            `json:"ios_category,omitempty"`
}

type oneSignalResponse struct {
	ID         string      `json:"id"`
	Recipients int         `json:"recipients"`
	Errors     interface{} `json:"errors,omitempty"`
}

func (s *OneSignalService) Send(ctx context.Context, tokens []string, notification *entity.Notification, opts SendOptions) (string, error) {
	if s.appID == "" || s.apiKey == "" {
		return "", errors.New("PUSH_UNAVAILABLE", "OneSignal credentials not configured", http.StatusServiceUnavailable, nil)
	}
	if len(tokens) == 0 {
		return "", errors.BadRequest("No device tokens to send to", nil)
	}

	ttl := opts.TTLSeconds
	if ttl <= 0 {
		ttl = DefaultTTLSeconds
	}

	clickURL := opts.ClickURL
	if clickURL == "" {
		clickURL = AbsoluteURL(notification.ActionURL, s.appURL)
	}

	payload := oneSignalRequest{
		AppID:            s.appID,
		IncludePlayerIDs: tokens,
		Headings:         map[string]string{"en": notification.Title},
		Contents:         map[string]string{"en": notification.Message},
		Data:             DataPayload(notification),
		URL:              clickURL,
		Priority:         opts.Priority,
		TTL:              ttl,
		BigPicture:       opts.ImageURL,
		CollapseID:       opts.CollapseID,
		AndroidChannelID: ChannelFor(notification.Type),
		IOSCategory:      CategoryFor(notification.Type),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Internal("Failed to encode push payload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/notifications", bytes.NewBuffer(body))
	if err != nil {
		return "", errors.Internal("Failed to build push request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.GatewayError("onesignal", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.GatewayError("onesignal", err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("OneSignal send failed: status=%d body=%s", resp.StatusCode, string(respBody))
		return "", errors.GatewayError("onesignal", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result oneSignalResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", errors.GatewayError("onesignal", err)
	}
	if result.ID == "" {
		return "", errors.GatewayError("onesignal", fmt.Errorf("no message id in response: %s", string(respBody)))
	}

	logger.Debug("OneSignal delivered %s to %d recipients", result.ID, result.Recipients)
	return result.ID, nil
}
