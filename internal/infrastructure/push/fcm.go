package push

import (
	"context"
	"fmt"
	"time"

	"firebase.google.com/go/v4/messaging"

	"rentitforward/internal/domain/entity"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
)

// FCMService delivers pushes through Firebase Cloud Messaging with
// per-platform configuration for Android, APNS and web push.
type FCMService struct {
	client  *messaging.Client
	baseURL string
}

func NewFCMService(client *messaging.Client, baseURL string) *FCMService {
	return &FCMService{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *FCMService) Send(ctx context.Context, tokens []string, notification *entity.Notification, opts SendOptions) (string, error) {
	if len(tokens) == 0 {
		return "", errors.BadRequest("No device tokens to send to", nil)
	}

	ttl := time.Duration(opts.TTLSeconds) * time.Second
	if opts.TTLSeconds <= 0 {
		ttl = DefaultTTLSeconds * time.Second
	}

	androidPriority := "normal"
	apnsPriority := "5"
	notificationPriority := messaging.PriorityDefault
	if opts.Priority > 7 {
		androidPriority = "high"
		apnsPriority = "10"
		notificationPriority = messaging.PriorityHigh
	}

	clickURL := opts.ClickURL
	if clickURL == "" {
		clickURL = AbsoluteURL(notification.ActionURL, s.baseURL)
	}
	channelID := ChannelFor(notification.Type)
	badge := 1

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title:    notification.Title,
			Body:     notification.Message,
			ImageURL: opts.ImageURL,
		},
		Data: DataPayload(notification),
		Android: &messaging.AndroidConfig{
			Priority:    androidPriority,
			TTL:         &ttl,
			CollapseKey: opts.CollapseID,
			Notification: &messaging.AndroidNotification{
				Title:                 notification.Title,
				Body:                  notification.Message,
				Icon:                  "notification_icon",
				Color:                 BrandColor,
				ChannelID:             channelID,
				ClickAction:           clickURL,
				ImageURL:              opts.ImageURL,
				Priority:              notificationPriority,
				DefaultSound:          true,
				DefaultVibrateTimings: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": apnsPriority,
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: notification.Title,
						Body:  notification.Message,
					},
					Badge:          &badge,
					Sound:          "default",
					Category:       CategoryFor(notification.Type),
					MutableContent: true,
				},
			},
		},
		Webpush: &messaging.WebpushConfig{
			Headers: map[string]string{
				"TTL":     fmt.Sprintf("%d", int(ttl.Seconds())),
				"Urgency": androidPriority,
			},
			Notification: &messaging.WebpushNotification{
				Title: notification.Title,
				Body:  notification.Message,
				Icon:  "/icons/notification-icon-192.png",
				Image: opts.ImageURL,
				Badge: "/icons/notification-badge-72.png",
				Tag:   string(notification.Type),
			},
			FCMOptions: &messaging.WebpushFCMOptions{
				Link: clickURL,
			},
		},
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return "", errors.GatewayError("fcm", err)
	}

	var messageID string
	for _, result := range response.Responses {
		if result.Success {
			messageID = result.MessageID
			break
		}
	}
	if response.FailureCount > 0 {
		logger.Warn("FCM multicast: %d of %d sends failed for user %s",
			response.FailureCount, len(tokens), notification.UserID)
	}
	if messageID == "" {
		return "", errors.GatewayError("fcm", fmt.Errorf("all %d sends failed", len(tokens)))
	}
	return messageID, nil
}
