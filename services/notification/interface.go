package notification

import "context"

// Service defines methods for sending FCM pushes.
type Service interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}
