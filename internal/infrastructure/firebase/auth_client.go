package firebase

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"rentitforward/pkg/config"
)

// NewApp builds the Firebase app for the configured project. A
// credentials file is optional; ambient credentials are used when the
// path is empty.
func NewApp(ctx context.Context, cfg *config.Config, credentialsPath string) (*firebase.App, error) {
	firebaseConfig := &firebase.Config{ProjectID: cfg.FirebaseProject}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}
	return firebase.NewApp(ctx, firebaseConfig, opts...)
}

// AuthClient wraps Firebase Auth for registration and token checks.
type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{client: client}
}

func (c *AuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := c.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

func (c *AuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := c.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return result.UID, nil
}

func (c *AuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	return c.client.CustomToken(ctx, uid)
}

func (c *AuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).Password(newPassword)
	_, err := c.client.UpdateUser(ctx, uid, params)
	return err
}

func (c *AuthClient) DisableUser(ctx context.Context, uid string) error {
	params := (&auth.UserToUpdate{}).Disabled(true)
	_, err := c.client.UpdateUser(ctx, uid, params)
	return err
}

// NewMessagingClient returns the FCM client used by the push layer.
func NewMessagingClient(ctx context.Context, app *firebase.App) (*messaging.Client, error) {
	return app.Messaging(ctx)
}
