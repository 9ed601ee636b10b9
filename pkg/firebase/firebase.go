package firebase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned when no service account file is configured.
var ErrNoCredentials = errors.New("firebase: credentials path not provided")

// NewAuthClient builds the auth client used to verify session ID tokens from
// a service account file.
func NewAuthClient(ctx context.Context, credentialsPath string) (*auth.Client, error) {
	if credentialsPath == "" {
		return nil, ErrNoCredentials
	}
	info, err := os.Stat(credentialsPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("firebase: credentials file %s not found", credentialsPath)
	case err != nil:
		return nil, fmt.Errorf("firebase: stat credentials: %w", err)
	case info.IsDir():
		return nil, fmt.Errorf("firebase: credentials path %s is a directory", credentialsPath)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("firebase: init app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: auth client: %w", err)
	}

	log.Println("Firebase auth client ready")
	return client, nil
}
