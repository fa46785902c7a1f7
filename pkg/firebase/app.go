// Package firebase owns the process-wide Firebase app.
package firebase

import (
	"context"
	"fmt"
	"sync"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

var (
	initOnce sync.Once
	app      *firebase.App
	initErr  error
)

// Init initializes the Firebase app once per process. Later calls return
// the result of the first call and ignore their arguments.
func Init(ctx context.Context, projectID, credentialsFile string) (*firebase.App, error) {
	initOnce.Do(func() {
		app, initErr = newApp(ctx, projectID, credentialsFile)
	})
	return app, initErr
}

func newApp(ctx context.Context, projectID, credentialsFile string) (*firebase.App, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var cfg *firebase.Config
	if projectID != "" {
		cfg = &firebase.Config{ProjectID: projectID}
	}

	a, err := firebase.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}
	return a, nil
}
