package infra

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/cockroachdb/errors"
)

// NewFirestoreClient opens the Firestore database of the Firebase project. Credentials come from the
// environment (GOOGLE_APPLICATION_CREDENTIALS or the metadata server), and FIRESTORE_EMULATOR_HOST
// redirects the client to a local emulator.
func NewFirestoreClient(ctx context.Context, config GcpConfig) (*firestore.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: config.ProjectId})
	if err != nil {
		return nil, errors.Wrap(err, "error initializing firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error getting Firestore client")
	}
	return client, nil
}
