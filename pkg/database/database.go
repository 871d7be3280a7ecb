package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"google.golang.org/api/option"
)

// serviceAccount is the subset of the credential file we read ourselves.
// The full file is handed to the client library untouched.
type serviceAccount struct {
	ProjectID string `json:"project_id"`
}

// ConnectFirestore builds a Firestore client from a service-account JSON
// file. The file is parsed up front so that a missing or malformed
// credential fails before any store call is attempted. projectID, when
// non-empty, overrides the file's project_id.
func ConnectFirestore(ctx context.Context, credFile, projectID string) (*firestore.Client, error) {
	raw, err := os.ReadFile(credFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credential file '%s': %w", credFile, err)
	}

	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("failed to parse credential file '%s': %w", credFile, err)
	}

	if projectID == "" {
		projectID = sa.ProjectID
	}
	if projectID == "" {
		return nil, fmt.Errorf("credential file '%s' has no project_id and GOOGLE_CLOUD_PROJECT is not set", credFile)
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, fmt.Errorf("error creating Firestore client: %w", err)
	}

	fmt.Printf("Successfully connected to Firestore project %s.\n", projectID)
	return client, nil
}

func ConnectMongo(connString string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connString))
	if err != nil {
		return nil, fmt.Errorf("error creating MongoDB client: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)

		return nil, fmt.Errorf("error connecting to MongoDB (ping failed): %w", err)
	}

	fmt.Println("Successfully connected to MongoDB.")
	return client, nil
}
