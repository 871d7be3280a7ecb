package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectFirestore_MissingCredentialFile(t *testing.T) {
	_, err := ConnectFirestore(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read credential file")
}

func TestConnectFirestore_MalformedCredentialFile(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "serviceAccountKey.json")
	require.NoError(t, os.WriteFile(credFile, []byte("{not json"), 0600))

	_, err := ConnectFirestore(context.Background(), credFile, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse credential file")
}

func TestConnectFirestore_MissingProjectID(t *testing.T) {
	credFile := filepath.Join(t.TempDir(), "serviceAccountKey.json")
	require.NoError(t, os.WriteFile(credFile, []byte(`{"type":"service_account"}`), 0600))

	_, err := ConnectFirestore(context.Background(), credFile, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no project_id")
}
