package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadProfile_AllSections(t *testing.T) {
	path := writeProfile(t, `
aws:
  profile: prod
  region: eu-west-1
azure:
  subscription_id: sub-123
gcp:
  project_id: my-project
  billing_account: 01AB-CD23
  credentials_file: /tmp/key.json
`)

	profile, err := LoadProfile(path)

	require.NoError(t, err)
	require.NotNil(t, profile.AWS)
	assert.Equal(t, "prod", profile.AWS.Profile)
	assert.Equal(t, "eu-west-1", profile.AWS.Region)
	require.NotNil(t, profile.Azure)
	assert.Equal(t, "sub-123", profile.Azure.SubscriptionID)
	require.NotNil(t, profile.GCP)
	assert.Equal(t, "my-project", profile.GCP.ProjectID)
	assert.Equal(t, []string{"aws", "azure", "gcp"}, profile.Providers())
}

func TestLoadProfile_PartialSections(t *testing.T) {
	path := writeProfile(t, `
aws:
  profile: default
`)

	profile, err := LoadProfile(path)

	require.NoError(t, err)
	assert.NotNil(t, profile.AWS)
	assert.Nil(t, profile.Azure)
	assert.Nil(t, profile.GCP)
	assert.Equal(t, []string{"aws"}, profile.Providers())
}

func TestLoadProfile_MissingFile_ShouldError(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}
