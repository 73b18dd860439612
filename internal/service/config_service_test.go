package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/feedhub/internal/providers"
	"github.com/maheshrc27/feedhub/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigFixture() (ConfigService, *fakePlatformConfigRepo) {
	repo := newFakePlatformConfigRepo()
	registry := providers.Registry{
		"youtube":  &stubProvider{key: "youtube"},
		"linkedin": &stubProvider{key: "linkedin"},
	}
	return NewConfigService(registry, repo), repo
}

func TestSaveConfigOmittedSecretKeepsExisting(t *testing.T) {
	svc, repo := newConfigFixture()

	secret := "original-secret"
	require.NoError(t, svc.Save(context.Background(), 1, &transfer.PlatformConfigInput{
		Platform:     "youtube",
		ClientID:     "client-a",
		ClientSecret: &secret,
	}))

	// Update without a secret; the stored one must survive.
	require.NoError(t, svc.Save(context.Background(), 1, &transfer.PlatformConfigInput{
		Platform: "youtube",
		ClientID: "client-b",
	}))

	row := repo.rows[teamPlatformKey(1, "youtube")]
	require.NotNil(t, row)
	assert.Equal(t, "client-b", row.ClientID)
	assert.Equal(t, "original-secret", row.ClientSecret)
}

func TestSaveConfigNewSecretReplaces(t *testing.T) {
	svc, repo := newConfigFixture()

	first := "first"
	second := "second"
	require.NoError(t, svc.Save(context.Background(), 1, &transfer.PlatformConfigInput{
		Platform:     "youtube",
		ClientID:     "client-a",
		ClientSecret: &first,
	}))
	require.NoError(t, svc.Save(context.Background(), 1, &transfer.PlatformConfigInput{
		Platform:     "youtube",
		ClientID:     "client-a",
		ClientSecret: &second,
	}))

	assert.Equal(t, "second", repo.rows[teamPlatformKey(1, "youtube")].ClientSecret)
}

func TestGetConfigNeverReturnsSecret(t *testing.T) {
	svc, _ := newConfigFixture()

	secret := "hush"
	require.NoError(t, svc.Save(context.Background(), 1, &transfer.PlatformConfigInput{
		Platform:     "linkedin",
		ClientID:     "client-a",
		ClientSecret: &secret,
	}))

	pc, err := svc.Get(context.Background(), 1, "linkedin")
	require.NoError(t, err)
	require.NotNil(t, pc)
	assert.Empty(t, pc.ClientSecret)

	configs, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Empty(t, configs[0].ClientSecret)
}

func TestSaveConfigRejectsUnknownPlatform(t *testing.T) {
	svc, _ := newConfigFixture()

	err := svc.Save(context.Background(), 1, &transfer.PlatformConfigInput{Platform: "myspace"})
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestGetConfigMissingRow(t *testing.T) {
	svc, _ := newConfigFixture()

	pc, err := svc.Get(context.Background(), 1, "youtube")
	require.NoError(t, err)
	assert.Nil(t, pc)
}
