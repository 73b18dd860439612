package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryCoversAllPlatforms(t *testing.T) {
	registry := DefaultRegistry()

	for _, platform := range []string{"youtube", "facebook", "instagram", "linkedin"} {
		prov, ok := registry.Get(platform)
		require.True(t, ok, platform)
		assert.Equal(t, platform, prov.Key())

		defaults := prov.Defaults()
		assert.NotEmpty(t, defaults.AuthURL, platform)
		assert.NotEmpty(t, defaults.TokenURL, platform)
		assert.NotEmpty(t, defaults.Scopes, platform)
	}

	_, ok := registry.Get("myspace")
	assert.False(t, ok)
}
