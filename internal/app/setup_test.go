package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botforge/botforge/internal/app"
	"github.com/botforge/botforge/internal/config"
	"github.com/botforge/botforge/internal/log"
)

func TestSetup_RequiresConfigAndLogger(t *testing.T) {
	ctx := context.Background()

	_, err := app.Setup(ctx, nil, log.NewNop())
	assert.Error(t, err)

	_, err = app.Setup(ctx, &config.Config{}, nil)
	assert.Error(t, err)
}

func TestSetup_NoCredentials(t *testing.T) {
	// No provider keys is a valid startup state. Requests fail later with
	// a missing-credential error, but the process comes up.
	ctx := context.Background()

	a, err := app.Setup(ctx, &config.Config{}, log.NewNop())
	require.NoError(t, err)

	assert.NotNil(t, a.Genkit)
	assert.NotNil(t, a.Agent)
	assert.False(t, a.SearchEnabled())
}

func TestSetup_SearchToolWiredWithCredential(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{
		SearchResultLimit: 3,
		Credentials:       config.Credentials{TavilyAPIKey: "tvly-test"},
	}
	a, err := app.Setup(ctx, cfg, log.NewNop())
	require.NoError(t, err)

	assert.True(t, a.SearchEnabled())
	assert.True(t, a.Agent.SearchEnabled())
}
