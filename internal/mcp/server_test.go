package mcp

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dayplan/adapter/cli"
	"github.com/felixgeelhaar/dayplan/pkg/config"
	"github.com/felixgeelhaar/dayplan/pkg/observability"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_RegistersPlannerTools(t *testing.T) {
	srv, err := NewServer(&cli.App{}, observability.NewDiscardLogger())
	require.NoError(t, err)

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[any]bool, len(tools))
	for _, tool := range tools {
		names[tool["name"]] = true
	}
	assert.True(t, names["planner.plan"])
	assert.True(t, names["planner.done"])
}

func TestNewServer_RequiresApp(t *testing.T) {
	_, err := NewServer(nil, nil)
	assert.Error(t, err)
}

func TestServe_RequiresInputs(t *testing.T) {
	ctx := context.Background()

	assert.Error(t, Serve(ctx, nil, &cli.App{}, nil))
	assert.Error(t, Serve(ctx, &config.Config{}, nil, nil))
}

func TestFieldsToArgs(t *testing.T) {
	assert.Empty(t, fieldsToArgs(nil))
}
