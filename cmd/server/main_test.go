package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCommandTree(t *testing.T) {
	cmd := newCommand()

	var names []string
	for _, sub := range cmd.Commands {
		names = append(names, sub.Name)
	}
	assert.Equal(t, []string{"serve", "migrate", "seed", "hash"}, names)

	migrate := cmd.Command("migrate")
	require.NotNil(t, migrate)
	var migrations []string
	for _, sub := range migrate.Commands {
		migrations = append(migrations, sub.Name)
	}
	assert.ElementsMatch(t, []string{"up", "down", "status", "version", "reset"}, migrations)
}

func TestSeedRequiresExactlyOneMode(t *testing.T) {
	for _, args := range [][]string{
		{"taskly-api", "seed"},
		{"taskly-api", "seed", "-i", "-d"},
	} {
		err := newCommand().Run(context.Background(), args)
		assert.ErrorIs(t, err, errSeedMode, "%v", args)
	}
}

func TestHashCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out

	require.NoError(t, cmd.Run(context.Background(), []string{"taskly-api", "hash", "--cost", "4", "secret"}))
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))

	err := newCommand().Run(context.Background(), []string{"taskly-api", "hash"})
	assert.ErrorIs(t, err, errNoPassword)
}
