package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botStackYAML = `
services:
  bot:
    build:
      context: .
    env_file: .env
  mongo:
    image: mongo:7
    volumes:
      - mongo_data:/data/db
  nginx:
    image: nginx:alpine
    ports:
      - "80:80"
volumes:
  mongo_data:
`

// =============================================================================
// ParseStackFile Tests
// =============================================================================

func TestParseStackFile_BotStack(t *testing.T) {
	stack, err := ParseStackFile(botStackYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"bot", "mongo", "nginx"}, stack.Names())

	for _, svc := range stack.Services {
		if svc.Name == "bot" {
			assert.True(t, svc.Build)
		} else {
			assert.False(t, svc.Build)
		}
	}
}

func TestParseStackFile_EmptyInput(t *testing.T) {
	_, err := ParseStackFile("   \n")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseStackFile_InvalidYAML(t *testing.T) {
	_, err := ParseStackFile("services: [unclosed")
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestParseStackFile_NoServices(t *testing.T) {
	_, err := ParseStackFile("volumes:\n  data:\n")
	assert.Error(t, err)
}

// =============================================================================
// PrimaryService Tests
// =============================================================================

func TestPrimaryService_PrefersBuiltService(t *testing.T) {
	stack, err := ParseStackFile(botStackYAML)
	require.NoError(t, err)

	assert.Equal(t, "bot", stack.PrimaryService(""))
}

func TestPrimaryService_OverrideWins(t *testing.T) {
	stack, err := ParseStackFile(botStackYAML)
	require.NoError(t, err)

	assert.Equal(t, "mongo", stack.PrimaryService("mongo"))
}

func TestPrimaryService_NoBuiltService(t *testing.T) {
	stack, err := ParseStackFile(`
services:
  web:
    image: nginx:alpine
  cache:
    image: redis:7
`)
	require.NoError(t, err)

	assert.Equal(t, "cache", stack.PrimaryService(""))
}
