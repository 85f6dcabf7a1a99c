/* bot_test.go
 * Contains unit tests for bot.go functions
 * Authors: Zachary Bower
 */

package bot

import (
	"strings"
	"testing"

	"sports-results/api/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// region NewBot tests

func TestNewBot_Success(t *testing.T) {
	apiPtr := &api.API{Store: api.NewMockStore()}
	bot, err := NewBot("test_token", apiPtr, nil)

	require.NoError(t, err)
	assert.Equal(t, "test_token", bot.BotToken)
	assert.Same(t, apiPtr, bot.APIPtr)
	assert.NotNil(t, bot.Logger)
}

func TestNewBot_MissingParameters(t *testing.T) {
	_, err := NewBot("", &api.API{}, nil)
	assert.ErrorContains(t, err, "botToken is required")

	_, err = NewBot("token", nil, nil)
	assert.ErrorContains(t, err, "apiPtr is required")
}

// endregion

// region parseCommand tests

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		content string
		command string
		args    []string
	}{
		{"no args", "$help", "$help", nil},
		{"upper case command", "$HELP", "$help", nil},
		{"plain args", "$competition archery WC1", "$competition", []string{"archery", "WC1"}},
		{"quoted name", `$athlete archery "Deepika Kumari"`, "$athlete", []string{"archery", "Deepika Kumari"}},
		{"extra spaces", "  $tt   https://results.example/tt  ", "$tt", []string{"https://results.example/tt"}},
		{"empty", "   ", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, args, err := parseCommand(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.command, command)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParseCommand_UnbalancedQuotes(t *testing.T) {
	_, _, err := parseCommand(`$athlete archery "Deepika`)
	assert.Error(t, err)
}

// endregion

// region splitMessage tests

func TestSplitMessage_Short(t *testing.T) {
	assert.Equal(t, []string{"hello"}, splitMessage("hello"))
}

func TestSplitMessage_SplitsOnLines(t *testing.T) {
	line := strings.Repeat("a", 99)
	content := strings.TrimSuffix(strings.Repeat(line+"\n", 50), "\n")

	chunks := splitMessage(content)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), maxMessageLength)
		assert.False(t, strings.HasSuffix(chunk, "\n"))
	}
	assert.Equal(t, content, strings.Join(chunks, "\n"))
}

func TestSplitMessage_LongLine(t *testing.T) {
	// 1500 three byte runes cannot be cut in the middle of a rune
	content := strings.Repeat("€", 1500)

	chunks := splitMessage(content)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), maxMessageLength)
	}
	assert.Equal(t, content, strings.Join(chunks, ""))
	assert.Equal(t, 1998, len(chunks[0]))
}

// endregion
