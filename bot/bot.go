/* bot.go
 * Contains the Bot type and the routing of chat commands to their handlers. Requires a discord bot token and an
 * APIPtr, both of which are passed in from main.go
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"strings"

	"sports-results/api/api"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
	"go.uber.org/zap"
)

// maxMessageLength is discord's limit on the length of one message
const maxMessageLength = 2000

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Logger   *zap.Logger
}

// command is a chat command handler. args excludes the command itself and has quotes removed
type command func(b *Bot, session DiscordSession, message *discordgo.MessageCreate, args []string)

var commands = map[string]command{
	"$help":        (*Bot).helpMessageHandler,
	"$sports":      (*Bot).sportsHandler,
	"$athlete":     (*Bot).athleteHandler,
	"$medals":      (*Bot).medalsHandler,
	"$competition": (*Bot).competitionHandler,
	"$shooting":    (*Bot).shootingHandler,
	"$tt":          (*Bot).tableTennisHandler,
}

func NewBot(botToken string, apiPtr *api.API, logger *zap.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Logger:   logger,
	}, nil
}

// newMessageHandler routes messages to the matching command handler
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}
	if !strings.HasPrefix(message.Content, "$") {
		return
	}

	name, args, err := parseCommand(message.Content)
	if err != nil {
		b.send(session, message.ChannelID, "Could not read that command, check your quotes")
		return
	}
	handler, ok := commands[name]
	if !ok {
		return
	}
	b.logger().Debug("bot command", zap.String("command", name), zap.String("user", message.Author.Username))
	handler(b, session, message, args)
}

// parseCommand splits a message into the lower cased command and its arguments. Arguments may be wrapped in double
// quotes to include spaces, e.g. $athlete archery "Deepika Kumari"
// Preconditions: Receives the raw message content
// Postconditions: Returns the command, the unquoted arguments, or an error if the quotes are unbalanced
func parseCommand(content string) (string, []string, error) {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return "", nil, err
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		return "", nil, err
	}

	var tokens []string
	for _, p := range parts {
		p = strings.TrimSpace(strings.Trim(strings.TrimSpace(p), "\"“”"))
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	switch len(tokens) {
	case 0:
		return "", nil, nil
	case 1:
		return strings.ToLower(tokens[0]), nil, nil
	}
	return strings.ToLower(tokens[0]), tokens[1:], nil
}

// splitMessage breaks a response into chunks that fit in one discord message, splitting on line breaks where possible
// Preconditions: Receives the full response
// Postconditions: Returns one or more chunks of at most maxMessageLength bytes each
func splitMessage(content string) []string {
	if len(content) <= maxMessageLength {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
		}
	}
	for _, line := range strings.SplitAfter(content, "\n") {
		for len(line) > maxMessageLength {
			flush()
			cut := maxMessageLength
			// avoid splitting a multi byte character
			for cut > 0 && !isRuneStart(line[cut]) {
				cut--
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		if current.Len()+len(line) > maxMessageLength {
			flush()
		}
		current.WriteString(line)
	}
	flush()
	return chunks
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// send posts a response, split over as many messages as needed
func (b *Bot) send(session DiscordSession, channelID string, content string) {
	for _, chunk := range splitMessage(content) {
		if _, err := session.ChannelMessageSend(channelID, chunk); err != nil {
			b.logger().Error("failed to send message", zap.String("channel", channelID), zap.Error(err))
			return
		}
	}
}

func (b *Bot) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}
