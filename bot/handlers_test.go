/* handlers_test.go
 * Contains unit tests for bot command handlers using mock Discord session
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"sports-results/api/api"
	"sports-results/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const archeryRecords = `[
  {"id": "1", "competitionId": "WC1", "competition": "World Cup Stage 1", "eventCode": "RW", "event": "Recurve Women", "phase": 2,
   "competitors": [
     {"athlete": {"id": "DK", "name": "Deepika Kumari", "noc": "IND"}, "score": 6, "winLose": true},
     {"athlete": {"id": "AS", "name": "An San", "noc": "KOR"}, "score": 2, "winLose": false}]},
  {"id": "2", "competitionId": "WC1", "eventCode": "RW", "phase": 0,
   "competitors": [
     {"athlete": {"id": "DK", "name": "Deepika Kumari", "noc": "IND"}, "score": 7, "winLose": true},
     {"athlete": {"id": "LS", "name": "Lim Sihyeon", "noc": "KOR"}, "score": 3, "winLose": false}]}
]`

// createTestBot creates a Bot instance with a mock API for testing
func createTestBot(t *testing.T) (*Bot, *api.MockStore) {
	t.Helper()
	mockStore := api.NewMockStore()
	apiPtr := &api.API{Store: mockStore}
	_, err := apiPtr.ImportRecords(context.Background(), shared.SportArchery, []byte(archeryRecords))
	require.NoError(t, err)

	bot, err := NewBot("test_token", apiPtr, nil)
	require.NoError(t, err)
	return bot, mockStore
}

// createMockMessage creates a mock Discord message for testing
func createMockMessage(content, userID, username, channelID string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{
			Content:   content,
			ChannelID: channelID,
			Author: &discordgo.User{
				ID:       userID,
				Username: username,
			},
		},
	}
}

func runCommand(bot *Bot, content string) *MockDiscordSession {
	mockSession := NewMockDiscordSession()
	bot.newMessageHandler(mockSession, createMockMessage(content, "user123", "TestUser", "channel123"), "bot456")
	return mockSession
}

// region routing tests

func TestNewMessageHandler_IgnoresOwnMessages(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()

	bot.newMessageHandler(mockSession, createMockMessage("$help", "bot456", "Bot", "channel123"), "bot456")
	assert.Empty(t, mockSession.SentMessages)
}

func TestNewMessageHandler_IgnoresOtherMessages(t *testing.T) {
	bot, _ := createTestBot(t)

	assert.Empty(t, runCommand(bot, "hello there").SentMessages)
	assert.Empty(t, runCommand(bot, "$unknown command").SentMessages)
	assert.Empty(t, runCommand(bot, "$helpme").SentMessages)
}

func TestNewMessageHandler_BadQuotes(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := runCommand(bot, `$athlete archery "Deepika`)

	require.Len(t, mockSession.SentMessages, 1)
	assert.Contains(t, mockSession.GetLastMessage().Content, "check your quotes")
}

func TestHelpMessage(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := runCommand(bot, "$help")

	require.Len(t, mockSession.SentMessages, 1)
	msg := mockSession.GetLastMessage()
	assert.Equal(t, "channel123", msg.ChannelID)
	for _, cmd := range []string{"$athlete", "$medals", "$competition", "$shooting", "$tt", "$sports"} {
		assert.Contains(t, msg.Content, cmd)
	}
}

func TestSports(t *testing.T) {
	bot, _ := createTestBot(t)
	msg := runCommand(bot, "$sports").GetLastMessage()

	assert.Contains(t, msg.Content, "- archery\n")
	assert.Contains(t, msg.Content, "- tabletennis\n")
}

// endregion

// region athlete tests

func TestAthlete_Success(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := runCommand(bot, `$athlete archery "deepika kumari"`)

	require.Len(t, mockSession.SentMessages, 1)
	content := mockSession.GetLastMessage().Content
	assert.True(t, strings.HasPrefix(content, "Deepika Kumari\n🥇 1 🥈 0 🥉 0 | Matches: 2 | Competitions: 1"))
	assert.Contains(t, content, "Recurve Women 🥇 (best: Gold Medal Match)")
	assert.Contains(t, content, "[Semifinals] Deepika Kumari (IND) defeated An San (KOR) 6-2")
}

func TestAthlete_Errors(t *testing.T) {
	bot, mockStore := createTestBot(t)

	assert.Contains(t, runCommand(bot, "$athlete archery").GetLastMessage().Content, "Usage: `$athlete")
	assert.Contains(t, runCommand(bot, `$athlete curling "Deepika"`).GetLastMessage().Content, "Unknown sport")
	assert.Equal(t, "No athlete found with that name", runCommand(bot, `$athlete archery "zzzz"`).GetLastMessage().Content)

	mockStore.FetchAthleteRecordsError = errors.New("db down")
	assert.Equal(t, "Something went wrong, please try again later", runCommand(bot, `$athlete archery Deepika`).GetLastMessage().Content)
}

func TestMedals(t *testing.T) {
	bot, _ := createTestBot(t)
	msg := runCommand(bot, `$medals archery "Lim"`).GetLastMessage()

	assert.Equal(t, "Lim Sihyeon (KOR) - archery\n🥇 0 🥈 1 🥉 0 (total 1)\nCompetitions: 1, Events: 1, Matches: 1, Byes: 0", msg.Content)
}

func TestMedals_NoResults(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockStore.Athletes[shared.SportBadminton] = []shared.Athlete{{ID: "PVS", Name: "P V Sindhu", Country: "IND"}}

	msg := runCommand(bot, `$medals badminton "Sindhu"`).GetLastMessage()
	assert.Equal(t, "No badminton results stored for P V Sindhu", msg.Content)
}

// endregion

// region competition and scrape tests

func TestCompetition(t *testing.T) {
	bot, _ := createTestBot(t)

	content := runCommand(bot, "$competition archery WC1").GetLastMessage().Content
	assert.True(t, strings.HasPrefix(content, "World Cup Stage 1\n\n== World Cup Stage 1 ==\nRecurve Women 🥇"))

	assert.Contains(t, runCommand(bot, "$competition archery").GetLastMessage().Content, "Usage: `$competition")
}

func TestShooting(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockStore.Pages["https://results.example/10m"] = `<table><tr><td>2</td><td></td><td>BHAKER Manu</td><td>IND</td><td></td><td></td><td></td><td></td><td></td><td>580</td><td></td><td>Q</td><td></td></tr></table>`

	msg := runCommand(bot, "$shooting https://results.example/10m").GetLastMessage()
	assert.Equal(t, "2. Manu Bhaker\nTotal: 580 - Q", msg.Content)

	msg = runCommand(bot, "$shooting not-a-url").GetLastMessage()
	assert.Contains(t, msg.Content, "Usage: `$shooting <url>`")
	assert.Zero(t, mockStore.PageRequests["not-a-url"])
}

func TestTableTennis(t *testing.T) {
	bot, mockStore := createTestBot(t)
	mockStore.Pages["https://results.example/draw"] = `<div class="match-card"><div class="match-round">Quarterfinal</div>` +
		`<div class="player"><span class="player-name">Manika Batra</span><img title="IND"/></div>` +
		`<div class="match-score">1 - 3</div>` +
		`<div class="player"><span class="player-name">Mima Ito</span><img title="JPN"/></div></div>`

	msg := runCommand(bot, "$tt https://results.example/draw").GetLastMessage()
	assert.Equal(t, "=== Quarterfinal ===\nManika Batra (IND) 1 - 3 Mima Ito (JPN)", msg.Content)

	msg = runCommand(bot, "$tt https://results.example/missing").GetLastMessage()
	assert.Equal(t, "Something went wrong, please try again later", msg.Content)
}

func TestSend_SplitsLongResponses(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	content := strings.Repeat(strings.Repeat("x", 999)+"\n", 5)

	bot.send(mockSession, "channel123", content)
	require.Len(t, mockSession.SentMessages, 3)
	assert.Equal(t, strings.TrimSuffix(content, "\n"), mockSession.AllContent())
}

func TestSend_StopsOnError(t *testing.T) {
	bot, _ := createTestBot(t)
	mockSession := NewMockDiscordSession()
	mockSession.ErrorToReturn = errors.New("rate limited")

	bot.send(mockSession, "channel123", "hello")
	assert.Empty(t, mockSession.SentMessages)
}

// endregion
