/* session_interface.go
 * Contains the slice of the discord session used by the command handlers, so handlers can run against a mock
 * Authors: Zachary Bower
 */

package bot

import "github.com/bwmarrin/discordgo"

// DiscordSession is the part of *discordgo.Session the handlers send replies through
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ DiscordSession = (*discordgo.Session)(nil)
