/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface
 * Authors: Zachary Bower
 */

package bot

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"sports-results/api/api"
	"sports-results/api/shared"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// commandTimeout bounds the store and fetch calls made by one command
const commandTimeout = 30 * time.Second

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate, _ []string) {
	var res strings.Builder
	res.WriteString("Sports Results Bot v1.0\n")
	res.WriteString("`$sports`: lists the sports that can be queried\n")
	res.WriteString("`$athlete <sport> \"<name>\"`: shows every stored result of an athlete, grouped by competition, event and round\n")
	res.WriteString("`$medals <sport> \"<name>\"`: shows an athlete's medal tally and match counts\n")
	res.WriteString("`$competition <sport> <id>`: shows the results of the target country in a competition\n")
	res.WriteString("`$shooting <url>`: extracts the target country's rows from a shooting result page\n")
	res.WriteString("`$tt <url>`: extracts the target country's matches from a table tennis draw page\n")
	res.WriteString("There is fuzzy matching on names, however you should try and have a close match for the best results. Names that contain two or more words need to be encased in \" (e.g. \"Deepika Kumari\")\n")
	b.send(session, message.ChannelID, res.String())
}

// sportsHandler handles the $sports command
func (b *Bot) sportsHandler(session DiscordSession, message *discordgo.MessageCreate, _ []string) {
	var res strings.Builder
	res.WriteString("Supported sports are:\n")
	for _, sport := range shared.Sports {
		res.WriteString(fmt.Sprintf("- %s\n", sport))
	}
	b.send(session, message.ChannelID, res.String())
}

// athleteHandler handles $athlete <sport> "<name>"
func (b *Bot) athleteHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	sport, athlete, ok := b.resolveAthlete(session, message, args, "$athlete")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	report, err := b.APIPtr.AthleteReport(ctx, sport, athlete.ID)
	if err != nil {
		b.replyError(session, message, "getting athlete results", err)
		return
	}
	b.send(session, message.ChannelID, report)
}

// medalsHandler handles $medals <sport> "<name>"
func (b *Bot) medalsHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	sport, athlete, ok := b.resolveAthlete(session, message, args, "$medals")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	view, err := b.APIPtr.AthleteResults(ctx, sport, athlete.ID)
	if err != nil {
		b.replyError(session, message, "getting athlete medals", err)
		return
	}
	if view.Stats == nil || len(view.Competitions) == 0 {
		b.send(session, message.ChannelID, fmt.Sprintf("No %s results stored for %s", sport, athlete.Name))
		return
	}

	s := view.Stats
	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s (%s) - %s\n", view.Title, athlete.Country, sport))
	res.WriteString(fmt.Sprintf("🥇 %d 🥈 %d 🥉 %d (total %d)\n", s.Gold, s.Silver, s.Bronze, s.Medals()))
	res.WriteString(fmt.Sprintf("Competitions: %d, Events: %d, Matches: %d, Byes: %d", s.Competitions, s.Events, s.Matches, s.Byes))
	b.send(session, message.ChannelID, res.String())
}

// competitionHandler handles $competition <sport> <id>
func (b *Bot) competitionHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) < 2 {
		b.send(session, message.ChannelID, "Usage: `$competition <sport> <id>`")
		return
	}
	sport, err := api.ParseSport(args[0])
	if err != nil {
		b.send(session, message.ChannelID, api.UserMessage(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	report, err := b.APIPtr.CompetitionReport(ctx, sport, args[1])
	if err != nil {
		b.replyError(session, message, "getting competition results", err)
		return
	}
	b.send(session, message.ChannelID, report)
}

// shootingHandler handles $shooting <url>
func (b *Bot) shootingHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	b.scrape(session, message, args, "$shooting", b.APIPtr.ScrapeShooting)
}

// tableTennisHandler handles $tt <url>
func (b *Bot) tableTennisHandler(session DiscordSession, message *discordgo.MessageCreate, args []string) {
	b.scrape(session, message, args, "$tt", b.APIPtr.ScrapeTableTennis)
}

func (b *Bot) scrape(session DiscordSession, message *discordgo.MessageCreate, args []string, name string,
	scraper func(ctx context.Context, url string) (string, error)) {
	if len(args) < 1 || !isHTTPURL(args[0]) {
		b.send(session, message.ChannelID, fmt.Sprintf("Usage: `%s <url>` with an http(s) url", name))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	res, err := scraper(ctx, args[0])
	if err != nil {
		b.replyError(session, message, "scraping "+args[0], err)
		return
	}
	b.send(session, message.ChannelID, res)
}

// resolveAthlete parses <sport> "<name>" and finds the athlete, replying with the problem when it cannot
func (b *Bot) resolveAthlete(session DiscordSession, message *discordgo.MessageCreate, args []string, name string) (shared.Sport, shared.Athlete, bool) {
	if len(args) < 2 {
		b.send(session, message.ChannelID, fmt.Sprintf("Usage: `%s <sport> \"<name>\"`", name))
		return "", shared.Athlete{}, false
	}
	sport, err := api.ParseSport(args[0])
	if err != nil {
		b.send(session, message.ChannelID, api.UserMessage(err))
		return "", shared.Athlete{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	athlete, err := b.APIPtr.FindAthlete(ctx, sport, strings.Join(args[1:], " "))
	if err != nil {
		b.replyError(session, message, "finding athlete", err)
		return "", shared.Athlete{}, false
	}
	return sport, athlete, true
}

// replyError logs err and sends the user facing message for it
func (b *Bot) replyError(session DiscordSession, message *discordgo.MessageCreate, action string, err error) {
	b.logger().Warn("bot command failed", zap.String("action", action), zap.Error(err))
	b.send(session, message.ChannelID, api.UserMessage(err))
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
