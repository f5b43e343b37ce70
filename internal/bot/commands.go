package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/geckostudy/geckoden/internal/models"
)

const (
	studentHelp = `Available commands:
/link <username> - Link this telegram account to your study username
/token - Get an API token
/help - Show this message`

	adminHelp = `Available commands:
/link <username> - Link this telegram account to your study username
/token - Get an API token
/leaderboard - Show the class leaderboard
/points <student> <delta> - Credit or debit points (e.g. /points student1 -2)
/checkin <student> <date> - Schedule a check-in (YYYY-MM-DD)
/badge <student> <badge_id> - Award a badge
/printed <submission_id> <on|off> - Mark a submission as printed
/submissions <student> - List a student's submissions
/help - Show this message

Examples:
/points student2 10
/checkin student1 2026-09-03
/badge student3 speed_gecko`
)

type commandHandler func(*tgbotapi.Message) error

func (b *Bot) routeStudentCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"start": b.handleStart,
		"link":  b.handleLink,
		"token": b.handleToken,
		"help":  b.handleHelp,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) routeAdminCommands(cmd string) (commandHandler, bool) {
	commands := map[string]commandHandler{
		"leaderboard": b.handleLeaderboard,
		"points":      b.handlePoints,
		"checkin":     b.handleCheckIn,
		"badge":       b.handleBadge,
		"printed":     b.handlePrinted,
		"submissions": b.handleSubmissions,
	}
	handler, found := commands[cmd]
	return handler, found
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		b.sendHelp(msg.Chat.ID)
		return
	}

	cmd := msg.Command()

	if handler, ok := b.routeStudentCommands(cmd); ok {
		if err := handler(msg); err != nil {
			logger.Error.Printf("Command error: %v", err)
			b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
		}
		return
	}

	if b.admins[msg.From.ID] {
		if handler, ok := b.routeAdminCommands(cmd); ok {
			if err := handler(msg); err != nil {
				logger.Error.Printf("Command error: %v", err)
				b.sendMessage(msg.Chat.ID, fmt.Sprintf("Error: %v", err))
			}
		}
		return
	}

	b.sendHelp(msg.Chat.ID)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) error {
	var text string
	if b.admins[msg.From.ID] {
		text = adminHelp
	} else {
		text = studentHelp
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) sendHelp(chatID int64) error {
	return b.sendMessage(chatID, "Send /help for the list of commands.")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) error {
	text := "Hi! I keep track of weekly study submissions and points.\n\n"
	if b.admins[msg.From.ID] {
		text += "You are a class admin. Send /help for the list of commands."
	} else {
		text += "Send /link <username> first, then /token to get an API token."
	}

	return b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleLink(msg *tgbotapi.Message) error {
	if b.tokens == nil {
		return b.sendMessage(msg.Chat.ID, "Token auth is disabled, nothing to link")
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) != 1 {
		return fmt.Errorf("usage: /link <username>")
	}
	username := args[0]

	if _, err := b.service.Login(username); err != nil {
		return fmt.Errorf("unknown username %s", username)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.tokens.SaveStudentTelegramMapping(ctx, msg.From.UserName, username); err != nil {
		return fmt.Errorf("failed to save mapping: %w", err)
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("Linked @%s to %s. Now send /token.", msg.From.UserName, username))
}

func (b *Bot) handleToken(msg *tgbotapi.Message) error {
	if b.tokens == nil {
		return b.sendMessage(msg.Chat.ID, "Token auth is disabled, no token needed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	student, err := b.tokens.FetchStudentByTelegram(ctx, msg.From.UserName)
	if err != nil {
		return fmt.Errorf("no linked username, send /link <username> first")
	}

	info, isNew, err := b.tokens.FetchOrCreateStudentToken(ctx, student)
	if err != nil {
		return fmt.Errorf("failed to fetch token: %w", err)
	}

	action := "Your token"
	if isNew {
		action = "Created a new token"
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("%s for %s:\n%s", action, student, info.Token))
}

func (b *Bot) handleLeaderboard(msg *tgbotapi.Message) error {
	entries, err := b.service.Leaderboard()
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	if len(entries) == 0 {
		return b.sendMessage(msg.Chat.ID, "No students yet")
	}

	var out strings.Builder
	out.WriteString("Leaderboard:\n\n")
	for i, entry := range entries {
		out.WriteString(fmt.Sprintf("%d. %s (%s)\n🦎 %d points, %s, grade %s\n\n",
			i+1,
			entry.Name,
			entry.Username,
			entry.Points,
			entry.Level,
			entry.Grade,
		))
	}

	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) handlePoints(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		return fmt.Errorf("usage: /points <student> <delta>")
	}

	student := args[0]
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad delta %q: %v", args[1], err)
	}

	if err := b.service.AdjustPoints(student, delta); err != nil {
		return fmt.Errorf("failed to adjust points: %w", err)
	}

	verb := "credited"
	if delta < 0 {
		verb = "debited"
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ %s %d points for %s", verb, delta, student))
}

func (b *Bot) handleCheckIn(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		return fmt.Errorf("usage: /checkin <student> <date>, date as YYYY-MM-DD")
	}

	student, date := args[0], args[1]
	if err := b.service.ScheduleCheckIn(student, date); err != nil {
		return fmt.Errorf("failed to schedule check-in: %w", err)
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Check-in for %s scheduled on %s", student, date))
}

func (b *Bot) handleBadge(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		var ids []string
		for id := range models.BadgeCatalog {
			ids = append(ids, id)
		}
		return fmt.Errorf("usage: /badge <student> <badge_id>, known badges: %s", strings.Join(ids, ", "))
	}

	student, badgeID := args[0], args[1]
	if err := b.service.AwardBadge(student, badgeID); err != nil {
		return fmt.Errorf("failed to award badge: %w", err)
	}

	badge := models.BadgeCatalog[badgeID]
	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ %s awarded to %s", badge.Label, student))
}

func (b *Bot) handlePrinted(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		return fmt.Errorf("usage: /printed <submission_id> <on|off>")
	}

	id := args[0]
	printed := args[1] == "on"

	if err := b.service.SetPrinted(id, printed); err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	return b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Submission %s printed=%v", id, printed))
}

func (b *Bot) handleSubmissions(msg *tgbotapi.Message) error {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 1 {
		return fmt.Errorf("usage: /submissions <student>")
	}
	student := args[0]

	submissions, err := b.service.ListSubmissions(student)
	if err != nil {
		return fmt.Errorf("failed to list submissions: %w", err)
	}

	if len(submissions) == 0 {
		return b.sendMessage(msg.Chat.ID, fmt.Sprintf("No submissions for %s", student))
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Submissions for %s:\n\n", student))
	for _, sub := range submissions {
		printed := " "
		if sub.Printed {
			printed = "🖨"
		}
		out.WriteString(fmt.Sprintf("📝 %s week %d [%s]\n%s\n📅 %s UTC\nid: %s\n\n",
			sub.Semester,
			sub.Week,
			printed,
			sub.StudyDescription,
			time.Unix(sub.Timestamp, 0).UTC().Format("2006-Jan-02 Mon 15:04"),
			sub.ID,
		))
	}

	return b.sendMessage(msg.Chat.ID, out.String())
}

func (b *Bot) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}
