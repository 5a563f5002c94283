// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/word-sprint/filter"
	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/notify"
	"github.com/danielhkuo/word-sprint/report"
	"github.com/danielhkuo/word-sprint/sprint"
)

// usageError marks malformed command arguments; the usage text is the reply.
type usageError string

func (e usageError) Error() string { return string(e) }

type command struct {
	adminOnly bool
	run       func(ctx context.Context, msg models.InboundMessage, args string, r notify.Replier) error
}

// Dispatcher routes inbound chat messages to commands or to the submission
// pipeline and answers through a notify.Replier.
type Dispatcher struct {
	svc      *sprint.Service
	commands map[string]command
}

func NewDispatcher(svc *sprint.Service) *Dispatcher {
	d := &Dispatcher{svc: svc}
	d.commands = map[string]command{
		"start":        {run: d.start},
		"whoami":       {run: d.whoami},
		"help":         {adminOnly: true, run: d.help},
		"start_sprint": {adminOnly: true, run: d.startSprint},
		"end_sprint":   {adminOnly: true, run: d.endSprint},
		"get_words":    {adminOnly: true, run: d.getWords},
		"list_sprints": {adminOnly: true, run: d.listSprints},
		"broadcast":    {adminOnly: true, run: d.broadcast},
		"stats":        {adminOnly: true, run: d.stats},
	}
	return d
}

// Handle processes one message. It never returns an error: every outcome,
// including internal failures, becomes a reply.
func (d *Dispatcher) Handle(ctx context.Context, msg models.InboundMessage, r notify.Replier) {
	if err := d.svc.RegisterUser(ctx, msg.SenderID, msg.SenderName, msg.ReceivedAt); err != nil {
		slog.Error("failed to register user", "user_id", msg.SenderID, "error", err)
		d.reply(ctx, r, msg.SenderID, msgApology)
		return
	}

	name, args, isCommand := ParseCommand(msg.Text)
	if !isCommand {
		d.submit(ctx, msg, r)
		return
	}

	cmd, ok := d.commands[name]
	if !ok {
		d.reply(ctx, r, msg.SenderID, msgUnknown)
		return
	}

	slog.Debug("command received", "command", name, "user_id", msg.SenderID)
	if cmd.adminOnly && !d.svc.Admins().IsAdmin(msg.SenderID) {
		slog.Info("admin command refused", "command", name, "user_id", msg.SenderID)
		d.reply(ctx, r, msg.SenderID, msgAdminOnly[name]+"\n"+msgHelpHint)
		return
	}

	if err := cmd.run(ctx, msg, args, r); err != nil {
		d.replyError(ctx, r, msg.SenderID, name, err)
	}
}

// ParseCommand splits "/name@bot args" into its lower-cased name and the
// trimmed argument text. Text not starting with a slash is not a command.
func ParseCommand(text string) (name, args string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text[1:], " ")
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		head, rest = head[:i], head[i+1:]+" "+rest
	}
	head, _, _ = strings.Cut(head, "@")
	if head == "" {
		return "", "", false
	}
	return strings.ToLower(head), strings.TrimSpace(rest), true
}

func (d *Dispatcher) replyError(ctx context.Context, r notify.Replier, to int64, name string, err error) {
	var usage usageError
	switch {
	case errors.As(err, &usage):
		d.reply(ctx, r, to, string(usage)+"\n"+msgHelpHint)
	case errors.Is(err, sprint.ErrNotFound):
		d.reply(ctx, r, to, msgNotFound+"\n"+msgHelpHint)
	case errors.Is(err, sprint.ErrPermissionDenied):
		d.reply(ctx, r, to, msgPermissionDenied)
	default:
		slog.Error("command failed", "command", name, "user_id", to, "error", err)
		d.reply(ctx, r, to, msgApology)
	}
}

// reply sends text and logs a failed delivery. The chat user cannot be told
// about it anyway.
func (d *Dispatcher) reply(ctx context.Context, r notify.Replier, to int64, text string) {
	if err := r.Notify(ctx, to, text); err != nil {
		slog.Warn("reply failed", "user_id", to, "error", err)
	}
}

// Commands

func (d *Dispatcher) start(ctx context.Context, msg models.InboundMessage, _ string, r notify.Replier) error {
	active, err := d.svc.ListActiveSprints(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(msgGreeting + "\n\n")
	if len(active) == 0 {
		b.WriteString(msgNoActive)
	} else {
		b.WriteString(msgActiveHeader + "\n")
		b.WriteString(report.FormatSprints(active, msg.ReceivedAt))
		b.WriteString("\n\n" + msgSendWords)
	}
	d.reply(ctx, r, msg.SenderID, b.String())
	return nil
}

func (d *Dispatcher) whoami(ctx context.Context, msg models.InboundMessage, _ string, r notify.Replier) error {
	username := "unknown"
	if msg.SenderName != "" {
		username = "@" + msg.SenderName
	}
	isAdmin := d.svc.Admins().IsAdmin(msg.SenderID)
	admin := "no"
	if isAdmin {
		admin = "yes"
	}

	text := fmt.Sprintf(msgWhoAmI, msg.SenderID, username, admin)
	if isAdmin {
		text += "\n" + msgHelpHint
	}
	d.reply(ctx, r, msg.SenderID, text)
	return nil
}

func (d *Dispatcher) help(ctx context.Context, msg models.InboundMessage, _ string, r notify.Replier) error {
	d.reply(ctx, r, msg.SenderID, msgHelp)
	return nil
}

func (d *Dispatcher) startSprint(ctx context.Context, msg models.InboundMessage, args string, r notify.Replier) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return usageError(msgUsageStartSprint)
	}
	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return usageError(msgUsageStartSprint)
	}
	theme := strings.Join(fields[1:], " ")

	sp, err := d.svc.CreateSprint(ctx, msg.SenderID, days, theme, msg.ReceivedAt)
	if errors.Is(err, sprint.ErrInvalidDuration) || errors.Is(err, sprint.ErrEmptyTheme) {
		return usageError(msgUsageStartSprint)
	}
	if err != nil {
		return err
	}

	users, err := d.svc.KnownUsers(ctx)
	if err != nil {
		// the sprint exists; only the announcement is lost
		slog.Error("failed to load users for announcement", "sprint_id", sp.ID, "error", err)
		users = nil
	}
	announcement := fmt.Sprintf(msgSprintAnnounce, sp.ID, sp.Theme, sp.DurationDays, dayWord(sp.DurationDays))
	res := notify.Broadcast(ctx, r, users, announcement)

	d.reply(ctx, r, msg.SenderID, fmt.Sprintf(msgSprintStarted, sp.ID, res.Sent, len(users))+"\n"+msgHelpHint)
	return nil
}

func (d *Dispatcher) endSprint(ctx context.Context, msg models.InboundMessage, args string, r notify.Replier) error {
	id, ok := parseID(args)
	if !ok {
		return usageError(msgUsageEndSprint)
	}

	_, alreadyClosed, err := d.svc.CloseSprint(ctx, msg.SenderID, id, msg.ReceivedAt)
	if err != nil {
		return err
	}

	text := fmt.Sprintf(msgSprintEnded, id)
	if alreadyClosed {
		text = fmt.Sprintf(msgSprintWasClosed, id)
	}
	d.reply(ctx, r, msg.SenderID, text+"\n"+msgHelpHint)
	return nil
}

func (d *Dispatcher) getWords(ctx context.Context, msg models.InboundMessage, args string, r notify.Replier) error {
	id, ok := parseID(args)
	if !ok {
		return usageError(msgUsageGetWords)
	}

	rows, err := d.svc.ExportWords(ctx, msg.SenderID, id)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		d.reply(ctx, r, msg.SenderID, fmt.Sprintf(msgNothingExport, id)+"\n"+msgHelpHint)
		return nil
	}

	data, err := report.CSV(rows)
	if err != nil {
		return err
	}
	if err := r.SendFile(ctx, msg.SenderID, report.ExportFilename(id), data); err != nil {
		return err
	}

	slog.Info("export sent", "sprint_id", id, "rows", len(rows), "admin", msg.SenderID)
	d.reply(ctx, r, msg.SenderID, fmt.Sprintf(msgWordsSent, id)+"\n"+msgHelpHint)
	return nil
}

func (d *Dispatcher) listSprints(ctx context.Context, msg models.InboundMessage, _ string, r notify.Replier) error {
	sprints, err := d.svc.ListAllSprints(ctx, msg.SenderID)
	if err != nil {
		return err
	}
	if len(sprints) == 0 {
		d.reply(ctx, r, msg.SenderID, msgNoSprints+"\n"+msgHelpHint)
		return nil
	}

	text := msgSprintsHeader + "\n" + report.FormatSprints(sprints, msg.ReceivedAt) + "\n\n" + msgHelpHint
	d.reply(ctx, r, msg.SenderID, text)
	return nil
}

func (d *Dispatcher) broadcast(ctx context.Context, msg models.InboundMessage, args string, r notify.Replier) error {
	if args == "" {
		return usageError(msgUsageBroadcast)
	}

	users, err := d.svc.KnownUsers(ctx)
	if err != nil {
		return err
	}
	res := notify.Broadcast(ctx, r, users, msgBroadcastPrefix+args)

	d.reply(ctx, r, msg.SenderID, fmt.Sprintf(msgBroadcastDone, res.Sent, len(users))+"\n"+msgHelpHint)
	return nil
}

func (d *Dispatcher) stats(ctx context.Context, msg models.InboundMessage, _ string, r notify.Replier) error {
	digest, err := d.svc.DailyDigest(ctx, msg.ReceivedAt)
	if err != nil {
		return err
	}
	d.reply(ctx, r, msg.SenderID, report.FormatDigest(digest))
	return nil
}

// Submissions

func (d *Dispatcher) submit(ctx context.Context, msg models.InboundMessage, r notify.Replier) {
	outcomes, err := d.svc.SubmitToActive(ctx, msg.SenderID, msg.Text, msg.ReceivedAt)

	var rejection *filter.Rejection
	switch {
	case errors.Is(err, sprint.ErrSprintNotActive):
		d.reply(ctx, r, msg.SenderID, msgNoActive)
		return
	case errors.As(err, &rejection):
		slog.Debug("submission rejected", "user_id", msg.SenderID, "kind", rejection.Kind.String())
		d.reply(ctx, r, msg.SenderID, rejection.Reason)
		return
	case err != nil:
		slog.Error("submission failed", "user_id", msg.SenderID, "error", err)
		// earlier sprints in the batch may have been accepted; report those first
		d.replyOutcomes(ctx, r, msg.SenderID, outcomes)
		d.reply(ctx, r, msg.SenderID, msgApology)
		return
	}

	d.replyOutcomes(ctx, r, msg.SenderID, outcomes)
}

func (d *Dispatcher) replyOutcomes(ctx context.Context, r notify.Replier, to int64, outcomes []sprint.Outcome) {
	for _, o := range outcomes {
		var text string
		switch {
		case o.Err == nil:
			text = fmt.Sprintf(msgAccepted, o.Sprint.ID)
		case errors.Is(o.Err, sprint.ErrDuplicateSubmission):
			text = fmt.Sprintf(msgDuplicate, o.Sprint.ID)
		default:
			text = fmt.Sprintf(msgClosed, o.Sprint.ID)
		}
		d.reply(ctx, r, to, text)
	}
}

// parseID reads a positive sprint id from the first argument.
func parseID(args string) (int64, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	return id, err == nil && id > 0
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
