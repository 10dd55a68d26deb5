package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"chat-sync/domain"
	"chat-sync/session"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var (
	selfStyle   = color.New(color.FgGreen, color.OpBold)
	otherStyle  = color.New(color.FgCyan, color.OpBold)
	systemStyle = color.New(color.FgGray)
	errorStyle  = color.New(color.FgRed)
	headerStyle = color.New(color.BgBlack, color.FgGreen)
)

const helpText = `/list                 conversations you belong to
/users                registered users
/new NAME [USER_ID..] create a conversation and open it
/join ID              join a conversation and open it
/open ID              open a conversation you belong to
/leave                leave the open conversation
/focus /blur          start or stop signalling that you type
/quit                 exit
anything else is sent as a message`

// renderer prints session changes and command results to the terminal.
type renderer struct {
	mu     sync.Mutex
	out    io.Writer
	self   domain.User
	typing string
}

func newRenderer(out io.Writer, self domain.User) *renderer {
	return &renderer{out: out, self: self}
}

func (r *renderer) Welcome(user domain.User) {
	r.println(headerStyle.Render(fmt.Sprintf("  ====== connected as %s (#%d) ======", user.DisplayName, user.ID)))
	r.println(systemStyle.Render("type /help for commands"))
}

func (r *renderer) Help() { r.println(helpText) }

func (r *renderer) Error(err error) {
	r.println(errorStyle.Render("error: " + err.Error()))
}

// OnChange is the session listener. It only prints.
func (r *renderer) OnChange(c session.Change) {
	switch c.Kind {
	case session.MessageAppended:
		if c.Message != nil {
			r.println(r.formatMessage(*c.Message))
		}
	case session.HistoryLoaded:
		r.println(systemStyle.Sprintf("-- history of conversation #%d loaded --", c.ConversationID))
	case session.AudienceChanged:
		r.println(systemStyle.Sprintf("-- audience: %s --", joinNames(c.Users)))
	case session.TypingChanged:
		r.typingChanged(c.Users)
	case session.StateChanged:
		r.println(systemStyle.Sprintf("-- conversation #%d is %s --", c.ConversationID, c.State))
	}
}

func (r *renderer) typingChanged(users []domain.User) {
	line := ""
	if len(users) > 0 {
		line = joinNames(users) + lo.Ternary(len(users) == 1, " is typing...", " are typing...")
	}
	r.mu.Lock()
	changed := line != r.typing
	r.typing = line
	r.mu.Unlock()
	if changed && line != "" {
		r.println(systemStyle.Render(line))
	}
}

func (r *renderer) formatMessage(m domain.Message) string {
	style := lo.Ternary(m.CreatorUser.SameAs(r.self), selfStyle, otherStyle)
	return fmt.Sprintf("[%s] %s %s", m.CreatedAt.Local().Format("15:04:05"),
		style.Render(m.CreatorUser.DisplayName+":"), m.Text)
}

func (r *renderer) Conversations(conversations []domain.Conversation) {
	table := r.table([]string{"ID", "Name", "Creator", "Created"})
	for _, c := range conversations {
		table.Append([]string{
			strconv.FormatInt(int64(c.ID), 10),
			c.Name,
			strconv.FormatInt(int64(c.CreatorID), 10),
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	r.render(table)
}

func (r *renderer) Users(users []domain.User) {
	table := r.table([]string{"ID", "Display Name", "Avatar"})
	for _, u := range users {
		table.Append([]string{strconv.FormatInt(int64(u.ID), 10), u.DisplayName, u.AvatarURL})
	}
	r.render(table)
}

func (r *renderer) table(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func (r *renderer) render(table *tablewriter.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table.Render()
}

func (r *renderer) println(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, s)
}

func joinNames(users []domain.User) string {
	if len(users) == 0 {
		return "nobody"
	}
	return strings.Join(lo.Map(users, func(u domain.User, _ int) string { return u.DisplayName }), ", ")
}
