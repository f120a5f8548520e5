package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fediwatch/trollhunter/hunter"
	"github.com/fediwatch/trollhunter/indicators"
	"github.com/fediwatch/trollhunter/indicators/keyword"
	"github.com/fediwatch/trollhunter/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
	"github.com/xlab/treeprint"
)

// characters of post or reply content shown before eliding
const previewLen = 1000

var (
	accountStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	postStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	replyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	indicatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	setStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	unsetStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type printer struct {
	w       io.Writer
	matcher *keyword.Matcher
	now     time.Time
}

func (p *printer) println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

func (p *printer) field(style lipgloss.Style, label string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", style.Render(label+":"), value)
}

// elides s after previewLen grapheme clusters
func preview(s string) string {
	g := uniseg.NewGraphemes(s)
	n := 0
	for g.Next() {
		if n == previewLen {
			from, _ := g.Positions()
			return s[:from] + "..."
		}
		n++
	}
	return s
}

// "2024-06-01", "12:00:00"; falls back to the raw value if it doesn't parse
func dateAndTime(s string) (string, string) {
	t, err := util.ParseTimestamp(s)
	if err != nil {
		return s, ""
	}
	t = t.UTC()
	return t.Format(time.DateOnly), t.Format(time.TimeOnly)
}

func (p *printer) lastActive(s string) string {
	if s == "" {
		return "never"
	}
	days, err := util.DaysSince(s, p.now)
	if err != nil {
		return fmt.Sprintf("%s (unknown)", s)
	}
	return fmt.Sprintf("%s (%d days ago)", s, days)
}

func (p *printer) indicators(list []indicators.Indicator) {
	for _, ind := range list {
		mark := unsetStyle.Render("❌")
		if ind.Value {
			mark = setStyle.Render("✅")
		}
		fmt.Fprintf(p.w, "  %s %s\n", indicatorStyle.Render(ind.Name+":"), mark)
	}
}

func (p *printer) account(a *hunter.AccountSnapshot) {
	p.println()
	p.println(accountStyle.Render("=== Account Information ==="))
	p.field(accountStyle, "Username", a.Username)
	p.field(accountStyle, "Display Name", a.DisplayName)
	p.field(accountStyle, "Created At", a.CreatedAt)
	p.field(accountStyle, "Followers", a.FollowersCount)
	p.field(accountStyle, "Following", a.FollowingCount)
	p.field(accountStyle, "Statuses", a.StatusesCount)
	p.field(accountStyle, "Last Active", p.lastActive(a.LastStatusAt))
	for _, f := range a.Fields {
		p.field(accountStyle, f.Name, f.Value)
	}
	p.println()
	p.println(indicatorStyle.Render("Troll Indicators:"))
	p.indicators(a.Indicators.Named())
}

// Whether the post has anything to show: flagged replies, or failures to annotate.
func noteworthy(post *hunter.PostSnapshot) bool {
	return post.ContextErr != nil || len(post.FlaggedReplies()) > 0 || len(post.UnanalyzableReplies()) > 0
}

func (p *printer) postHeader(post *hunter.PostSnapshot) {
	date, clock := dateAndTime(post.CreatedAt)
	p.println()
	p.field(postStyle, "Post ID", post.ID)
	p.field(postStyle, "Posted At", date)
	p.field(postStyle, "Time", clock)
	p.field(postStyle, "Replies Count", post.RepliesCount)
	p.field(postStyle, "Content", preview(post.Content))
	if post.ContextErr != nil {
		p.println(errorStyle.Render("Replies unavailable: " + post.ContextErr.Error()))
		return
	}
	for _, r := range post.UnanalyzableReplies() {
		p.println(errorStyle.Render(fmt.Sprintf("Reply %s by %s could not be analyzed: %v", r.ID, r.Account.Acct, r.IndicatorErr)))
	}
	if len(post.FlaggedReplies()) > 0 {
		p.println(replyStyle.Render("--- Replies with Troll Indicators ---"))
	}
}

func (p *printer) reply(r *hunter.ReplySnapshot, postCreatedAt string) {
	date, clock := dateAndTime(r.CreatedAt)
	diff := "unknown"
	if h, err := util.HoursBetween(postCreatedAt, r.CreatedAt); err == nil {
		diff = strconv.FormatFloat(h, 'f', 1, 64)
	}
	content := p.matcher.Highlight(preview(r.Content), func(s string) string {
		return keywordStyle.Render(s)
	})
	url := r.URL
	if url == "" {
		url = "No URL available"
	}
	acct := &r.Account

	p.field(replyStyle, "Reply ID", r.ID)
	fmt.Fprintf(p.w, "%s %s %s %s\n", replyStyle.Render("Posted At:"), date, replyStyle.Render("Time:"), clock)
	p.field(replyStyle, "Reply Time Difference to post", diff+" hours")
	p.field(replyStyle, "Content", content)
	p.field(replyStyle, "By", fmt.Sprintf("%s (%s)", acct.Acct, url))
	fmt.Fprintf(p.w, "%s %d  %s %d  %s %d\n",
		replyStyle.Render("Followers:"), acct.FollowersCount,
		replyStyle.Render("Following:"), acct.FollowingCount,
		replyStyle.Render("Statuses:"), acct.StatusesCount)
	p.field(replyStyle, "Last Active", p.lastActive(acct.LastStatusAt))
	p.println(indicatorStyle.Render("Troll Indicators:"))
	if acct.Indicators != nil {
		p.indicators(acct.Indicators.Named())
	}
}

func (p *printer) separator() {
	p.println(replyStyle.Render("---"))
}

// Compact overview: post -> flagged replies, and posts whose replies could not be fetched.
func (p *printer) summary(res *hunter.Result) {
	tree := treeprint.NewWithRoot(fmt.Sprintf("@%s", res.Account.Username))
	found := false
	for i := range res.Posts {
		post := &res.Posts[i]
		if post.ContextErr != nil {
			tree.AddNode(fmt.Sprintf("post %s (replies unavailable)", post.ID))
			found = true
			continue
		}
		flagged := post.FlaggedReplies()
		if len(flagged) == 0 {
			continue
		}
		found = true
		branch := tree.AddBranch(fmt.Sprintf("post %s", post.ID))
		for _, r := range flagged {
			branch.AddNode(fmt.Sprintf("reply %s by %s", r.ID, r.Account.Acct))
		}
	}
	p.println()
	if !found {
		p.println(postStyle.Render("No troll replies found."))
		return
	}
	p.println(postStyle.Render("=== Summary ==="))
	p.println(tree.String())
}
