package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fediwatch/trollhunter/hunter"
	"github.com/fediwatch/trollhunter/mastodon"
	"github.com/fediwatch/trollhunter/pkg/metrics"
	"github.com/fediwatch/trollhunter/pkg/robusthttp"
	"github.com/fediwatch/trollhunter/report"
	"github.com/fediwatch/trollhunter/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"
)

const (
	questionNickname = "Enter Mastodon nickname (username@instance.io): "
	questionToken    = "Enter your Mastodon API token (leave empty if you don't want to report): "
)

func runHunt(cctx *cli.Context) error {
	ctx := cctx.Context
	logger := configLogger(cctx, os.Stderr)

	shutdown := configOTEL("trollhunter")
	defer shutdown()

	defer func() {
		if err := metrics.WriteTextfile(cctx.String("metrics-textfile")); err != nil {
			logger.Error("failed to write metrics", "err", err)
		}
	}()

	host, err := util.NormalizeInstanceURL(cctx.String("instance"), mastodon.DefaultHost)
	if err != nil {
		return err
	}
	rules, err := loadRules(cctx, logger)
	if err != nil {
		return err
	}

	asJSON := cctx.Bool("json")
	prompter := newLinePrompter(os.Stdin, os.Stdout)

	nickname := strings.TrimSpace(cctx.Args().First())
	if nickname == "" {
		if asJSON || !stdinIsTerminal() {
			return fmt.Errorf("nickname argument required when not running interactively")
		}
		nickname, err = prompter.Ask(ctx, questionNickname)
		if err != nil {
			return fmt.Errorf("reading nickname: %w", err)
		}
		nickname = strings.TrimSpace(nickname)
	}
	if nickname == "" {
		return fmt.Errorf("no nickname given")
	}

	token := cctx.String("token")
	if !cctx.IsSet("token") && !asJSON && stdinIsTerminal() {
		token, err = prompter.Ask(ctx, questionToken)
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
	}

	client := mastodon.NewAPIClient(host)
	client.HTTPClient = robusthttp.NewClient(robusthttp.WithLogger(logger.With("subsystem", "RobustHTTPClient")))
	client.Logger = logger.With("subsystem", "mastodon")
	if limit := cctx.Float64("rate-limit"); limit > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(limit), 1)
	}

	eng := hunter.NewEngine(client, rules, logger)
	eng.StatusLimit = cctx.Int("max-posts")
	now := time.Now()
	eng.Now = func() time.Time { return now }

	res, err := eng.Aggregate(ctx, nickname)
	if err != nil {
		var nfe *mastodon.NotFoundError
		if errors.As(err, &nfe) {
			return fmt.Errorf("no account %q on %s", nfe.Nickname, host)
		}
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	var wf *report.Workflow
	if report.Enabled(token) {
		wf = &report.Workflow{
			Prompter: prompter,
			Filer:    &report.ClientFiler{Client: client.WithToken(strings.TrimSpace(token))},
			Logger:   logger.With("subsystem", "report"),
			Out:      os.Stdout,
		}
	}

	p := &printer{
		w:       os.Stdout,
		matcher: rules.ContentMatcher(),
		now:     now,
	}
	present(ctx, p, res, wf)

	if counts, err := metrics.CounterValues(prometheus.DefaultGatherer, "trollhunter_"); err != nil {
		logger.Warn("failed to gather run counters", "err", err)
	} else {
		logger.Info("run finished", "counters", counts)
	}
	return nil
}

// Prints the account, then every post worth showing with its flagged
// replies. When wf is non-nil, the report workflow runs for each flagged
// reply right after it is shown, in listing order.
func present(ctx context.Context, p *printer, res *hunter.Result, wf *report.Workflow) {
	p.account(&res.Account)

	p.println()
	p.println(postStyle.Render("=== Posts with Troll Replies ==="))
	for i := range res.Posts {
		post := &res.Posts[i]
		if !noteworthy(post) {
			continue
		}
		p.postHeader(post)
		for _, r := range post.FlaggedReplies() {
			p.reply(&r, post.CreatedAt)
			if wf != nil {
				out := wf.Run(ctx, report.Target{
					AccountID: r.Account.ID,
					Acct:      r.Account.Acct,
					StatusID:  r.ID,
				})
				// operator input is gone; keep listing without asking again
				if errors.Is(out.Err, io.EOF) {
					wf = nil
				}
			}
			p.separator()
		}
	}
	p.summary(res)
}
