package hunter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fediwatch/trollhunter/indicators"
	"github.com/fediwatch/trollhunter/mastodon"
	"github.com/fediwatch/trollhunter/pkg/metrics"
	"github.com/fediwatch/trollhunter/util"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hunter")

// Walks an account's recent posts and their reply trees, scoring the account
// and every replier. Requests are issued one at a time, in order.
type Engine struct {
	Logger *slog.Logger
	Client Fetcher
	Rules  *indicators.Rules
	// evaluation instant for age-based rules; defaults to time.Now
	Now func() time.Time
	// page size requested from the timeline endpoint; zero means server default
	StatusLimit int
}

func NewEngine(client Fetcher, rules *indicators.Rules, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Logger: logger,
		Client: client,
		Rules:  rules,
		Now:    time.Now,
	}
}

// Resolves the nickname, fetches its statuses and each status's replies, and
// computes indicators.
//
// Failures resolving the account, fetching its statuses, or analyzing the
// account itself are returned as errors and no partial result is produced.
// A failure fetching one post's replies is recorded on that post only.
func (eng *Engine) Aggregate(ctx context.Context, nickname string) (*Result, error) {
	start := time.Now()
	defer func() {
		aggregateDuration.Observe(time.Since(start).Seconds())
	}()

	ctx, span := tracer.Start(ctx, "Aggregate", trace.WithAttributes(attribute.String("nickname", nickname)))
	defer span.End()

	now := eng.now()
	logger := eng.Logger.With("nickname", nickname)

	raw, err := eng.lookupAccount(ctx, nickname)
	if err != nil {
		failSpan(span, err)
		return nil, fmt.Errorf("resolving account %s: %w", nickname, err)
	}
	logger = logger.With("accountID", raw.ID)

	statuses, err := eng.accountStatuses(ctx, raw.ID)
	if err != nil {
		failSpan(span, err)
		return nil, fmt.Errorf("fetching statuses of %s: %w", nickname, err)
	}

	account, err := eng.buildAccount(raw, now)
	if err != nil {
		failSpan(span, err)
		return nil, err
	}

	posts := make([]PostSnapshot, 0, len(statuses))
	for i := range statuses {
		posts = append(posts, eng.buildPost(ctx, logger, &statuses[i], now))
	}

	logger.Info("aggregated account", "posts", len(posts), "duration", time.Since(start))
	return &Result{
		Account: account,
		Posts:   posts,
	}, nil
}

func (eng *Engine) now() time.Time {
	if eng.Now == nil {
		return time.Now()
	}
	return eng.Now()
}

func (eng *Engine) lookupAccount(ctx context.Context, nickname string) (*mastodon.Account, error) {
	ctx, span := tracer.Start(ctx, "LookupAccount")
	defer span.End()

	acct, err := eng.Client.LookupAccount(ctx, nickname)
	if err == nil && (acct == nil || acct.ID == "") {
		err = &mastodon.NotFoundError{Nickname: nickname}
	}
	fetchCount.WithLabelValues("lookup", metrics.Status(err)).Inc()
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	return acct, nil
}

func (eng *Engine) accountStatuses(ctx context.Context, accountID string) ([]mastodon.Status, error) {
	ctx, span := tracer.Start(ctx, "AccountStatuses", trace.WithAttributes(attribute.String("accountID", accountID)))
	defer span.End()

	statuses, err := eng.Client.AccountStatuses(ctx, accountID, eng.StatusLimit)
	fetchCount.WithLabelValues("statuses", metrics.Status(err)).Inc()
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	return statuses, nil
}

func (eng *Engine) statusContext(ctx context.Context, statusID string) (*mastodon.Context, error) {
	ctx, span := tracer.Start(ctx, "StatusContext", trace.WithAttributes(attribute.String("statusID", statusID)))
	defer span.End()

	sctx, err := eng.Client.StatusContext(ctx, statusID)
	if err == nil && sctx == nil {
		err = fmt.Errorf("no context returned for status %s", statusID)
	}
	fetchCount.WithLabelValues("context", metrics.Status(err)).Inc()
	if err != nil {
		failSpan(span, err)
		return nil, err
	}
	return sctx, nil
}

func (eng *Engine) buildAccount(raw *mastodon.Account, now time.Time) (AccountSnapshot, error) {
	note := util.StripHTML(raw.Note)
	ind, err := eng.Rules.EvaluateAccount(indicators.AccountInput{
		ID:             raw.ID,
		Note:           note,
		CreatedAt:      raw.CreatedAt,
		FollowersCount: raw.FollowersCount,
		StatusesCount:  raw.StatusesCount,
	}, now)
	if err != nil {
		return AccountSnapshot{}, err
	}

	var fields []mastodon.Field
	for _, f := range raw.Fields {
		fields = append(fields, mastodon.Field{
			Name:       f.Name,
			Value:      util.StripHTML(f.Value),
			VerifiedAt: f.VerifiedAt,
		})
	}

	return AccountSnapshot{
		ID:             raw.ID,
		Username:       raw.Username,
		DisplayName:    raw.DisplayName,
		Note:           note,
		CreatedAt:      raw.CreatedAt,
		FollowersCount: raw.FollowersCount,
		FollowingCount: raw.FollowingCount,
		StatusesCount:  raw.StatusesCount,
		LastStatusAt:   raw.LastStatusAt,
		Fields:         fields,
		Indicators:     ind,
	}, nil
}

func (eng *Engine) buildPost(ctx context.Context, logger *slog.Logger, status *mastodon.Status, now time.Time) PostSnapshot {
	post := PostSnapshot{
		ID:              status.ID,
		CreatedAt:       status.CreatedAt,
		Content:         util.StripHTML(status.Content),
		URL:             status.URL,
		RepliesCount:    status.RepliesCount,
		ReblogsCount:    status.ReblogsCount,
		FavouritesCount: status.FavouritesCount,
		Replies:         []ReplySnapshot{},
	}

	sctx, err := eng.statusContext(ctx, status.ID)
	if err != nil {
		logger.Warn("failed to fetch reply context", "statusID", status.ID, "err", err)
		contextFailureCount.Inc()
		post.ContextErr = err
		post.Error = err.Error()
		return post
	}

	for i := range sctx.Descendants {
		post.Replies = append(post.Replies, eng.buildReply(logger, &sctx.Descendants[i], now))
	}
	return post
}

// builds the snapshot for one reply; indicators come only from this reply's own account and content
func (eng *Engine) buildReply(logger *slog.Logger, desc *mastodon.Status, now time.Time) ReplySnapshot {
	acct := desc.Account
	reply := ReplySnapshot{
		ID:        desc.ID,
		CreatedAt: desc.CreatedAt,
		Content:   util.StripHTML(desc.Content),
		URL:       desc.URL,
		Account: ReplyAccountSnapshot{
			ID:             acct.ID,
			Username:       acct.Username,
			Acct:           acct.Acct,
			DisplayName:    acct.DisplayName,
			CreatedAt:      acct.CreatedAt,
			FollowersCount: acct.FollowersCount,
			FollowingCount: acct.FollowingCount,
			StatusesCount:  acct.StatusesCount,
			LastStatusAt:   acct.LastStatusAt,
		},
	}

	ind, err := eng.Rules.EvaluateReply(indicators.ReplyInput{
		AccountID:      acct.ID,
		CreatedAt:      acct.CreatedAt,
		FollowersCount: acct.FollowersCount,
		StatusesCount:  acct.StatusesCount,
		Content:        reply.Content,
	}, now)
	if err != nil {
		logger.Warn("reply author unanalyzable", "replyID", desc.ID, "err", err)
		replyCount.WithLabelValues(metrics.StatusUnanalyzable).Inc()
		reply.IndicatorErr = err
		reply.Error = err.Error()
		return reply
	}
	reply.Account.Indicators = &ind
	if ind.Flagged() {
		replyCount.WithLabelValues("flagged").Inc()
	} else {
		replyCount.WithLabelValues("clean").Inc()
	}
	return reply
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
