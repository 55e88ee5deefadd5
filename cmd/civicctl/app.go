// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/core/event"
	"github.com/taibuivan/civicdesk/internal/core/group"
	"github.com/taibuivan/civicdesk/internal/core/organization"
	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/config"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/credential"
	"github.com/taibuivan/civicdesk/internal/platform/httpclient"
	"github.com/taibuivan/civicdesk/internal/platform/metrics"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
	redisstore "github.com/taibuivan/civicdesk/internal/platform/redis"
	"github.com/taibuivan/civicdesk/internal/platform/toast"
)

const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	appSuffix   = "-ctl"
	flagMetrics = "metrics"
)

// # Wiring

// app holds the collaborators shared by every command.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *httpclient.Client
	cache    *querycache.Cache
	recorder *metrics.Recorder
	deps     mutation.Dependencies
	redis    *goredis.Client
	stdout   io.Writer
	stderr   io.Writer
}

/*
newApp builds the transport, cache and mutation dependencies from cfg.

Parameters:
  - ctx: context.Context (bounds the Redis connection)
  - cfg: *config.Config
  - stdout, stderr: io.Writer (logs and toasts go to stderr)

Returns:
  - *app: ready to run commands; close it when done
  - error: invalid backend URL or unreachable Redis
*/
func newApp(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (*app, error) {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName+appSuffix))

	client, err := httpclient.New(httpclient.Options{
		BaseURL:        cfg.BackendURL,
		Timeout:        cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Credentials:    credential.Expiring{Source: credential.FromSettings(cfg.AccessToken, cfg.TokenFile)},
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewRecorder(false)
	application := &app{cfg: cfg, logger: logger, client: client, recorder: recorder, stdout: stdout, stderr: stderr}

	var bus querycache.Bus
	if cfg.RedisURL != "" {
		application.redis, err = redisstore.NewClient(ctx, cfg.RedisURL, logger)
		if err != nil {
			return nil, err
		}
		bus = querycache.NewRedisBus(application.redis, cfg.RedisChannel)
	}

	application.cache = querycache.New(querycache.Options{Bus: bus, Observer: recorder, Logger: logger})
	application.deps = mutation.Dependencies{
		Cache:    application.cache,
		Notifier: toast.Multi{toast.NewLogNotifier(logger), writerNotifier{writer: stderr}},
		Observer: recorder,
		Logger:   logger,
	}
	return application, nil
}

func (application *app) close() {
	if application.redis != nil {
		if err := application.redis.Close(); err != nil {
			application.logger.Warn("redis_close_error", slog.Any("error", err))
		}
	}
}

// # Per-Kind Bindings

// kindSupport collects the constructors of one entity package.
type kindSupport struct {
	service   func(*httpclient.Client) *content.Service
	faqs      func(*mutation.Ref, mutation.Dependencies, content.FAQService) *content.FAQMutations
	links     func(*mutation.Ref, mutation.Dependencies, content.SocialLinkService) *content.SocialLinkMutations
	detailKey querycache.KeyFunc
	// imagesKey is the query holding the gallery; events only have their detail.
	imagesKey querycache.KeyFunc
	// load reads every query of one entity into the cache.
	load func(context.Context, *querycache.Cache, *content.Service, string) error
}

var kinds = map[entity.Kind]kindSupport{
	entity.Event: {
		service: event.NewService, faqs: event.NewFAQMutations, links: event.NewSocialLinkMutations,
		detailKey: event.DetailKey, imagesKey: event.DetailKey, load: loadEvent,
	},
	entity.Group: {
		service: group.NewService, faqs: group.NewFAQMutations, links: group.NewSocialLinkMutations,
		detailKey: group.DetailKey, imagesKey: group.ImagesKey, load: loadGroup,
	},
	entity.Organization: {
		service: organization.NewContentService, faqs: organization.NewFAQMutations, links: organization.NewSocialLinkMutations,
		detailKey: organization.DetailKey, imagesKey: organization.ImagesKey, load: loadOrganization,
	},
}

func loadEvent(ctx context.Context, cache *querycache.Cache, service *content.Service, id string) error {
	_, err := event.Get(ctx, cache, service, id)
	return err
}

func loadGroup(ctx context.Context, cache *querycache.Cache, service *content.Service, id string) error {
	if _, err := group.Get(ctx, cache, service, id); err != nil {
		return err
	}
	_, err := group.GetImages(ctx, cache, service, id)
	return err
}

func loadOrganization(ctx context.Context, cache *querycache.Cache, service *content.Service, id string) error {
	if _, err := organization.Get(ctx, cache, service, id); err != nil {
		return err
	}
	_, err := organization.GetImages(ctx, cache, service, id)
	return err
}

// # Output

// writerNotifier prints toasts for the person at the terminal.
type writerNotifier struct {
	writer io.Writer
}

func (notifier writerNotifier) Error(_ context.Context, message string) {
	fmt.Fprintln(notifier.writer, "error:", message)
}

func (notifier writerNotifier) Success(_ context.Context, message string) {
	fmt.Fprintln(notifier.writer, message)
}

// printMetrics writes the counters of the run in "name{labels} value" form.
func printMetrics(writer io.Writer, recorder *metrics.Recorder) error {
	families, err := recorder.Registry().Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			value, ok := sampleValue(family.GetType(), metric)
			if !ok {
				continue
			}
			fmt.Fprintf(writer, "%s%s %g\n", family.GetName(), formatLabels(metric.GetLabel()), value)
		}
	}
	return nil
}

func sampleValue(kind dto.MetricType, metric *dto.Metric) (float64, bool) {
	switch kind {
	case dto.MetricType_COUNTER:
		return metric.GetCounter().GetValue(), true
	case dto.MetricType_GAUGE:
		return metric.GetGauge().GetValue(), true
	case dto.MetricType_HISTOGRAM:
		return float64(metric.GetHistogram().GetSampleCount()), true
	}
	return 0, false
}

func formatLabels(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(labels))
	for _, label := range labels {
		pairs = append(pairs, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
	}
	sort.Strings(pairs)
	return "{" + strings.Join(pairs, ",") + "}"
}
