// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/taibuivan/civicdesk/internal/core/content"
	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/core/organization"
	"github.com/taibuivan/civicdesk/internal/filemanager"
	"github.com/taibuivan/civicdesk/internal/mutation"
	"github.com/taibuivan/civicdesk/internal/platform/config"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
)

// errUsage marks argument errors; the usage text has already been printed.
var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, application *app, args []string) (bool, error)
}

var commands = []command{
	{"faq-create", "add an FAQ entry to an entity", runFAQCreate},
	{"links-replace", "replace every social link of an entity", runLinksReplace},
	{"images-upload", "upload image files to an entity gallery", runImagesUpload},
	{"image-delete", "delete one gallery image", runImageDelete},
	{"org-create", "create an organization", runOrgCreate},
	{"refresh", "refresh the cached queries of an entity", runRefresh},
	{"watch", "refetch an entity whenever another process refreshes it", runWatch},
}

/*
run parses the global flags, dispatches one command and maps its outcome to an exit status.

Parameters:
  - ctx: context.Context
  - cfg: *config.Config
  - args: []string (without the program name)
  - stdout, stderr: io.Writer

Returns:
  - int: exit status
*/
func run(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("civicctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	showMetrics := global.Bool(flagMetrics, false, "print mutation and cache counters after the command")
	global.Usage = func() { printUsage(stderr, global) }

	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		printUsage(stderr, global)
		return exitUsage
	}

	selected, found := findCommand(global.Arg(0))
	if !found {
		fmt.Fprintf(stderr, "unknown command %q\n", global.Arg(0))
		printUsage(stderr, global)
		return exitUsage
	}

	application, err := newApp(ctx, cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailed
	}
	defer application.close()

	ok, err := selected.run(ctx, application, global.Args()[1:])
	if errors.Is(err, errUsage) {
		return exitUsage
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailed
	}

	if *showMetrics {
		if err := printMetrics(stdout, application.recorder); err != nil {
			fmt.Fprintln(stderr, "error:", err)
		}
	}

	if !ok {
		return exitFailed
	}
	return exitOK
}

func findCommand(name string) (command, bool) {
	for _, candidate := range commands {
		if candidate.name == name {
			return candidate, true
		}
	}
	return command{}, false
}

func printUsage(writer io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(writer, "usage: civicctl [-metrics] <command> [flags] [args]")
	fmt.Fprintln(writer, "\ncommands:")
	for _, candidate := range commands {
		fmt.Fprintf(writer, "  %-14s %s\n", candidate.name, candidate.summary)
	}
	fmt.Fprintln(writer, "\nglobal flags:")
	global.PrintDefaults()
}

// # Flag Helpers

// entityFlags registers -kind and -id on set.
type entityFlags struct {
	kind string
	id   string
}

func (flags *entityFlags) register(set *flag.FlagSet) {
	set.StringVar(&flags.kind, "kind", string(entity.Organization), "entity kind: event, group or organization")
	set.StringVar(&flags.id, "id", "", "entity id")
}

func (flags *entityFlags) resolve() (entity.Kind, kindSupport, error) {
	kind, err := entity.Parse(flags.kind)
	if err != nil {
		return "", kindSupport{}, err
	}
	return kind, kinds[kind], nil
}

func parse(set *flag.FlagSet, args []string) error {
	if err := set.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func newFlagSet(name string, application *app) *flag.FlagSet {
	set := flag.NewFlagSet("civicctl "+name, flag.ContinueOnError)
	set.SetOutput(application.stderr)
	return set
}

// # Commands

func runFAQCreate(ctx context.Context, application *app, args []string) (bool, error) {
	set := newFlagSet("faq-create", application)
	target := entityFlags{}
	target.register(set)
	input := content.FAQInput{}
	set.StringVar(&input.Question, "question", "", "question text")
	set.StringVar(&input.Answer, "answer", "", "answer text")
	set.StringVar(&input.ISO, "iso", "en", "language code")
	set.BoolVar(&input.Primary, "primary", true, "mark as primary language entry")
	set.IntVar(&input.Order, "order", 0, "position within the entity")
	if err := parse(set, args); err != nil {
		return false, err
	}

	_, support, err := target.resolve()
	if err != nil {
		return false, err
	}

	mutations := support.faqs(mutation.NewRef(target.id), application.deps, support.service(application.client))
	if !mutations.CreateFAQ(ctx, input) {
		return false, nil
	}
	fmt.Fprintln(application.stdout, "faq created")
	return true, nil
}

// linkList collects repeated -link "url|label" flags.
type linkList []content.SocialLinkInput

func (links *linkList) String() string {
	parts := make([]string, 0, len(*links))
	for _, link := range *links {
		parts = append(parts, link.Link)
	}
	return strings.Join(parts, ",")
}

func (links *linkList) Set(value string) error {
	address, label, _ := strings.Cut(value, "|")
	*links = append(*links, content.SocialLinkInput{Link: address, Label: label, Order: len(*links)})
	return nil
}

func runLinksReplace(ctx context.Context, application *app, args []string) (bool, error) {
	set := newFlagSet("links-replace", application)
	target := entityFlags{}
	target.register(set)
	links := linkList{}
	set.Var(&links, "link", `social link as "url|label" (repeatable; none clears the list)`)
	if err := parse(set, args); err != nil {
		return false, err
	}

	_, support, err := target.resolve()
	if err != nil {
		return false, err
	}

	mutations := support.links(mutation.NewRef(target.id), application.deps, support.service(application.client))
	if !mutations.ReplaceAllLinks(ctx, links) {
		return false, nil
	}
	fmt.Fprintf(application.stdout, "%d social links saved\n", len(links))
	return true, nil
}

func runImagesUpload(ctx context.Context, application *app, args []string) (bool, error) {
	set := newFlagSet("images-upload", application)
	target := entityFlags{}
	target.register(set)
	if err := parse(set, args); err != nil {
		return false, err
	}

	_, support, err := target.resolve()
	if err != nil {
		return false, err
	}

	manager := filemanager.New(target.id, filemanager.Dependencies{
		Mutation:     application.deps,
		Service:      support.service(application.client),
		ImagesKey:    support.imagesKey,
		Placeholders: application.cfg.PlaceholderImages,
	})
	defer manager.Close()

	for _, path := range set.Args() {
		file, err := content.FileFromPath(path)
		if err != nil {
			return false, err
		}
		if manager.AddFiles(file) == 0 {
			fmt.Fprintf(application.stdout, "skipped %s (%s)\n", path, file.Type)
		}
	}
	if len(manager.Files()) == 0 {
		return false, errors.New("no JPEG or PNG files to upload")
	}

	images, ok := manager.Upload(ctx, target.id)
	if !ok {
		return false, nil
	}
	for _, image := range images {
		fmt.Fprintf(application.stdout, "%s %s\n", image.ID, image.FileObject)
	}
	return true, nil
}

func runImageDelete(ctx context.Context, application *app, args []string) (bool, error) {
	set := newFlagSet("image-delete", application)
	target := entityFlags{}
	target.register(set)
	imageID := set.String("image", "", "image id")
	if err := parse(set, args); err != nil {
		return false, err
	}

	_, support, err := target.resolve()
	if err != nil {
		return false, err
	}

	manager := filemanager.New(target.id, filemanager.Dependencies{
		Mutation:  application.deps,
		Service:   support.service(application.client),
		ImagesKey: support.imagesKey,
	})
	defer manager.Close()

	if !manager.DeleteImage(ctx, *imageID) {
		return false, nil
	}
	fmt.Fprintln(application.stdout, "image deleted")
	return true, nil
}

func runOrgCreate(ctx context.Context, application *app, args []string) (bool, error) {
	set := newFlagSet("org-create", application)
	input := organization.CreateInput{}
	set.StringVar(&input.Name, "name", "", "organization name")
	set.StringVar(&input.Tagline, "tagline", "", "short tagline")
	set.StringVar(&input.Location, "location", "", "location")
	if err := parse(set, args); err != nil {
		return false, err
	}

	mutations := organization.NewMutations(application.deps, organization.NewService(application.client))
	created, ok := mutations.Create(ctx, input)
	if !ok {
		return false, nil
	}
	fmt.Fprintln(application.stdout, created.ID)
	return true, nil
}

func runRefresh(ctx context.Context, application *app, args []string) (bool, error) {
	set := newFlagSet("refresh", application)
	target := entityFlags{}
	target.register(set)
	if err := parse(set, args); err != nil {
		return false, err
	}

	_, support, err := target.resolve()
	if err != nil {
		return false, err
	}
	if target.id == "" {
		return false, errors.New("-id is required")
	}

	// Nothing is cached in this process; the refresh only matters to bus subscribers.
	runner := mutation.NewRunner(mutation.NewRef(target.id), application.deps)
	if err := runner.Refresh(ctx, support.detailKey, support.imagesKey); err != nil {
		return false, err
	}
	fmt.Fprintln(application.stdout, "refreshed")
	return true, nil
}

/*
runWatch loads the queries of one entity and refetches them whenever another
process publishes a refresh on the Redis bus.

Flags:
  - -count: stop after this many refreshes (0 runs until interrupted)
*/
func runWatch(ctx context.Context, application *app, args []string) (bool, error) {
	set := newFlagSet("watch", application)
	target := entityFlags{}
	target.register(set)
	count := set.Int("count", 0, "stop after this many refreshes (0 runs until interrupted)")
	if err := parse(set, args); err != nil {
		return false, err
	}

	_, support, err := target.resolve()
	if err != nil {
		return false, err
	}
	if target.id == "" {
		return false, errors.New("-id is required")
	}
	if application.cfg.RedisURL == "" {
		return false, errors.New("watch needs CIVIC_REDIS_URL")
	}

	if err := support.load(ctx, application.cache, support.service(application.client), target.id); err != nil {
		return false, err
	}

	keys := []querycache.Key{support.detailKey(target.id)}
	if images := support.imagesKey(target.id); images != keys[0] {
		keys = append(keys, images)
	}

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()

	// Subscribers run on the Listen goroutine, so seen needs no lock.
	seen := 0
	for _, key := range keys {
		unsubscribe := application.cache.Subscribe(key, func(_ any, err error) {
			if err != nil {
				fmt.Fprintf(application.stderr, "refresh failed %s: %v\n", key, err)
			} else {
				fmt.Fprintf(application.stdout, "refreshed %s\n", key)
			}
			seen++
			if *count > 0 && seen >= *count {
				stop()
			}
		})
		defer unsubscribe()
	}

	fmt.Fprintf(application.stdout, "watching %d queries of %s\n", len(keys), target.id)
	if err := application.cache.Listen(watchCtx); err != nil {
		return false, err
	}
	return true, nil
}
