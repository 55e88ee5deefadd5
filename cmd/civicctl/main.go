// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command civicctl runs single content mutations against the configured backend.
//
// Usage:
//
//	civicctl [-metrics] <command> [flags] [args]
//
// Commands:
//
//	faq-create     add an FAQ entry to an entity
//	links-replace  replace every social link of an entity
//	images-upload  upload image files to an entity gallery
//	image-delete   delete one gallery image
//	org-create     create an organization
//	refresh        refresh the cached queries of an entity (broadcast over Redis when configured)
//
// The exit status is 0 on success, 1 when the mutation failed and 2 on usage errors.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/civicdesk/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}

	code := run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
