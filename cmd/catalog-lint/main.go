// Suadeo - Event Recommendation Engine for Messaging Bots
// Copyright 2026 The Suadeo Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/suadeo-dev/suadeo

// Package main is the catalog-lint tool.
//
// catalog-lint validates a cluster catalog JSON file the way the engine
// loads it at startup: all-or-nothing parsing, struct validation, unique
// cluster names, and at least one embeddable tag per cluster. It also
// reports how each cluster's age range text parses, since unparseable
// ranges silently opt the cluster out of age filtering.
//
// Usage:
//
//	catalog-lint -file clusters.json
//
// The exit code is 0 for a valid catalog and 1 otherwise, so the tool fits
// CI pipelines that gate catalog changes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suadeo-dev/suadeo/internal/catalog"
	"github.com/suadeo-dev/suadeo/internal/logging"
)

func main() {
	file := flag.String("file", "clusters.json", "path to the cluster catalog JSON file")
	verbose := flag.Bool("verbose", false, "print per-cluster details")
	flag.Parse()

	logging.Init(logging.Config{Level: "warn", Format: "console"})

	clusters, err := catalog.Load(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-lint: %v\n", err)
		os.Exit(1)
	}

	unparseable := 0
	for _, c := range clusters {
		lo, hi, ok := catalog.ParseAgeRange(c.AgeRange)
		if !ok {
			unparseable++
		}
		if *verbose {
			if ok {
				fmt.Printf("%-30s ages %d-%d  tags %q\n", c.Name, lo, hi, c.EmbeddingText())
			} else {
				fmt.Printf("%-30s ages ?-?  (unparseable %q)  tags %q\n", c.Name, c.AgeRange, c.EmbeddingText())
			}
		}
	}

	fmt.Printf("%s: %d clusters, %d with unparseable age ranges\n", *file, len(clusters), unparseable)
	if unparseable > 0 {
		fmt.Println("note: clusters with unparseable age ranges are never excluded by age filtering")
	}
}
