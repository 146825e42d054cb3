// Cinematch - Hybrid Content and Collaborative Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Command demo prints content, collaborative and hybrid recommendations for
// one user of the built-in demo catalog, or of a catalog file.
//
//	demo                               # user 101 of the demo catalog
//	demo -dataset catalog.yaml -user 7 -weight 0.8
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/dataset"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

type options struct {
	datasetPath string
	userID      int
	k           int
	hybridK     int
	weight      float64
}

func main() {
	opts := options{}
	flag.StringVar(&opts.datasetPath, "dataset", "", "catalog file (YAML or JSON); empty uses the demo catalog")
	flag.IntVar(&opts.userID, "user", 101, "user to recommend for")
	flag.IntVar(&opts.k, "k", 3, "content and collaborative list length")
	flag.IntVar(&opts.hybridK, "hybrid-k", 5, "hybrid list length")
	flag.Float64Var(&opts.weight, "weight", 0.6, "hybrid content weight in [0, 1]")
	flag.Parse()

	if err := run(os.Stdout, opts, zerolog.Nop()); err != nil {
		logging.Fatal().Err(err).Msg("demo failed")
	}
}

//nolint:gocritic // zerolog.Logger is passed by value
func run(w io.Writer, opts options, logger zerolog.Logger) error {
	ds := dataset.Demo()
	if opts.datasetPath != "" {
		loaded, err := dataset.Load(opts.datasetPath)
		if err != nil {
			return err
		}
		ds = loaded
	}

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), ds.Items, ds.Users(), logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	content, err := engine.RecommendContent(opts.userID, opts.k)
	if err != nil {
		return err
	}
	collaborative, err := engine.RecommendCollaborative(opts.userID, opts.k)
	if err != nil {
		return err
	}
	hybrid, err := engine.RecommendHybrid(opts.userID, opts.hybridK, opts.weight)
	if err != nil {
		return err
	}

	printList(w, fmt.Sprintf("Content-based recommendations for user %d:", opts.userID), content)
	fmt.Fprintln(w)
	printList(w, fmt.Sprintf("Collaborative recommendations for user %d:", opts.userID), collaborative)
	fmt.Fprintln(w)
	printList(w, fmt.Sprintf("Hybrid recommendations (%.1f content weight) for user %d:", opts.weight, opts.userID), hybrid)
	return nil
}

func printList(w io.Writer, header string, items []recommend.ScoredItem) {
	fmt.Fprintln(w, header)
	for _, s := range items {
		fmt.Fprintf(w, " - %d: %s\n", s.Item.ID, s.Item.Title)
	}
}
