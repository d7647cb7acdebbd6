// Copyright 2025 The WordGram Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordgram completion server and one-shot CLI.

WordGram trains a character n-gram model on a plain text corpus at startup and
predicts word completions with a pruned beam search. It can run as a MessagePack
IPC server for editors and other processes, or answer a single query and exit.

# Usage

Start the server on the corpus directory from the config:

	wordgram

Train a trigram model on a single file with debug logs:

	wordgram -corpus books/alice.txt -n 3 -d

Complete one prefix and exit:

	wordgram -p th -limit 5

Score one word and exit:

	wordgram -score then

# Corpus

The corpus is a .txt or .md file, or a directory of them. Relative paths are
looked up in the working directory, next to the executable and in the config
directory. Text is normalized before training: non ASCII, punctuation and digits
are dropped, whitespace is collapsed and everything is lowercased.

# Configuration

The config file is created with defaults if it doesn't exist:

	[model]
	n = 2
	max_rounds = 20
	min_probability = 1e-6
	fallback_probability = 0.0001
	partial_fallback = true

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[corpus]
	path = "corpus/"

	[cli]
	default_limit = 10

Flags override the file for the current run only.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, see package server:

	{"id": "req1", "p": "th", "l": 5}
	{"id": "req1", "s": [{"w": "the", "r": 1, "p": 0.41}], "c": 1, "t": 87}

# Command Line Flags

	-corpus string
	    Corpus file or directory (default from config)
	-config string
	    Path to a config file
	-n int
	    N-gram order (default from config)
	-p string
	    Complete a single prefix and exit
	-score string
	    Print the probability of a single word and exit
	-limit int
	    Number of suggestions to return (default from config)
	-json
	    Print one-shot query results as JSON
	-d  Enable debug mode with detailed logging
	-version
	    Show current version
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordgram/internal/cli"
	"github.com/bastiangx/wordgram/internal/logger"
	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/bastiangx/wordgram/pkg/config"
	"github.com/bastiangx/wordgram/pkg/corpus"
	"github.com/bastiangx/wordgram/pkg/ngram"
	"github.com/bastiangx/wordgram/pkg/server"
	"github.com/bastiangx/wordgram/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordgram"
	gh      = "https://github.com/bastiangx/wordgram"

	hotCacheSize = 512
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, corpus, model and the selected front end together.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	corpusPath := flag.String("corpus", "", "Corpus file or directory (default from config)")
	configPath := flag.String("config", "", "Path to a config file")
	order := flag.Int("n", 0, "N-gram order (default from config)")
	prefix := flag.String("p", "", "Complete a single prefix and exit")
	scoreWord := flag.String("score", "", "Print the probability of a single word and exit")
	limit := flag.Int("limit", 0, "Number of suggestions to return (default from config)")
	jsonOutput := flag.Bool("json", false, "Print one-shot query results as JSON")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(usedConfig))

	if *order != 0 {
		cfg.Model.N = *order
	}
	if *corpusPath == "" {
		*corpusPath = cfg.Corpus.Path
	}

	text, resolvedCorpus := loadCorpus(*corpusPath)
	model := ngram.New(text, cfg.ModelOptions())
	completer := suggest.NewCachedCompleter(model, hotCacheSize)

	if *prefix != "" || *scoreWord != "" {
		n := *limit
		if n <= 0 {
			n = cfg.CLI.DefaultLimit
		}
		query := cli.NewQueryHandler(completer, os.Stdout,
			cfg.Server.MinPrefix, cfg.Server.MaxPrefix, n, !cfg.Server.EnableFilter)
		query.SetJSON(*jsonOutput)

		if *prefix != "" {
			err = query.Complete(*prefix)
		} else {
			err = query.Score(*scoreWord)
		}
		if err != nil {
			log.Fatalf("Query failed: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewStdioServer(completer, cfg)
	showStartupInfo(resolvedCorpus, model)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadCorpus resolves and reads the corpus. A missing corpus is not fatal:
// the model is trained on nothing and every query comes back empty.
func loadCorpus(userPath string) (string, string) {
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	resolved, err := pathResolver.ResolveCorpusPath(userPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("Corpus not found at %s, running with an empty model...", resolved)
		return "", resolved
	}

	text, err := corpus.Load(resolved)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	log.Debugf("Loaded corpus from %s (%d bytes)", resolved, len(text))
	return text, resolved
}

func printVersion() {
	versionLogger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	versionLogger.SetStyles(styles)

	versionLogger.Print("")
	versionLogger.Print("[ WordGram ] Character n-gram word completions")
	versionLogger.Print("", "version", Version)
	versionLogger.Print("")
	versionLogger.Print("use -h or --help to see available options")
	versionLogger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the model on stderr.
func showStartupInfo(corpusPath string, model *ngram.Model) {
	stats := model.Stats()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("==========")
	println(" WordGram ")
	println("==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("corpus: ( %s )", corpusPath)
	log.Info("model", "n", stats["n"], "contexts", stats["contexts"], "vocabulary", stats["vocabulary"])
	log.Info("status: ready")
	println("==========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
