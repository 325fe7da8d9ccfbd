package main

import (
	"context"
	"io"

	"github.com/mzaleski/proofcheck"
	"github.com/mzaleski/proofcheck/sqlite"
	"github.com/mzaleski/proofcheck/verify"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	References proofcheck.ReferenceService
	Fetcher    proofcheck.Fetcher
	Extractor  proofcheck.Extractor
	Converter  proofcheck.Converter
	Verifier   *verify.Verifier
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Add    AddCmd    `cmd:"" help:"Add a reference approval document from a file or URL"`
	List   ListCmd   `cmd:"" help:"List stored reference documents"`
	Show   ShowCmd   `cmd:"" help:"Show a reference document's content"`
	Delete DeleteCmd `cmd:"" help:"Delete a reference document"`
	Verify VerifyCmd `cmd:"" help:"Verify marketing email pages against a reference document"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name   string `arg:"" help:"Reference name"`
	Source string `arg:"" help:"File path or URL of the approval document"`
	Force  bool   `short:"f" help:"Replace content of an existing reference"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name string `arg:"" help:"Reference name"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Reference name"`
	Force bool   `help:"Confirm deletion"`
}

// VerifyCmd is the "verify" subcommand.
type VerifyCmd struct {
	Reference   string   `arg:"" help:"Reference name"`
	URLs        []string `arg:"" help:"Email page URLs to verify"`
	Config      string   `short:"c" help:"Path to a JSON comparison rules file"`
	JSON        bool     `help:"Print full reports as JSON"`
	Mock        bool     `help:"Run the semantic layer in mock mode without calling Gemini"`
	Concurrency int      `default:"4" help:"Concurrent verification limit"`
	RPS         float64  `name:"rps" default:"2" help:"Per-domain fetch rate limit"`
}
