package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ylck/marge-bot/internal/approvals"
	"github.com/ylck/marge-bot/internal/config"
	hostgitlab "github.com/ylck/marge-bot/internal/host/gitlab"
)

var version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "approvals":
		runApprovals(os.Args[2:])
	case "reapprove":
		runReapprove(os.Args[2:])
	case "version":
		fmt.Printf("marge-bot v%s\n", version)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: marge-bot <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  approvals  Print the approval state of a merge request")
	fmt.Println("  reapprove  Re-submit approvals as the recorded approvers")
	fmt.Println("  version    Print version information")
}

// mrFlags are the options shared by the merge-request commands.
type mrFlags struct {
	configPath string
	envFile    string
	project    int
	mr         int
}

func parseMRFlags(name string, args []string) *mrFlags {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	f := &mrFlags{}
	fs.StringVar(&f.configPath, "config", "config.yaml", "Path to config file")
	fs.StringVar(&f.envFile, "env-file", "", "Path to .env file (optional)")
	fs.IntVar(&f.project, "project", 0, "Project id")
	fs.IntVar(&f.mr, "mr", 0, "Merge request iid")
	fs.Parse(args)

	if f.project == 0 || f.mr == 0 {
		fmt.Println("Both -project and -mr are required")
		os.Exit(1)
	}

	// Load .env file if specified or exists
	if f.envFile != "" {
		if err := godotenv.Load(f.envFile); err != nil {
			logrus.Warnf("could not load env file %s: %v", f.envFile, err)
		}
	} else {
		// Try default locations
		godotenv.Load(".env")
		godotenv.Load("/etc/marge-bot/marge-bot.env")
	}

	return f
}

// newResolver wires a resolver for the merge request named by the flags.
func newResolver(ctx context.Context, f *mrFlags) (*approvals.Resolver, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogging(cfg)

	client := hostgitlab.New(cfg.GitLab.Token, hostgitlab.WithBaseURL(cfg.GitLab.URL))

	ref, err := client.MergeRequest(ctx, f.project, f.mr)
	if err != nil {
		return nil, err
	}

	project, err := config.LoadProjectConfig(ctx, client, f.project, cfg.Approvals.Branch)
	if err != nil {
		return nil, err
	}
	policy := config.MergePolicy(cfg, project)

	return approvals.NewResolver(client, ref, approvals.Policy{
		OwnersFile: policy.OwnersFile,
		Branch:     policy.Branch,
	}, nil), nil
}

func runApprovals(args []string) {
	f := parseMRFlags("approvals", args)
	ctx := context.Background()

	resolver, err := newResolver(ctx, f)
	if err != nil {
		logrus.Fatalf("Failed to set up resolver: %v", err)
	}

	state, err := resolver.Refetch(ctx)
	if err != nil {
		logrus.Fatalf("Failed to resolve approval state: %v", err)
	}

	out, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		logrus.Fatalf("Failed to encode approval state: %v", err)
	}
	fmt.Println(string(out))

	if !state.Sufficient() {
		os.Exit(2)
	}
}

func runReapprove(args []string) {
	f := parseMRFlags("reapprove", args)
	ctx := context.Background()

	resolver, err := newResolver(ctx, f)
	if err != nil {
		logrus.Fatalf("Failed to set up resolver: %v", err)
	}

	if _, err := resolver.Refetch(ctx); err != nil {
		logrus.Fatalf("Failed to resolve approval state: %v", err)
	}
	if err := resolver.Reapprove(ctx); err != nil {
		logrus.Fatalf("Failed to re-approve: %v", err)
	}
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
