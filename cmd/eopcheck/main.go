package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Debug flags for dumping what the parser saw
var (
	dExpr  bool
	dNames bool
)

// Parser options
var (
	maxDepth      int
	keywordFlags  []string
	nestedMembers bool
)

// Driver options
var (
	jobs       int
	configPath string
	watchMode  bool
	verbose    bool
)

// ErrCheckFailed indicates at least one input did not parse
var ErrCheckFailed = errors.New("check failed")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "eopcheck: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eopcheck [file...]",
		Short: "eopcheck checks the syntax of expression language sources",
		Long: `eopcheck parses each file as a translation unit of the expression
language and reports the first syntax error in each. With --dexpr it
prints the postfix stack of every expression it accepted.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}

			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}

			if watchMode {
				return watchFiles(cmd.Context(), args, opts, out, errOut)
			}
			return checkFiles(cmd.Context(), args, opts, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dExpr, "dexpr", false, "Dump the postfix stack of each expression")
	rootCmd.Flags().BoolVar(&dNames, "dnames", false, "Dump the declared names")

	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 1000, "Maximum nesting depth, 0 for no limit")
	rootCmd.Flags().StringArrayVar(&keywordFlags, "keyword", nil, "Reserve an additional keyword")
	rootCmd.Flags().BoolVar(&nestedMembers, "nested-members", false, "Accept friend, member template and nested struct members")

	rootCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Number of files to check in parallel")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Read settings from a YAML file")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "Re-check files when they change")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Report every file checked")

	return rootCmd
}

// resolveOptions merges the config file, if any, with the flags. Flags
// given on the command line win.
func resolveOptions(cmd *cobra.Command) (options, error) {
	opts := options{
		MaxDepth:      maxDepth,
		Keywords:      keywordFlags,
		NestedMembers: nestedMembers,
		Jobs:          jobs,
		DumpExpr:      dExpr,
		DumpNames:     dNames,
		Verbose:       verbose,
	}
	if configPath == "" {
		return opts, nil
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return opts, err
	}
	if err := cfg.checkVersion(version); err != nil {
		return opts, err
	}

	flags := cmd.Flags()
	if cfg.MaxDepth != nil && !flags.Changed("max-depth") {
		opts.MaxDepth = *cfg.MaxDepth
	}
	if !flags.Changed("nested-members") {
		opts.NestedMembers = cfg.NestedMembers
	}
	if cfg.Jobs > 0 && !flags.Changed("jobs") {
		opts.Jobs = cfg.Jobs
	}
	opts.Keywords = append(append([]string(nil), cfg.Keywords...), keywordFlags...)
	return opts, nil
}
