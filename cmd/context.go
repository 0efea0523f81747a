package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	avcfg "airvend/internal/config"
)

func newContextCmd() *cobra.Command {
	ctx := &cobra.Command{Use: "context", Short: "Manage CLI contexts (platform base URLs)"}
	ctx.AddCommand(newContextInitCmd())
	ctx.AddCommand(newContextListCmd())
	ctx.AddCommand(newContextUseCmd())
	ctx.AddCommand(newContextShowCmd())
	ctx.AddCommand(newContextSetURLCmd())
	return ctx
}

func newContextInitCmd() *cobra.Command {
	return &cobra.Command{Use: "init", Short: "Create default config with the local platform URL", RunE: func(cmd *cobra.Command, args []string) error {
		path, err := avcfg.ConfigPath()
		if err != nil {
			return err
		}
		if err := avcfg.Save(avcfg.DefaultConfig(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized config at %s\n", path)
		return nil
	}}
}

func newContextListCmd() *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List contexts", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := avcfg.Load()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(cfg.Contexts))
		for name := range cfg.Contexts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cur := " "
			if name == cfg.Current {
				cur = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cur, name)
		}
		return nil
	}}
}

func newContextUseCmd() *cobra.Command {
	return &cobra.Command{Use: "use <name>", Short: "Switch current context", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := avcfg.Load()
		if err != nil {
			return err
		}
		if _, err := avcfg.RequireContext(cfg, args[0]); err != nil {
			return err
		}
		cfg.Current = args[0]
		if err := avcfg.Save(cfg, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Now using context %q\n", args[0])
		return nil
	}}
}

func newContextShowCmd() *cobra.Command {
	return &cobra.Command{Use: "show [name]", Short: "Show context details", Args: cobra.RangeArgs(0, 1), RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := avcfg.Load()
		if err != nil {
			return err
		}
		name := cfg.Current
		if len(args) == 1 {
			name = args[0]
		}
		c, err := avcfg.RequireContext(cfg, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Context: %s\n", name)
		fmt.Fprintf(cmd.OutOrStdout(), "  base_url: %s\n", c.BaseURL)
		return nil
	}}
}

func newContextSetURLCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{Use: "set-url <url>", Short: "Set the platform base URL for a context", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := avcfg.Load()
		if err != nil {
			return err
		}
		if name == "" {
			name = cfg.Current
		}
		c, ok := cfg.Contexts[name]
		if !ok {
			c = avcfg.Context{Name: name}
		}
		c.BaseURL = args[0]
		cfg.Contexts[name] = c
		if err := avcfg.Save(cfg, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Context %q now points at %s\n", name, args[0])
		return nil
	}}
	cmd.Flags().StringVar(&name, "name", "", "context to update (default: current)")
	return cmd
}
