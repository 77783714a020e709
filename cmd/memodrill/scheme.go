package main

import (
	"fmt"
	"os"

	"github.com/coolbeans/memodrill/pkg/memo"
	"github.com/spf13/cobra"
)

func schemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheme",
		Short: "Export or check lettering scheme files",
	}
	cmd.AddCommand(schemeExportCmd(a))
	cmd.AddCommand(schemeCheckCmd())
	return cmd
}

func schemeExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active scheme as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			data, err := memo.MarshalConfig(a.enc.Config())
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write scheme: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	return cmd
}

func schemeCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate scheme files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				cfg, err := memo.LoadConfigFile(path)
				if err == nil {
					_, err = memo.New(cfg)
				}
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scheme files are invalid", failed, len(args))
			}
			return nil
		},
	}
}
