package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"planet-randomizer/internal/auth"
	"planet-randomizer/internal/baseline"
	"planet-randomizer/internal/generator"
	"planet-randomizer/internal/science"
	"planet-randomizer/internal/shared/config"
	"planet-randomizer/internal/shared/logger"
)

func generateCmd() *cobra.Command {
	var (
		seed         int64
		baselinePath string
		format       string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one system and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			sys, err := generate(cfg, seed, baselinePath)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), sys, format)
		},
	}

	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "generation seed")
	cmd.Flags().StringVarP(&baselinePath, "baseline", "b", "", "baseline YAML file (default: GENERATOR_BASELINE_PATH or the stock Kerbol system)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func validateCmd() *cobra.Command {
	var (
		seed         int64
		count        int
		baselinePath string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Generate a range of seeds and check every result against the placement invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			cfg := config.Load()
			out := cmd.OutOrStdout()
			failed := 0

			for s := seed; s < seed+int64(count); s++ {
				sys, err := generate(cfg, s, baselinePath)
				if err != nil {
					failed++
					fmt.Fprintf(out, "seed %d: %v\n", s, err)
					continue
				}

				violations := sys.Validate(cfg.Generator.Tunables)
				if len(violations) == 0 {
					fmt.Fprintf(out, "seed %d: ok (%d bodies, %d forced)\n", s, len(sys.Bodies), sys.ForcedCount())
					continue
				}

				failed++
				fmt.Fprintf(out, "seed %d: %d violations\n", s, len(violations))
				for _, v := range violations {
					fmt.Fprintf(out, "  %s\n", v)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d seeds failed", failed, count)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "first seed")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of consecutive seeds")
	cmd.Flags().StringVarP(&baselinePath, "baseline", "b", "", "baseline YAML file")
	return cmd
}

func baselineCmd() *cobra.Command {
	var baselinePath string

	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Validate a baseline and print it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := resolveBaseline(config.Load(), baselinePath)
			if err != nil {
				return err
			}
			data, err := baseline.Marshal(b)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&baselinePath, "baseline", "b", "", "baseline YAML file (default: the stock Kerbol system)")
	return cmd
}

func tokenCmd() *cobra.Command {
	var subject, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a JWT for the server API using JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != auth.RoleAdmin && role != auth.RoleViewer {
				return fmt.Errorf("unknown role %q", role)
			}

			cfg := config.Load()
			issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
			if err != nil {
				return err
			}

			token, err := issuer.GenerateJWT(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().StringVar(&role, "role", auth.RoleAdmin, "token role: admin or viewer")
	return cmd
}

func resolveBaseline(cfg *config.Config, path string) (*baseline.Baseline, error) {
	if path == "" {
		path = cfg.Generator.BaselinePath
	}
	return baseline.Resolve(path)
}

func generate(cfg *config.Config, seed int64, baselinePath string) (*generator.System, error) {
	if err := cfg.Generator.Tunables.Validate(); err != nil {
		return nil, err
	}

	b, err := resolveBaseline(cfg, baselinePath)
	if err != nil {
		return nil, err
	}

	log := logger.New(os.Stderr, cfg.Logging)
	sys, err := generator.New(cfg.Generator.Tunables, seed, generator.WithLogger(log)).Generate(b)
	if err != nil {
		return nil, err
	}
	if err := science.Balance(sys); err != nil {
		return nil, err
	}
	return sys, nil
}

func write(w io.Writer, v any, format string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	switch format {
	case "json":
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		// Decode the JSON into a node tree so the YAML keeps the JSON field names and order.
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		blockStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q, want json or yaml", format)
	}
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
