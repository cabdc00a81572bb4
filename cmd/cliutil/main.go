package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/hatsunemiku3939/cliutil"
	"github.com/hatsunemiku3939/cliutil/config"
	"github.com/hatsunemiku3939/cliutil/internal/appsclient"
	"github.com/hatsunemiku3939/cliutil/pkg/jsonschema"
	"github.com/hatsunemiku3939/cliutil/source"
)

var (
	// errReported means the command already printed its findings; only the
	// exit status remains to be set.
	errReported = errors.New("reported")
	errUsage    = errors.New("usage")
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := newCommand(stdout, stderr).Run(ctx, args)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errReported):
		return 1
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, err)
		return 2
	default:
		fmt.Fprintln(stderr, err)
		return 1
	}
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	var cfg config.Config

	cmd := &cli.Command{
		Name:      "cliutil",
		Usage:     "JSON validation and rendering helpers for the cluster CLI",
		Writer:    stdout,
		ErrWriter: stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {
			// run maps errors to exit codes.
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Sources: cli.EnvVars("CLIUTIL_CONFIG", "DCOS_CONFIG"),
				Usage:   "Optional YAML settings file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "One of debug, info, warning, error, critical (overrides DCOS_LOG_LEVEL)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			loaded, err := config.Load(c.String("config"))
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if c.IsSet("log-level") {
				loaded.LogLevel = c.String("log-level")
			}
			logger, err := cliutil.ConfigureLogger(stderr, loaded.LogLevel)
			if err != nil {
				return ctx, err
			}
			cfg = loaded
			return logger.WithContext(ctx), nil
		},
		Commands: []*cli.Command{
			validateCommand(stdout, &cfg),
			renderCommand(stdout),
			whichCommand(stdout, &cfg),
			appsCommand(stdout, &cfg),
		},
	}
	cmd.OnUsageError = usageError
	for _, sub := range cmd.Commands {
		sub.OnUsageError = usageError
	}
	return cmd
}

// usageError marks flag parsing and required-flag failures as usage errors.
// urfave/cli consults OnUsageError on the failing command only.
func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return fmt.Errorf("%w: %v", errUsage, err)
}

func validateCommand(stdout io.Writer, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate JSON documents against a Draft-04 schema",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "schema", Required: true, Usage: "Schema file"},
			&cli.StringFlag{Name: "instance", Usage: "Instance file"},
			&cli.StringFlag{Name: "queue-url", Usage: "Validate message bodies from this SQS queue instead"},
			&cli.StringFlag{Name: "engine", Value: "draft4", Usage: "Validation engine: draft4 or compiler"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			opts, err := engineOptions(c.String("engine"))
			if err != nil {
				return err
			}

			if instance := c.String("instance"); instance != "" {
				errs, err := cliutil.ValidateJSONFiles(ctx, instance, c.String("schema"), opts...)
				if err != nil {
					return err
				}
				return report(stdout, errs)
			}

			queueURL := c.String("queue-url")
			if queueURL == "" {
				queueURL = cfg.QueueURL
			}
			if queueURL == "" {
				return fmt.Errorf("%w: one of --instance or --queue-url is required", errUsage)
			}

			schemaText, err := cliutil.ReadFile(c.String("schema"))
			if err != nil {
				return err
			}
			schema, err := cliutil.LoadJSONString(ctx, schemaText)
			if err != nil {
				return err
			}

			awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
			if err != nil {
				return fmt.Errorf("load AWS config: %w", err)
			}
			src := source.NewQueueSource(sqs.NewFromConfig(awsCfg), queueURL, source.WithMaxMessages(cfg.QueueBatch))
			return validateQueue(ctx, stdout, src, schema, opts...)
		},
	}
}

func engineOptions(name string) ([]cliutil.ValidateOption, error) {
	switch name {
	case "", "draft4":
		return nil, nil
	case "compiler":
		return []cliutil.ValidateOption{cliutil.WithValidator(jsonschema.NewCompilerValidator())}, nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q", errUsage, name)
	}
}

// receiver is satisfied by *source.QueueSource.
type receiver interface {
	Receive(ctx context.Context) ([]source.Message, error)
}

func validateQueue(ctx context.Context, w io.Writer, src receiver, schema any, opts ...cliutil.ValidateOption) error {
	msgs, err := src.Receive(ctx)
	if err != nil {
		return err
	}

	invalid := 0
	for _, m := range msgs {
		instance, err := cliutil.LoadJSONString(ctx, m.Body)
		var errs []string
		if err != nil {
			errs = []string{"Error: " + err.Error()}
		} else if errs, err = cliutil.ValidateJSON(ctx, instance, schema, opts...); err != nil {
			return err
		}
		if len(errs) == 0 {
			continue
		}
		invalid++
		fmt.Fprintf(w, "== %s\n%s\n", m.ID, cliutil.ListToErr(errs))
	}

	zerolog.Ctx(ctx).Info().Int("received", len(msgs)).Int("invalid", invalid).Msg("Validated queue batch")
	if invalid > 0 {
		return errReported
	}
	return nil
}

func report(w io.Writer, errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	fmt.Fprintln(w, cliutil.ListToErr(errs))
	return errReported
}

func renderCommand(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a mustache template into JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "template", Required: true, Usage: "Template file"},
			&cli.StringFlag{Name: "data", Usage: "JSON object file used as the rendering context"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			template, err := cliutil.ReadFile(c.String("template"))
			if err != nil {
				return err
			}

			data := map[string]any{}
			if path := c.String("data"); path != "" {
				text, err := cliutil.ReadFile(path)
				if err != nil {
					return err
				}
				loaded, err := cliutil.LoadJSONString(ctx, text)
				if err != nil {
					return err
				}
				obj, ok := loaded.(map[string]any)
				if !ok {
					return fmt.Errorf("%w: --data must contain a JSON object", errUsage)
				}
				data = obj
			}

			rendered, err := cliutil.RenderMustacheJSON(ctx, template, data)
			if err != nil {
				return err
			}
			out, err := cliutil.DumpJSON(rendered)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, out)
			return nil
		},
	}
}

func whichCommand(stdout io.Writer, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "which",
		Usage:     "Locate an executable on PATH",
		ArgsUsage: "PROGRAM",
		Action: func(ctx context.Context, c *cli.Command) error {
			program := c.Args().First()
			if program == "" {
				return fmt.Errorf("%w: PROGRAM is required", errUsage)
			}
			path, ok := cliutil.Which(program, cfg.SearchPath)
			if !ok {
				zerolog.Ctx(ctx).Debug().Str("program", program).Msg("Executable not found")
				return errReported
			}
			fmt.Fprintln(stdout, path)
			return nil
		},
	}
}

func appsCommand(stdout io.Writer, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "apps",
		Usage:     "Fetch an app definition from the apps API",
		ArgsUsage: "[APP_ID]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "Apps API base URL (overrides CLIUTIL_APPS_URL)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			base := c.String("url")
			if base == "" {
				base = cfg.AppsURL
			}
			if base == "" {
				return fmt.Errorf("%w: --url or CLIUTIL_APPS_URL is required", errUsage)
			}
			got, err := appsclient.New(base).Get(ctx, c.Args().First())
			if err != nil {
				return err
			}
			out, err := cliutil.DumpJSON(got)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, out)
			return nil
		},
	}
}
