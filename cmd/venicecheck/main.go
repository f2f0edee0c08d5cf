// Command venicecheck inspects Venice chat-completion exchanges from the
// command line. It can adapt a captured payload file into the normalized
// assistant message (parse), dump the synthetic request/response records for
// an exchange with credentials redacted (record), or perform one live
// round-trip against the API (chat).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v2"

	"computeruse/core/parse"
	"computeruse/internal/config"
	"computeruse/internal/utils"
	"computeruse/providers/ai"
	"computeruse/providers/ai/venice"
	"computeruse/providers/observability"
	"computeruse/providers/observability/slogobs"
)

var VERSION = "0.1.0"

func main() {
	log.Default().SetFlags(log.Ltime | log.Lmicroseconds)

	app := cli.NewApp()
	app.Name = "venicecheck"
	app.Version = VERSION
	app.Usage = "inspect and replay Venice chat-completion exchanges"
	app.Commands = []*cli.Command{
		parseCmd(),
		recordCmd(),
		chatCmd(),
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "adapt a captured payload file and print the normalized assistant message",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "payload", Aliases: []string{"p"}, Usage: "payload JSON file ('-' for stdin)", Value: "-"},
			&cli.BoolFlag{Name: "extract-json", Usage: "also extract the JSON candidate embedded in the reply text"},
		},
		Action: func(c *cli.Context) error {
			payload, err := readPayload(c.String("payload"))
			if err != nil {
				return err
			}

			raw, err := venice.Adapt(payload, map[string]any{}, nil)
			if err != nil {
				return err
			}
			message := raw.Parse()
			fmt.Println(utils.JSONToString(message, true))

			if c.Bool("extract-json") && len(message.Content) > 0 {
				fmt.Println(parse.ExtractJSON(message.Content[0].Text))
			}
			return nil
		},
	}
}

func recordCmd() *cli.Command {
	return &cli.Command{
		Name:  "record",
		Usage: "print the synthetic exchange records for a payload/request pair",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "payload", Aliases: []string{"p"}, Usage: "payload JSON file ('-' for stdin)", Value: "-"},
			&cli.StringFlag{Name: "request", Aliases: []string{"r"}, Usage: "request JSON file (optional)"},
		},
		Action: func(c *cli.Context) error {
			payload, err := readPayload(c.String("payload"))
			if err != nil {
				return err
			}

			var requestData any = map[string]any{}
			if path := c.String("request"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read request file: %w", err)
				}
				if err := json.Unmarshal(data, &requestData); err != nil {
					return fmt.Errorf("failed to decode request file: %w", err)
				}
			}

			raw, err := venice.Adapt(payload, requestData, map[string]string{
				"Content-Type": "application/json",
			})
			if err != nil {
				return err
			}

			reqJSON, err := redactAuthorization(utils.JSONToString(raw.HTTPRequest(), true))
			if err != nil {
				return err
			}
			fmt.Println(reqJSON)
			fmt.Println(utils.JSONToString(raw.HTTPResponse(), true))
			return nil
		},
	}
}

func chatCmd() *cli.Command {
	return &cli.Command{
		Name:      "chat",
		Usage:     "send one message to Venice and print reply plus exchange records",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "system", Usage: "system prompt", Value: ""},
			&cli.BoolFlag{Name: "show-records", Usage: "print the exchange records after the reply"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("usage: venicecheck chat <message>")
			}

			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}

			observer := slogobs.New(slogobs.WithLevel(logLevel(cfg.Log.Level)))
			ctx := observability.ContextWithObserver(context.Background(), observer)

			provider := venice.New().WithQPS(cfg.Venice.MaxQPS)
			if cfg.Venice.APIKey != "" {
				provider.WithAPIKey(cfg.Venice.APIKey)
			}
			if cfg.Venice.BaseURL != "" {
				provider.WithBaseURL(cfg.Venice.BaseURL)
			}

			request := ai.ChatRequest{
				Model:        cfg.Venice.Model,
				SystemPrompt: c.String("system"),
				Messages: []ai.Message{
					{Role: ai.RoleUser, Content: c.Args().First()},
				},
			}
			if cfg.Venice.MaxTokens > 0 {
				request.GenerationConfig = &ai.GenerationConfig{MaxTokens: cfg.Venice.MaxTokens}
			}

			response, raw, err := provider.SendMessageRaw(ctx, request)
			if err != nil {
				return err
			}

			fmt.Println(response.Content)

			if c.Bool("show-records") {
				reqJSON, err := redactAuthorization(utils.JSONToString(raw.HTTPRequest(), true))
				if err != nil {
					return err
				}
				fmt.Println(reqJSON)
				fmt.Println(utils.JSONToString(raw.HTTPResponse(), true))
			}
			return nil
		},
	}
}

// readPayload decodes a payload JSON document from the given file, or from
// stdin when path is "-".
func readPayload(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return payload, nil
}

// redactAuthorization masks the Authorization header in a serialized request
// record so credentials never reach stdout or saved captures.
func redactAuthorization(recordJSON string) (string, error) {
	if !gjson.Get(recordJSON, "headers.Authorization").Exists() {
		return recordJSON, nil
	}
	redacted, err := sjson.Set(recordJSON, "headers.Authorization", "[redacted]")
	if err != nil {
		return "", fmt.Errorf("failed to redact record: %w", err)
	}
	return redacted, nil
}

func logLevel(level string) slog.Level {
	switch level {
	case "trace":
		return slogobs.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
