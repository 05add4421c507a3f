package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hubkit-cli/hubkit/pkg/errors"
	"github.com/hubkit-cli/hubkit/pkg/rest"
)

// apiCommand creates the generic api command, the raw scriptable
// surface over the request engine.
func (c *CLI) apiCommand() *cobra.Command {
	var method string
	var fields []string
	var rawBody string
	var accept string
	var paginate, include bool

	cmd := &cobra.Command{
		Use:   "api <path>",
		Short: "Issue an authenticated request against any API endpoint",
		Long: `Issue a request against an arbitrary API path and print the JSON
response. The path is relative to the configured base URL; an absolute
URL is used verbatim.

Request bodies are built from repeated --field key=value pairs, or
passed whole with --input. With --paginate, every page of a list
endpoint is fetched by following the Link rel="next" chain.

Examples:
  hubkit api repos/golang/go
  hubkit api repos/golang/go/issues --paginate
  hubkit api repos/golang/go/issues --method POST --field title="crash on start"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			client := c.newClient()

			if paginate {
				if method != "" && !strings.EqualFold(method, "GET") {
					return errors.New(errors.ErrCodeInvalidInput, "--paginate only applies to GET requests")
				}
				results, err := client.FetchAll(cmd.Context(), path, "fetching "+path, false)
				if err != nil {
					return err
				}
				return printJSON(results)
			}

			body, err := buildBody(rawBody, fields)
			if err != nil {
				return err
			}

			if method == "" && body != nil {
				method = "POST"
			}
			req := rest.Request{
				Path:        path,
				Method:      rest.Method(strings.ToUpper(method)),
				Body:        body,
				Accept:      accept,
				Description: "fetching " + path,
				Detached:    client.Interactive(),
			}
			env, err := client.Do(cmd.Context(), req)
			if err != nil {
				return err
			}

			if include {
				printEnvelopeHeaders(env)
			}
			if env.Payload == nil {
				return nil
			}
			return printJSON(env.Payload)
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "", "HTTP method (default GET, or POST with fields)")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "body field as key=value (repeatable)")
	cmd.Flags().StringVar(&rawBody, "input", "", "raw JSON request body")
	cmd.Flags().StringVar(&accept, "accept", "", "override the Accept header")
	cmd.Flags().BoolVar(&paginate, "paginate", false, "follow rel=\"next\" links and aggregate all pages")
	cmd.Flags().BoolVarP(&include, "include", "i", false, "print response metadata before the payload")

	return cmd
}

// buildBody assembles the request body from --input or --field pairs.
func buildBody(rawBody string, fields []string) ([]byte, error) {
	if rawBody != "" {
		if len(fields) > 0 {
			return nil, errors.New(errors.ErrCodeConflictingParams, "--input and --field cannot be combined")
		}
		if !json.Valid([]byte(rawBody)) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--input is not valid JSON")
		}
		return []byte(rawBody), nil
	}
	if len(fields) == 0 {
		return nil, nil
	}

	obj := make(map[string]any, len(fields))
	for _, f := range fields {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "field %q is not key=value", f)
		}
		obj[key] = value
	}
	return json.Marshal(obj)
}

// printEnvelopeHeaders writes the envelope metadata lines ahead of the
// payload.
func printEnvelopeHeaders(env *rest.Envelope) {
	printKeyValue("Status", fmt.Sprintf("%d", env.StatusCode))
	if env.RequestID != "" {
		printKeyValue("Request", env.RequestID)
	}
	if env.RateLimit > 0 {
		printKeyValue("RateLimit", fmt.Sprintf("%d/%d remaining", env.RateLimitRemaining, env.RateLimit))
	}
	if env.ETag != "" {
		printKeyValue("ETag", env.ETag)
	}
	if env.NextLink != "" {
		printKeyValue("Next", env.NextLink)
	}
}
