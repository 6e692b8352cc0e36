// Command formbridge is a small CLI for exercising the FormBridge API
// from scripts and CI: create a submission, set fields, submit it, or
// fetch its current state. Configuration comes from the FORMBRIDGE_*
// environment variables (optionally via a .env file).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	formbridge "github.com/formbridge/client-go"
)

const usage = `usage: formbridge <command> [args]

commands:
  create <intake-id> [fields-json]
  set-fields <intake-id> <submission-id> <resume-token> <fields-json>
  submit <intake-id> <submission-id> <resume-token>
  get <intake-id> <submission-id>`

func main() {
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "formbridge:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%s", usage)
	}

	client, err := formbridge.New()
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch args[0] {
	case "create":
		return createSubmission(ctx, client, args[1:], out)
	case "set-fields":
		return setFields(ctx, client, args[1:], out)
	case "submit":
		return submit(ctx, client, args[1:], out)
	case "get":
		return getSubmission(ctx, client, args[1:], out)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func createSubmission(ctx context.Context, client *formbridge.Client, args []string, out io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: formbridge create <intake-id> [fields-json]")
	}

	opts := []formbridge.CallOption{formbridge.WithGeneratedIdempotencyKey()}
	if len(args) > 1 {
		fields, err := parseFields(args[1])
		if err != nil {
			return err
		}
		opts = append(opts, formbridge.WithFields(fields))
	}

	sub, err := client.CreateSubmission(ctx, args[0], opts...)
	if err != nil {
		return err
	}
	return printJSON(out, map[string]any{
		"submissionId":  sub.SubmissionID,
		"intakeId":      sub.IntakeID,
		"state":         sub.State,
		"resumeToken":   sub.ResumeToken,
		"missingFields": sub.MissingFields,
	})
}

func setFields(ctx context.Context, client *formbridge.Client, args []string, out io.Writer) error {
	if len(args) < 4 {
		return fmt.Errorf("usage: formbridge set-fields <intake-id> <submission-id> <resume-token> <fields-json>")
	}

	fields, err := parseFields(args[3])
	if err != nil {
		return err
	}

	result, err := client.SetFields(ctx, args[0], args[1], args[2], fields)
	if err != nil {
		return err
	}
	return printJSON(out, map[string]any{
		"submissionId":  result.SubmissionID,
		"state":         result.State,
		"resumeToken":   result.ResumeToken,
		"missingFields": result.MissingFields,
	})
}

func submit(ctx context.Context, client *formbridge.Client, args []string, out io.Writer) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: formbridge submit <intake-id> <submission-id> <resume-token>")
	}

	sub, err := client.Submit(ctx, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	return printJSON(out, map[string]any{
		"submissionId": sub.SubmissionID,
		"intakeId":     sub.IntakeID,
		"state":        sub.State,
	})
}

func getSubmission(ctx context.Context, client *formbridge.Client, args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: formbridge get <intake-id> <submission-id>")
	}

	sub, err := client.GetSubmission(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return printJSON(out, map[string]any{
		"submissionId":  sub.SubmissionID,
		"intakeId":      sub.IntakeID,
		"state":         sub.State,
		"fields":        sub.Fields,
		"missingFields": sub.MissingFields,
	})
}

func parseFields(raw string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("parse fields JSON: %w", err)
	}
	return fields, nil
}

func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
