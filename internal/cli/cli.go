package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jessevdk/go-flags"

	"github.com/ambiyansyah-risyal/hostapi"
)

// Run parses args and executes the selected command, writing results to out.
func Run(ctx context.Context, args []string, out io.Writer) error {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "hostapi"
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			_, _ = fmt.Fprintln(out, flagsErr.Message)
			return nil
		}
		return err
	}
	if parser.Active == nil {
		return fmt.Errorf("no command given")
	}

	switch parser.Active.Name {
	case "version":
		_, err := fmt.Fprintln(out, hostapi.GetVersion())
		return err
	case "list":
		return runList(opts, out)
	case "call":
		return runCall(ctx, opts, out)
	case "openapi":
		return runOpenAPI(opts, out)
	}
	return fmt.Errorf("unknown command %q", parser.Active.Name)
}

func runList(opts *Options, out io.Writer) error {
	cfg, err := hostapi.LoadConfigFile(opts.Config)
	if err != nil {
		return err
	}
	client, err := cfg.NewClient()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, op := range client.Operations() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", op.Name, op.Method, op.Template)
	}
	return w.Flush()
}

func runOpenAPI(opts *Options, out io.Writer) error {
	cfg, err := hostapi.LoadConfigFile(opts.Config)
	if err != nil {
		return err
	}
	client, err := cfg.NewClient()
	if err != nil {
		return err
	}
	doc, err := client.OpenAPI(opts.OpenAPI.Title, opts.OpenAPI.Version)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, doc, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')
	_, err = out.Write(pretty.Bytes())
	return err
}

func runCall(ctx context.Context, opts *Options, out io.Writer) error {
	cmd := &opts.Call
	cfg, err := hostapi.LoadConfigFile(opts.Config)
	if err != nil {
		return err
	}

	var clientOpts []hostapi.Option
	if cmd.BaseURL != "" {
		clientOpts = append(clientOpts, hostapi.WithBaseURL(cmd.BaseURL))
	}
	if cmd.Strict {
		clientOpts = append(clientOpts, hostapi.WithStrictPathParams())
	}
	if cmd.Debug {
		clientOpts = append(clientOpts, hostapi.WithSimpleLogger())
	}
	client, err := cfg.NewClient(clientOpts...)
	if err != nil {
		return err
	}

	params, err := parseParams(cmd.Args.Params)
	if err != nil {
		return err
	}
	callOpts, err := callOptions(cmd)
	if err != nil {
		return err
	}

	env, err := client.Call(ctx, cmd.Args.Operation, params, callOpts...)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(newEnvelopeView(env))
}

func callOptions(cmd *CallCmd) ([]hostapi.CallOption, error) {
	var opts []hostapi.CallOption
	if cmd.Dedup {
		opts = append(opts, hostapi.WithDedup())
	}
	for _, h := range cmd.Headers {
		key, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("header %q is not key:value", h)
		}
		opts = append(opts, hostapi.WithCallHeader(strings.TrimSpace(key), strings.TrimSpace(value)))
	}
	return opts, nil
}

// parseParams turns key=value pairs into params. Values that are valid JSON
// (numbers, booleans, objects, arrays, null) keep their JSON type; anything
// else is a string.
func parseParams(pairs []string) (hostapi.Params, error) {
	params := make(hostapi.Params, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("parameter %q is not key=value", pair)
		}
		params[key] = parseValue(raw)
	}
	return params, nil
}

func parseValue(raw string) any {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return v
}

type envelopeView struct {
	Data     any    `json:"data"`
	Error    bool   `json:"error"`
	Canceled bool   `json:"canceled"`
	Status   int    `json:"status,omitempty"`
	Message  string `json:"message,omitempty"`
}

func newEnvelopeView(env *hostapi.Envelope) envelopeView {
	view := envelopeView{
		Error:    env.Error,
		Canceled: env.Canceled,
		Status:   env.StatusCode,
	}
	if env.Err != nil {
		view.Message = env.Err.Error()
	}
	if len(env.Data) > 0 {
		if json.Valid(env.Data) {
			view.Data = json.RawMessage(env.Data)
		} else {
			view.Data = string(env.Data)
		}
	}
	return view
}
