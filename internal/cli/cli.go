package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/miketwenty1/balanceofsatoshis/internal/config"
	"github.com/miketwenty1/balanceofsatoshis/internal/push"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Invocation is the parsed outcome of a command line: the resolved
// configuration and the push request to execute.
type Invocation struct {
	Config  *config.Model
	Request *push.Request
}

// stringList collects a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated
// Invocation, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer) (*Invocation, bool, error) {
	flagSet := flag.NewFlagSet("bos", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
bos push - send a keysend payment to a node.

Usage:
  bos [options] AMOUNT

Arguments:
  AMOUNT
    Amount to push. Either a plain token count or an expression over the
    variables: liquidity, inbound, outbound, out_liquidity, out_inbound,
    out_outbound, eur, usd. Example: "0.5*liquidity" or "10*usd".

Options:
`)
		flagSet.PrintDefaults()
	}

	var inThrough, outThrough, quizAnswers stringList
	toFlag := flagSet.String("to", "", "Public key or peer query of the destination node.")
	flagSet.Var(&inThrough, "in", "Route in through this peer of the destination. Repeatable.")
	flagSet.Var(&outThrough, "out", "Route out through this own peer. Repeatable.")
	flagSet.Var(&quizAnswers, "quiz", "Quiz answer to attach to the payment. Repeatable, 2 to 10 answers.")
	messageFlag := flagSet.String("message", "", "Message to include with the payment.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Stop after routing checks without sending the payment.")
	maxFeeFlag := flagSet.Int64("max-fee", 0, "Maximum routing fee in tokens.")
	configFlag := flagSet.String("config", "", "Path to an HCL config file.")
	hostFlag := flagSet.String("host", "", "Node REST host:port. Overrides the config file.")
	macaroonFlag := flagSet.String("macaroon", "", "Hex-encoded macaroon. Overrides the config file.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if len(args) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = loaded
	}
	if *hostFlag != "" {
		cfg.Lightning.Host = *hostFlag
	}
	if *macaroonFlag != "" {
		cfg.Lightning.Macaroon = *macaroonFlag
	}

	if *logFormatFlag != "" {
		logFormat := strings.ToLower(*logFormatFlag)
		if logFormat != "text" && logFormat != "json" {
			return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
		}
		cfg.Log.Format = logFormat
	}
	if *logLevelFlag != "" {
		logLevel := strings.ToLower(*logLevelFlag)
		switch logLevel {
		case "debug", "info", "warn", "error":
			// valid
		default:
			return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
		}
		cfg.Log.Level = logLevel
	}

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected a single amount argument"}
	}

	request := &push.Request{
		Amount:      flagSet.Arg(0),
		Destination: *toFlag,
		InThrough:   inThrough,
		IsDryRun:    *dryRunFlag,
		Message:     *messageFlag,
		OutThrough:  outThrough,
		QuizAnswers: quizAnswers,
	}

	// A zero max fee is meaningful, so presence has to be detected rather
	// than inferred from the value.
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "max-fee" {
			request.MaxFee = maxFeeFlag
		}
	})

	return &Invocation{Config: cfg, Request: request}, false, nil
}
