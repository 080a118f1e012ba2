/*
Package cli provides command-line interface utilities for Minerva.

The cli package includes output formatters, error types, and signal
handling helpers used by the minerva command.

Output Formatting:

The cli package supports text and JSON output for displaying command
results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, verdict); err != nil {
		return err
	}

Signal Handling:

For graceful cancellation on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	verdict, err := engine.Evaluate(ctx, evalCtx)
*/
package cli
