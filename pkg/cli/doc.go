/*
Package cli provides command-line helpers used by the shipquote command.

Output Formatting:

Commands print results as text or JSON:

	format, err := cli.ParseOutputFormat(flagValue)
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

Results that implement TextWriter control their own text rendering.

Exit Codes:

ExitCode maps command errors to process exit codes: configuration and rules
problems (ConfigError) exit with 2, every other failure with 1.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
