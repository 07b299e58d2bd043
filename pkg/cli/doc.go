/*
Package cli provides the helpers shared by the jrcomp commands.

Output formatting renders command results as text, JSON or YAML:

	formatter := cli.NewFormatter(cli.FormatYAML)
	if err := formatter.FormatTo(os.Stdout, summary); err != nil {
		return err
	}

Text output uses the value's WriteText method when it has one, so a
command controls its own human-readable layout.

The progress reporter shows a bar while a directory of templates is
linted, and SetupSignalHandler returns a context cancelled on SIGINT or
SIGTERM for the long-running watch command.
*/
package cli
