package commands

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command.
// Commands run in one process so the database connection and OAuth token are set up once.
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without reconnecting.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runInteractive(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "\nStarting interactive session...")
	fmt.Fprintln(out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

	commands := make(map[string]*cobra.Command)
	for _, sub := range cmd.Parent().Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help":
			continue
		}
		commands[sub.Name()] = sub
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		name, cmdArgs := parts[0], parts[1:]

		if name == "exit" || name == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		if name == "help" {
			printInteractiveHelp(out, commands)
			continue
		}

		target, ok := commands[name]
		if !ok {
			fmt.Fprintf(out, "✗ Unknown command: %s (type 'help' for available commands)\n\n", name)
			continue
		}

		// Flags keep their values between runs unless reset
		target.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
			_ = flag.Value.Set(flag.DefValue)
		})

		// Run RunE directly so PersistentPreRunE does not initialize the app again
		if err := target.ParseFlags(cmdArgs); err != nil {
			fmt.Fprintf(out, "✗ Error parsing flags: %v\n\n", err)
			continue
		}
		cmdArgs = target.Flags().Args()

		if target.Args != nil {
			if err := target.Args(target, cmdArgs); err != nil {
				fmt.Fprintf(out, "✗ Error: %v\n\n", err)
				continue
			}
		}

		if target.RunE != nil {
			if err := target.RunE(target, cmdArgs); err != nil {
				fmt.Fprintf(out, "✗ Error: %v\n\n", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

func printInteractiveHelp(out io.Writer, commands map[string]*cobra.Command) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		fmt.Fprintf(out, "  %-50s %s\n", commands[name].Use, commands[name].Short)
	}

	fmt.Fprintf(out, "\n  %-50s %s\n", "help", "Show this help message")
	fmt.Fprintf(out, "  %-50s %s\n", "exit, quit", "Exit the interactive session")
}
