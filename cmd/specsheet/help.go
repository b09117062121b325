package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specsheet <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate spec sheet PDFs for catalog products")
	fmt.Fprintln(w, "  serve      Serve spec sheets over HTTP")
	fmt.Fprintln(w, "  doctor     Check API, browser and output setup")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'specsheet help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file (default \".env\")")
	fmt.Fprintln(w, "      --api <url>           Product API base URL")
	fmt.Fprintln(w, "      --token <s>           Product API bearer token")
	fmt.Fprintln(w, "      --asset-base <url>    Base URL for relative image paths")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging and detailed timing")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > SPECSHEET_* variables > config file > defaults.")
}

func printDocumentUsage(w io.Writer) {
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in millimetres (5-40)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer-text <s>     Company line")
	fmt.Fprintln(w, "      --footer-date <s>     Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --logo <s>            Logo name, file path or URL")
	fmt.Fprintln(w, "      --no-logo             Omit the logo")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Generation timeout per product (default 2m)")
	fmt.Fprintln(w, "      --fetch-timeout <d>   Timeout per image download (default 15s)")
	fmt.Fprintln(w, "      --browser-fallback    Rasterize undecodable images in headless Chrome")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory whose logos/ overrides embedded logos")
	fmt.Fprintln(w)
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specsheet generate [flags] <product-id>...")
	fmt.Fprintln(w, "       specsheet generate [flags] --from-file product.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Fetch each product, apply the chosen specifications and write")
	fmt.Fprintln(w, "{output}/{code}-specifications.pdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -s, --spec <Name=Value>   Specification choice, repeatable (e.g. -s CCT=3000K)")
	fmt.Fprintln(w, "  -f, --from-file <path>    Product JSON as returned by the API")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default \".\")")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel generators (0 = auto)")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specsheet serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve GET /products/{id}/spec-sheet?spec=Name=Value, /healthz and /metrics.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default \":8080\")")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent generations (0 = auto)")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specsheet doctor [--json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the product API answers, Chrome is available when the")
	fmt.Fprintln(w, "browser fallback is on, and the output directory is writable.")
	fmt.Fprintln(w, "With --verbose, also print the effective configuration (token redacted).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: specsheet version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: specsheet help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
