package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagNumber
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"page-size":   {Values: []string{"a4", "letter", "legal"}},
	"orientation": {Values: []string{"portrait", "landscape"}},
	"log-level":   {Values: []string{"debug", "info", "warn", "error"}},
	"log-format":  {Values: []string{"console", "json"}},

	"config":    {FileGlob: "*.yaml,*.yml"},
	"env-file":  {FileGlob: "*.env,.env"},
	"from-file": {FileGlob: "*.json"},
	"logo":      {FileGlob: "*.png,*.jpg,*.jpeg"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "float64":
			fd.Type = flagNumber
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags come from the same registration the parsers use.
func getCommands() []commandDef {
	generateFS := flag.NewFlagSet("generate", flag.ContinueOnError)
	registerGenerateFlags(generateFS, &generateFlags{})
	serveFS := flag.NewFlagSet("serve", flag.ContinueOnError)
	registerServeFlags(serveFS, &serveFlags{})
	doctorFS := flag.NewFlagSet("doctor", flag.ContinueOnError)
	registerDoctorFlags(doctorFS, &doctorFlags{})

	return []commandDef{
		{Name: "generate", Desc: "Generate spec sheet PDFs for catalog products", Flags: extractFlagsFromFlagSet(generateFS)},
		{Name: "serve", Desc: "Serve spec sheets over HTTP", Flags: extractFlagsFromFlagSet(serveFS)},
		{Name: "doctor", Desc: "Check API, browser and output setup", Flags: extractFlagsFromFlagSet(doctorFS)},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	case ShellPowerShell:
		script = powerShellScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for specsheet\n")
	b.WriteString("_specsheet() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")); return ;;\n", pattern, strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", pattern)
			case flagDir:
				fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", pattern)
			}
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("        completion) COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"$cur\")) ;;\n")
		case c.Name == "help":
			fmt.Fprintf(&b, "        help) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")) ;;\n", commandNames(cmds))
		case len(c.Flags) > 0:
			words := make([]string, 0, len(c.Flags))
			for _, f := range c.Flags {
				words = append(words, "--"+f.Long)
			}
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")) ;;\n", c.Name, strings.Join(words, " "))
		}
	}
	b.WriteString("    esac\n}\n")
	b.WriteString("complete -F _specsheet specsheet\n")
	return b.String()
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef specsheet\n\n")
	b.WriteString("_specsheet() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")
	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("        completion) _values 'shell' bash zsh fish powershell ;;\n")
		case c.Name == "help":
			b.WriteString("        help) _describe 'command' commands ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "        %s)\n            _arguments \\\n", c.Name)
			for _, f := range c.Flags {
				fmt.Fprintf(&b, "                %s \\\n", zshFlagSpec(f))
			}
			b.WriteString("                '*:argument:_default'\n            ;;\n")
		}
	}
	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _specsheet specsheet\n")
	return b.String()
}

func zshFlagSpec(f flagDef) string {
	name := "--" + f.Long
	if f.Short != "" {
		name = fmt.Sprintf("(-%s --%s)'{-%s,--%s}'", f.Short, f.Long, f.Short, f.Long)
	}
	desc := zshEscape(f.Desc)
	var action string
	switch f.Type {
	case flagBool:
		return fmt.Sprintf("'%s[%s]'", name, desc)
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files"
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":value:"
	}
	return fmt.Sprintf("'%s[%s]%s'", name, desc, action)
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for specsheet\n")
	b.WriteString("complete -c specsheet -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c specsheet -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c specsheet -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'\n")
	fmt.Fprintf(&b, "complete -c specsheet -n '__fish_seen_subcommand_from help' -a '%s'\n", commandNames(cmds))

	for _, c := range cmds {
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c specsheet -n '__fish_seen_subcommand_from %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagString, flagNumber:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for specsheet\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName specsheet -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		words := make([]string, 0, len(c.Flags))
		for _, f := range c.Flags {
			words = append(words, "'--"+f.Long+"'")
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(words, ", "))
	}
	b.WriteString("    }\n")
	b.WriteString("    if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete)) {\n")
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = "'" + c.Name + "'"
	}
	fmt.Fprintf(&b, "        $candidates = @(%s)\n", strings.Join(names, ", "))
	b.WriteString("    } elseif ($words[1] -eq 'completion') {\n")
	b.WriteString("        $candidates = @('bash', 'zsh', 'fish', 'powershell')\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $candidates = $flags[$words[1]]\n")
	b.WriteString("    }\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specsheet completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:       eval \"$(specsheet completion bash)\"       # ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:        eval \"$(specsheet completion zsh)\"        # ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:       specsheet completion fish > ~/.config/fish/completions/specsheet.fish")
	fmt.Fprintln(w, "  PowerShell: specsheet completion powershell | Out-String | Invoke-Expression")
}
