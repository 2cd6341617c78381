// cmd/tools/rules-lint/main.go
//
// Maintenance tool for the embedded rule tables: validates the YAML data,
// lists intents, and runs the dictionary translator on sample text.
package main

import (
	"flag"
	"fmt"
	"os"

	"farmtech-assist/internal/chat/lang"
	"farmtech-assist/internal/chat/model"
	"farmtech-assist/internal/chat/rules"
)

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	translateCmd := flag.NewFlagSet("translate", flag.ExitOnError)

	listLang := listCmd.String("lang", "en", "Language to print responses in (en or kn)")
	target := translateCmd.String("to", "kn", "Target language (en or kn)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		table, err := rules.Load()
		if err != nil {
			fmt.Printf("Rule validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rule tables valid: %d generic intents, %d personalized intents, %d dictionary terms\n",
			len(table.Generic), len(table.Personalized), len(table.Dictionary))

	case "list":
		listCmd.Parse(os.Args[2:])
		table, err := rules.Load()
		if err != nil {
			fmt.Printf("Failed to load rule tables: %v\n", err)
			os.Exit(1)
		}
		language := model.Language(*listLang).Normalize()
		fmt.Println("Generic intents (matching order):")
		for _, r := range table.Generic {
			fmt.Printf("  %-20s %d response variants, %d suggestions\n",
				r.Intent, len(r.Responses[language]), len(r.Suggestions[language]))
		}
		fmt.Println("Personalized intents (matching order):")
		for _, r := range table.Personalized {
			fmt.Printf("  %s\n", r.Intent)
		}

	case "translate":
		translateCmd.Parse(os.Args[2:])
		if translateCmd.NArg() == 0 {
			fmt.Println("Error: text to translate is required.")
			translateCmd.Usage()
			os.Exit(1)
		}
		table, err := rules.Load()
		if err != nil {
			fmt.Printf("Failed to load rule tables: %v\n", err)
			os.Exit(1)
		}
		text := translateCmd.Arg(0)
		src := lang.DetectLanguage(text)
		dst := model.Language(*target).Normalize()
		translator := lang.NewTranslator(table.Dictionary)
		fmt.Printf("[%s -> %s] %s\n", src, dst, translator.Translate(text, src, dst))

	case "help":
		fallthrough
	default:
		help()
	}
}

func help() {
	fmt.Println(`Usage: rules-lint <command> [flags]

Commands:
  validate              Load and validate the embedded rule tables
  list [-lang en|kn]    Print intents in matching order
  translate [-to kn] <text>
                        Translate sample text with the term dictionary
  help                  Show this message`)
}
