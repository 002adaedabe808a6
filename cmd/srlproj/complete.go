package main

import (
	"fmt"
	"strings"

	"github.com/revelaction/srlproj/annotation"
)

var commands = []string{
	"files",
	"sentences",
	"show",
	"project",
	"annotate",
	"label",
	"stat",
	"features",
	"train",
	"serve",
	"version",
	"bash",
	"help",
}

// completeCommand handles the autocompletion requests triggered by the bash completion script.
func completeCommand(args []string, ui UI) error {
	completions := getCompletions(args)
	for _, c := range completions {
		_, _ = fmt.Fprintln(ui.Out, c)
	}
	return nil
}

func getCompletions(args []string) []string {
	if len(args) < 1 {
		return nil
	}

	// args[0] is "srlproj" (binary name from COMP_WORDS[0])
	commandIndex := 1
	cursorIndex := len(args) - 1
	if cursorIndex < commandIndex {
		return nil
	}
	lastWord := args[cursorIndex]

	if cursorIndex == commandIndex {
		// User is typing the command itself
		return withPrefix(commands, lastWord)
	}

	// label <file> <sentenceId> <label>
	if args[commandIndex] == "label" && positional(args[commandIndex+1:cursorIndex]) == 2 {
		var labels []string
		for _, l := range annotation.Labels() {
			labels = append(labels, string(l))
		}
		return withPrefix(labels, lastWord)
	}

	return nil
}

func withPrefix(words []string, prefix string) []string {
	var completions []string
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			completions = append(completions, w)
		}
	}
	return completions
}

// positional counts the words that are not flags or flag values.
func positional(words []string) int {
	n := 0
	for i := 0; i < len(words); i++ {
		w := words[i]
		if strings.HasPrefix(w, "-") {
			if !strings.Contains(w, "=") {
				// flag value
				i++
			}
			continue
		}
		n++
	}
	return n
}
