package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// complete uses the --generate-bash-completion flag of the cli package.
const complete = `#! /bin/bash

_senseparse_autocomplete() {
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"

    if [[ "$cur" == "-"* ]]; then
        opts=$(senseparse "${COMP_WORDS[@]:1:$COMP_CWORD}" --generate-bash-completion)
    else
        opts=$(senseparse "${COMP_WORDS[@]:1:$COMP_CWORD-1}" --generate-bash-completion)
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -o bashdefault -o default -F _senseparse_autocomplete senseparse
`

func bashCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "bash",
		Usage: "print the bash completion script",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(e.ui.Out, complete)
			return err
		},
	}
}
