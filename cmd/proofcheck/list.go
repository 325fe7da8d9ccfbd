package main

import (
	"fmt"

	"github.com/mzaleski/proofcheck"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	refs, err := deps.References.FindReferences(deps.Ctx, proofcheck.ReferenceFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}

	if len(refs) == 0 {
		fmt.Fprintln(deps.Stdout, "No references found. Use 'proofcheck add' to create one.")
		return nil
	}

	for _, r := range refs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.ID, r.Name, r.Source)
	}

	return nil
}
