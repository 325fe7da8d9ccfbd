package main

import (
	"fmt"

	"github.com/mzaleski/proofcheck"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	refs, err := deps.References.FindReferences(deps.Ctx, proofcheck.ReferenceFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}

	if len(refs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: reference %q not found. Use 'proofcheck list' to see available references.\n", c.Name)
		return proofcheck.Errorf(proofcheck.ENOTFOUND, "reference %q not found", c.Name)
	}

	ref := refs[0]
	fmt.Fprintf(deps.Stdout, "# %s (%s)\nSource: %s\nUpdated: %s\n\n%s\n",
		ref.Name, ref.ID, ref.Source, ref.UpdatedAt.Format("2006-01-02 15:04"), ref.Content)
	return nil
}
