package main

import (
	"fmt"

	"github.com/mzaleski/proofcheck"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return proofcheck.Errorf(proofcheck.EINVALID, "use --force to confirm deletion")
	}

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
	if err := deps.References.DeleteReference(deps.Ctx, ref.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted reference %q\n", ref.Name)
	return nil
}
