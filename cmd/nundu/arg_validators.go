package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nundu/internal/store"
)

// requireID accepts exactly one argument shaped like a record id, so typos
// fail before a server is contacted.
func requireID(_ *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return fmt.Errorf("id is required")
	case 1:
	default:
		return fmt.Errorf("expected one id, got %d arguments", len(args))
	}
	if !store.ValidID(args[0]) {
		return fmt.Errorf("invalid id %q: ids are UUIDs as printed by create and list", args[0])
	}
	return nil
}
