package cmd

// RunApply re-applies values from a profile JSON file. It is an
// explicit alias for restore: same flags, same snapshot-then-apply
// flow.
func RunApply(args []string) error {
	return RunRestore(args)
}
