//go:build mage

package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
)

// Doctor reports which conversion tools are installed on this machine.
func Doctor() error {
	found := 0
	for _, bin := range []string{"pandoc", "docker", "podman"} {
		if _, err := exec.LookPath(bin); err != nil {
			fmt.Printf("  %-7s missing\n", bin)
			continue
		}
		found++
		out, err := sh.Output(bin, "--version")
		if err != nil {
			fmt.Printf("  %-7s found (version unknown: %v)\n", bin, err)
			continue
		}
		first, _, _ := strings.Cut(out, "\n")
		fmt.Printf("  %-7s %s\n", bin, first)
	}
	if found == 0 {
		return fmt.Errorf("no conversion tool found: install pandoc, docker or podman")
	}
	return nil
}
