//go:build !unix

package rahasher

import "os/exec"

func configureProcessGroup(*exec.Cmd) {}

func killProcessGroup(*exec.Cmd) {}
