package main

import "github.com/abarbosa/mail-triage/cmd"

func main() {
	cmd.Execute()
}
