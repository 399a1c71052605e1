package main

import "github.com/AdguardTeam/safariconverter/internal/cmd"

func main() {
	cmd.Main()
}
