// m3theme - Material 3 dynamic colour schemes
//
// m3theme derives a complete Material 3 colour scheme from a source colour
// or image and writes it as JSON, CSS, YAML, TOML or text, or serves it live.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/m3theme/internal/cli"

func main() {
	cli.Execute()
}
