// cmd/introsim-dense/main.go
package main

import (
	"introsim/internal/appshell"
	"introsim/internal/denseapp"
)

func main() { appshell.Main(denseapp.RunContext) }
