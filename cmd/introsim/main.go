// cmd/introsim/main.go
package main

import (
	"introsim/internal/app"
	"introsim/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
