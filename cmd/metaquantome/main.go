// cmd/metaquantome/main.go
package main

import (
	"os"

	"github.com/rsajulga-nmdp/metaquantome/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}
