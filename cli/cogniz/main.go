package main

import (
	"os"

	cognizcmder "github.com/papercomputeco/cogniz/cmd/cogniz"
)

func main() {
	cmd := cognizcmder.NewCognizCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
