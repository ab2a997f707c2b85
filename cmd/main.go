package main

import (
	"fmt"
	"os"

	"github.com/aurumchain/go-aurum/cmd/aurum/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
