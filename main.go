package main

import (
	"fmt"
	"os"

	"github.com/melodypapa/autosar-calltree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
