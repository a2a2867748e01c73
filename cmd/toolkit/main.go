package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pstoolkit/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "⚠ %v\n", err)
		os.Exit(1)
	}
}
