package main

import (
	"context"
	"fmt"

	"github.com/a-h/searchserver"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(searchserver.Version)
	return nil
}
