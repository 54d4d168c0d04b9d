package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"passvault/internal/client/cli"
	"passvault/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg, bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Root(ctx)

}
