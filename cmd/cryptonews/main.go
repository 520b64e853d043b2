package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/crypto-news-sdk/internal/cli"
	"github.com/samvad-hq/crypto-news-sdk/pkg/clienterr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "cryptonews: %v\n", err)
	if code := clienterr.StatusCodeOf(err); code != 0 {
		fmt.Fprintf(os.Stderr, "  http status: %d\n", code)
	}
	if clienterr.KindOf(err) == clienterr.KindConfig {
		os.Exit(2)
	}
	os.Exit(1)
}
