package main

import (
	"context"
	"log"
	"os"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Printf("[FATAL] %v", err)
		os.Exit(1)
	}
}
