package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	log.SetPrefix("smartbite-api: ")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	h, cleanup, err := newHandler(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to start: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	router := gin.Default()
	router.SetTrustedProxies(nil)
	router.MaxMultipartMemory = maxImageBytes
	h.registerRoutes(router)

	mode := "multi-user"
	if h.db == nil {
		mode = "single-user"
	}
	log.Printf("[main] store=%s mode=%s listening on %s", cfg.Store, mode, cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Printf("[main] server stopped: %v", err)
	}
}
