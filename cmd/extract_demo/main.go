package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"jetzy/internal/ai"
	"jetzy/internal/config"
	"jetzy/internal/modules/conversation"
)

func main() {
	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Fatal("OPENAI_API_KEY environment variable not set")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}

	factory := func() (ai.CompletionClient, error) {
		return ai.NewClient(cfg.Model, logger), nil
	}
	extractor := conversation.NewExtractor(factory, logger)

	message := "I need a flight from NYC to Paris next Friday for two adults"
	if len(os.Args) > 1 {
		message = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("User: %s\n", message)

	ents := extractor.Extract(context.Background(), message, nil)
	out, _ := json.MarshalIndent(ents, "", "  ")
	fmt.Printf("Entities:\n%s\n", out)
}
