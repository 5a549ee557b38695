package sereno_test

import (
	"context"
	"fmt"
	"log"

	"github.com/sereno-labs/sereno"
	"github.com/sereno-labs/sereno/internal/config"
)

// Example shows the engine driving a guided session end to end with the
// in-memory store and the deterministic backend.
func Example() {
	cfg := config.Config{
		Provider:     config.ProviderStub,
		HistoryLimit: 10,
	}

	engine, err := sereno.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	ctx := context.Background()

	for _, input := range []string{"/start", "/feel anxious", "/why", "/remedy"} {
		result, err := engine.Handle(ctx, "demo-user", input)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s -> %s\n", input, result.Response.Type)
	}

	// Output:
	// /start -> session_start
	// /feel anxious -> emotion_identification
	// /why -> diagnostic_questions
	// /remedy -> coping_strategies
}
