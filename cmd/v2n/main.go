package main

import (
	"fmt"
	"os"

	"voice-renamer/cmd/v2n/cmd"
	"voice-renamer/internal/config"

	// Import providers to register them
	_ "voice-renamer/internal/app/api/gemini"
	_ "voice-renamer/internal/app/api/openai/whisper"
	_ "voice-renamer/internal/app/api/whisper_cpp"
)

func main() {
	// Missing keys only matter for the remote providers, which check again
	if _, err := config.InitializeConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
	}

	cmd.Execute()
}
