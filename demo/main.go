package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"knowledgebase/demo/client"
	"knowledgebase/demo/tui"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	serverURL := flag.String("url", client.GetEnvOrDefault("API_URL", "http://localhost:8080"), "Knowledge base server URL")
	owner := flag.String("owner", client.GetEnvOrDefault("DEV_OWNER_ID", "demo"), "Owner identity sent with every request")
	flag.Parse()

	m := tui.NewModel(client.NewClient(*serverURL, *owner))

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
