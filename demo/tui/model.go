package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"knowledgebase/demo/client"
	"knowledgebase/types"
)

// State represents the screen the TUI is showing
type State string

const (
	StateList      State = "list"      // browsing the saved articles
	StateSearch    State = "search"    // typing a search query
	StateDetail    State = "detail"    // reading one article
	StateInput     State = "input"     // typing a URL to ingest
	StateWorking   State = "working"   // waiting on the pipeline
	StatePreview   State = "preview"   // reviewing a draft before save
	StateDuplicate State = "duplicate" // URL already saved, choose what to do
	StateError     State = "error"
)

// Model represents the TUI client state (thin client over the API)
type Model struct {
	Client *client.Client

	State    State
	Articles []types.Article
	Cursor   int

	// Text being typed in search/input states
	Input string
	// Active search filter applied to the list
	Query string

	Selected  *types.Article
	Draft     *types.Draft
	Duplicate *client.Duplicate
	// PendingURL is the URL being ingested, kept for "re-process anyway"
	PendingURL string
	// Forced marks the current draft as a deliberate duplicate
	// re-process, so the save must bypass the duplicate check too
	Forced bool

	Status string
	Err    error
}

// NewModel creates a new TUI model
func NewModel(c *client.Client) Model {
	return Model{
		Client: c,
		State:  StateList,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return loadArticles(m.Client, "")
}
