package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case ArticlesLoadedMsg:
		return m.handleArticlesLoaded(msg)
	case IngestDoneMsg:
		return m.handleIngestDone(msg)
	case ArticleSavedMsg:
		return m.handleArticleSaved(msg)
	case ArticleDeletedMsg:
		return m.handleArticleDeleted(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input per screen
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.State {
	case StateList:
		return m.handleListKeys(msg)
	case StateSearch, StateInput:
		return m.handleTypingKeys(msg)
	case StateDetail:
		return m.handleDetailKeys(msg)
	case StatePreview:
		return m.handlePreviewKeys(msg)
	case StateDuplicate:
		return m.handleDuplicateKeys(msg)
	case StateError:
		m.State = StateList
		m.Err = nil
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Articles)-1 {
			m.Cursor++
		}
	case "enter":
		if m.Cursor < len(m.Articles) {
			m.Selected = &m.Articles[m.Cursor]
			m.State = StateDetail
		}
	case "/":
		m.State = StateSearch
		m.Input = m.Query
	case "a":
		m.State = StateInput
		m.Input = ""
	case "d":
		if m.Cursor < len(m.Articles) {
			m.Status = "Deleting..."
			return m, deleteArticle(m.Client, m.Articles[m.Cursor].ID)
		}
	case "r":
		m.Status = "Refreshing..."
		return m, loadArticles(m.Client, m.Query)
	}
	return m, nil
}

func (m Model) handleTypingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.State = StateList
		m.Input = ""
	case "enter":
		if m.State == StateSearch {
			m.Query = m.Input
			m.State = StateList
			m.Cursor = 0
			return m, loadArticles(m.Client, m.Query)
		}
		if m.Input != "" {
			m.PendingURL = m.Input
			m.Forced = false
			m.State = StateWorking
			m.Status = "Extracting and summarizing..."
			return m, ingestURL(m.Client, m.PendingURL, false)
		}
	case "backspace":
		if len(m.Input) > 0 {
			m.Input = m.Input[:len(m.Input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.Input += string(msg.Runes)
		}
	}
	return m, nil
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.State = StateList
		m.Selected = nil
	}
	return m, nil
}

func (m Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "s":
		if m.Draft != nil {
			m.State = StateWorking
			m.Status = "Saving..."
			// force carries over: the user already chose to re-process
			return m, saveDraft(m.Client, *m.Draft, m.Forced)
		}
	case "n", "esc":
		m.Draft = nil
		m.State = StateList
	}
	return m, nil
}

func (m Model) handleDuplicateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "v":
		if m.Duplicate != nil && m.Duplicate.Existing != nil {
			m.Selected = m.Duplicate.Existing
			m.Duplicate = nil
			m.State = StateDetail
		}
	case "p":
		m.Duplicate = nil
		m.Forced = true
		m.State = StateWorking
		m.Status = "Re-processing anyway..."
		return m, ingestURL(m.Client, m.PendingURL, true)
	case "esc", "n":
		m.Duplicate = nil
		m.State = StateList
	}
	return m, nil
}

func (m Model) handleArticlesLoaded(msg ArticlesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Articles = msg.Articles
	if m.Cursor >= len(m.Articles) {
		m.Cursor = 0
	}
	m.Status = ""
	if m.State != StateDetail {
		m.State = StateList
	}
	return m, nil
}

func (m Model) handleIngestDone(msg IngestDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	if msg.Duplicate != nil {
		m.Duplicate = msg.Duplicate
		m.State = StateDuplicate
		return m, nil
	}
	m.Draft = msg.Draft
	m.State = StatePreview
	return m, nil
}

func (m Model) handleArticleSaved(msg ArticleSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Draft = nil
	m.PendingURL = ""
	m.Forced = false
	m.Status = "Saved: " + msg.Article.Title
	return m, loadArticles(m.Client, m.Query)
}

func (m Model) handleArticleDeleted(msg ArticleDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Status = "Deleted"
	return m, loadArticles(m.Client, m.Query)
}
