package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"knowledgebase/demo/client"
	"knowledgebase/types"
)

// loadArticles creates a command to fetch the article list
func loadArticles(c *client.Client, searchQuery string) tea.Cmd {
	return func() tea.Msg {
		articles, err := c.ListArticles(searchQuery)
		return ArticlesLoadedMsg{Articles: articles, Err: err}
	}
}

// ingestURL creates a command to run the extract+summarize preview
func ingestURL(c *client.Client, url string, force bool) tea.Cmd {
	return func() tea.Msg {
		draft, dup, err := c.Ingest(url, force)
		return IngestDoneMsg{Draft: draft, Duplicate: dup, Err: err}
	}
}

// saveDraft creates a command to confirm a draft for storage
func saveDraft(c *client.Client, draft types.Draft, force bool) tea.Cmd {
	return func() tea.Msg {
		article, err := c.CreateArticle(draft, force)
		return ArticleSavedMsg{Article: article, Err: err}
	}
}

// deleteArticle creates a command to remove an article
func deleteArticle(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		return ArticleDeletedMsg{Err: c.DeleteArticle(id)}
	}
}
