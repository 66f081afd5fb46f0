package tui

import (
	"knowledgebase/demo/client"
	"knowledgebase/types"
)

// ArticlesLoadedMsg carries a refreshed article list
type ArticlesLoadedMsg struct {
	Articles []types.Article
	Err      error
}

// IngestDoneMsg carries the pipeline preview result: either a draft or
// a duplicate finding
type IngestDoneMsg struct {
	Draft     *types.Draft
	Duplicate *client.Duplicate
	Err       error
}

// ArticleSavedMsg carries the result of confirming a draft
type ArticleSavedMsg struct {
	Article *types.Article
	Err     error
}

// ArticleDeletedMsg carries the result of a delete
type ArticleDeletedMsg struct {
	Err error
}
