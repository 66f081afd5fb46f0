package tui

import (
	"fmt"
	"strings"
)

const previewTextLimit = 1200

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Knowledge Base"))
	b.WriteString("\n")

	switch m.State {
	case StateList:
		b.WriteString(m.listView())
	case StateSearch:
		b.WriteString(InfoStyle.Render("Search: ") + m.Input + "▌\n")
		b.WriteString(InfoStyle.Render("enter to apply, esc to cancel"))
	case StateInput:
		b.WriteString(InfoStyle.Render("Article URL: ") + m.Input + "▌\n")
		b.WriteString(InfoStyle.Render("enter to ingest, esc to cancel"))
	case StateWorking:
		b.WriteString(StatusStyle.Render(m.Status))
	case StateDetail:
		b.WriteString(m.detailView())
	case StatePreview:
		b.WriteString(m.previewView())
	case StateDuplicate:
		b.WriteString(m.duplicateView())
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		b.WriteString(ErrorStyle.Render("Error: "+errMsg) + "\n")
		b.WriteString(InfoStyle.Render("press any key to go back"))
	}

	if m.Status != "" && m.State == StateList {
		b.WriteString("\n" + StatusStyle.Render(m.Status))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder
	if m.Query != "" {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("filter: %q (%d match)", m.Query, len(m.Articles))) + "\n\n")
	}

	if len(m.Articles) == 0 {
		b.WriteString(InfoStyle.Render("No articles yet. Press 'a' to add one.") + "\n")
	}
	for i, a := range m.Articles {
		line := a.Title
		if a.PublicationName != "" {
			line += InfoStyle.Render(" — " + a.PublicationName)
		}
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render("> "+a.Title) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + InfoStyle.Render("enter view · a add · / search · d delete · r refresh · q quit"))
	return b.String()
}

func (m Model) detailView() string {
	if m.Selected == nil {
		return ""
	}
	a := m.Selected

	var b strings.Builder
	b.WriteString(SelectedStyle.Render(a.Title) + "\n\n")
	if a.PublicationName != "" {
		b.WriteString(InfoStyle.Render(a.PublicationName) + "\n")
	}
	b.WriteString(InfoStyle.Render(a.SourceURL) + "\n")
	b.WriteString(InfoStyle.Render("added "+a.DateAdded.Format("2006-01-02")) + "\n\n")
	b.WriteString(BoxStyle.Render(a.Summary) + "\n\n")
	b.WriteString(truncate(a.FullText, previewTextLimit) + "\n\n")
	b.WriteString(InfoStyle.Render("esc back"))
	return b.String()
}

func (m Model) previewView() string {
	if m.Draft == nil {
		return ""
	}
	d := m.Draft

	var b strings.Builder
	b.WriteString(StatusStyle.Render("Draft ready — review before saving") + "\n\n")
	b.WriteString(SelectedStyle.Render(d.Title) + "\n")
	if d.PublicationName != "" {
		b.WriteString(InfoStyle.Render(d.PublicationName) + "\n")
	}
	b.WriteString(InfoStyle.Render(d.SourceURL) + "\n\n")
	b.WriteString(BoxStyle.Render(d.Summary) + "\n\n")
	b.WriteString(InfoStyle.Render("y save · n discard"))
	return b.String()
}

func (m Model) duplicateView() string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("Already saved") + "\n\n")
	if m.Duplicate != nil && m.Duplicate.Existing != nil {
		b.WriteString("This URL matches: " + m.Duplicate.Existing.Title + "\n\n")
	}
	b.WriteString(InfoStyle.Render("v view existing · p re-process anyway · esc cancel"))
	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
