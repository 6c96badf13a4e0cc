package ui

import (
	"net/url"

	"github.com/bornholm/masthead/internal/header"
)

const (
	MenuStateOpen   = "open"
	MenuStateClosed = "closed"
)

func MenuState(open bool) string {
	if open {
		return MenuStateOpen
	}
	return MenuStateClosed
}

// HeaderTemplateData feeds the "header" layout.
type HeaderTemplateData struct {
	View        header.View
	CurrentPath string
}

func NewHeaderTemplateData(view header.View, currentPath string) HeaderTemplateData {
	if currentPath == "" {
		currentPath = header.RouteHome
	}

	return HeaderTemplateData{
		View:        view,
		CurrentPath: currentPath,
	}
}

// ToggleURL is the link fallback of the burger and close controls: the
// current page, mounted with the menu in the opposite state.
func (d HeaderTemplateData) ToggleURL() string {
	if d.View.MenuOpen {
		return d.CurrentPath
	}

	query := url.Values{}
	query.Set("menu", MenuStateOpen)

	return d.CurrentPath + "?" + query.Encode()
}

// ToggleActionURL targets the partial update toggling the menu from its
// current state.
func (d HeaderTemplateData) ToggleActionURL() string {
	query := url.Values{}
	query.Set("menu", MenuState(d.View.MenuOpen))
	query.Set("path", d.CurrentPath)

	return header.RouteMenu + "?" + query.Encode()
}

func (d HeaderTemplateData) FollowActionURL(item header.Item) string {
	query := url.Values{}
	query.Set("menu", MenuState(d.View.MenuOpen))
	query.Set("to", item.Path)

	return header.RouteFollow + "?" + query.Encode()
}
