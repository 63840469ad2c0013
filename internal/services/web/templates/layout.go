// Package templates renders the galaxy pages. The *_templ.go files are
// generated from the .templ sources.
package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -path .

import (
	"strings"

	"github.com/louisbranch/cozy.galaxy/internal/services/web/routepath"
)

// NavItem is one entry in the top navigation.
type NavItem struct {
	Label string
	Path  string
}

// Navigation lists the primary pages in display order.
var Navigation = []NavItem{
	{Label: "Home", Path: routepath.Root},
	{Label: "Galaxy", Path: routepath.Galaxy},
	{Label: "Create", Path: routepath.Create},
	{Label: "Comments", Path: routepath.Comments},
}

// PageContext carries layout inputs for a full page.
type PageContext struct {
	Title       string
	CurrentPath string
	Breadcrumbs []Breadcrumb
	Toast       *Toast
}

// Toast is a one-time notice shown above the page content.
type Toast struct {
	Kind    string
	Message string
}

// Breadcrumb is one step of a page trail. The last step has no URL.
type Breadcrumb struct {
	Label string
	URL   string
}

func pageTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Cozy Galaxy"
	}
	return title + " · Cozy Galaxy"
}

func isCurrent(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

func toastRole(kind string) string {
	if kind == "error" {
		return "alert"
	}
	return "status"
}
