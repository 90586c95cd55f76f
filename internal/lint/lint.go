// Package lint analyzes the markdown sources before a build and reports
// relative links whose targets do not exist. Advisory only; mkdocs owns all
// markdown rendering.
package lint

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// LinkKind classifies an extracted markdown link.
type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
)

// Link is a link-like construct found in a markdown body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// Issue describes one broken relative link in a markdown source file.
type Issue struct {
	File   string // docs-relative markdown file
	Link   string // destination as written
	Target string // resolved filesystem path that does not exist
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: broken link %q (missing %s)", i.File, i.Link, i.Target)
}

// ExtractLinks parses a markdown body and extracts link-like constructs.
// This is an analysis API; it does not attempt to re-render markdown.
func ExtractLinks(body []byte) []Link {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// Docs walks every .md file under docsDir and reports relative links with
// missing targets. External URLs and anchors are ignored.
func Docs(docsDir string) ([]Issue, error) {
	var issues []Issue

	err := filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		body, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return err
		}

		rel, _ := filepath.Rel(docsDir, path)
		for _, l := range ExtractLinks(body) {
			if !isRelative(l.Destination) {
				continue
			}
			target := resolveTarget(filepath.Dir(path), l.Destination)
			if target == "" {
				continue
			}
			if _, serr := os.Stat(target); serr != nil {
				issues = append(issues, Issue{File: rel, Link: l.Destination, Target: target})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

func isRelative(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func resolveTarget(fileDir, dest string) string {
	u, err := url.Parse(dest)
	if err != nil || u.Path == "" {
		return ""
	}
	return filepath.Join(fileDir, filepath.FromSlash(u.Path))
}
