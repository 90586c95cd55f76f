// Package verify checks internal links in the generated site. It is purely
// advisory: broken links are reported as issues and never change the build's
// exit-code contract.
package verify

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL       string // the URL or path
	Tag       string // HTML tag (a, img, script, link)
	Attribute string // attribute containing the link (href, src)
}

// Issue describes one broken internal link.
type Issue struct {
	Page   string // site-relative HTML page containing the link
	Link   string // the link destination as written
	Target string // resolved filesystem path that does not exist
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: broken link %q (missing %s)", i.Page, i.Link, i.Target)
}

// ExtractLinks extracts link-like attributes from an HTML document.
func ExtractLinks(r io.Reader) ([]Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var links []Link
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a", "link":
				if href := getAttr(n, "href"); href != "" {
					links = append(links, Link{URL: href, Tag: n.Data, Attribute: "href"})
				}
			case "img", "script", "source", "video", "audio":
				if src := getAttr(n, "src"); src != "" {
					links = append(links, Link{URL: src, Tag: n.Data, Attribute: "src"})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)
	return links, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// shouldVerify filters out links that cannot be checked against the local
// site tree: external URLs, anchors, and special protocols.
func shouldVerify(link string) bool {
	if link == "" || strings.HasPrefix(link, "#") {
		return false
	}
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(link, prefix) {
			return false
		}
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// Site walks every .html file under siteDir and reports internal links whose
// targets do not exist on disk. Directory links are satisfied by an
// index.html inside the directory.
func Site(siteDir string) ([]Issue, error) {
	var issues []Issue

	err := filepath.WalkDir(siteDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}
		links, perr := ExtractLinks(f)
		_ = f.Close()
		if perr != nil {
			return perr
		}

		rel, _ := filepath.Rel(siteDir, path)
		for _, l := range links {
			if !shouldVerify(l.URL) {
				continue
			}
			target := resolveTarget(siteDir, filepath.Dir(path), l.URL)
			if target == "" {
				continue
			}
			if !targetExists(target) {
				issues = append(issues, Issue{Page: rel, Link: l.URL, Target: target})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// resolveTarget maps a link destination to a filesystem path. Root-relative
// links resolve against siteDir, others against the containing page's
// directory. Fragments and query strings are stripped.
func resolveTarget(siteDir, pageDir, link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	p := u.Path
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "/") {
		return filepath.Join(siteDir, filepath.FromSlash(p))
	}
	return filepath.Join(pageDir, filepath.FromSlash(p))
}

func targetExists(target string) bool {
	info, err := os.Stat(target)
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err := os.Stat(filepath.Join(target, "index.html"))
		return err == nil
	}
	return true
}
