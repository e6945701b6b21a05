// Package htmlparse decomposes the HTML bodies the courseware stores
// for course about pages and update feeds into structured pieces.
package htmlparse

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Section is one top-level <section> block of an about page
type Section struct {
	Class      string
	Attributes map[string]string
	Body       string
	Articles   []Article
}

// Article is one <article> block inside a section. About pages use
// articles for teacher biographies.
type Article struct {
	Name  string
	Image string
	Bio   string
}

// Posting is one dated update from a course info page
type Posting struct {
	Date    string
	Content string
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

func innerHTML(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		html.Render(&buf, c)
	}
	return strings.TrimSpace(buf.String())
}

func innerText(n *html.Node) string {
	var buf bytes.Buffer
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

func parseFragment(body string) (*html.Node, error) {
	// html.Parse normalizes fragments into a full document; the
	// interesting nodes end up under <body>.
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	for _, b := range findAll(doc, "body") {
		return b, nil
	}
	return doc, nil
}

func parseArticle(n *html.Node) Article {
	article := Article{}
	for _, img := range findAll(n, "img") {
		article.Image = attr(img, "src")
		break
	}
	for _, h := range findAll(n, "h3") {
		article.Name = innerText(h)
		break
	}
	for _, p := range findAll(n, "p") {
		article.Bio = innerText(p)
		break
	}
	return article
}

// ParseOverview splits an about page body into its top-level sections.
// Teacher sections decompose into articles; every other section keeps
// its inner HTML as the body.
func ParseOverview(body string) ([]Section, error) {
	root, err := parseFragment(body)
	if err != nil {
		return nil, err
	}

	var sections []Section
	for _, node := range findAll(root, "section") {
		section := Section{
			Class:      attr(node, "class"),
			Attributes: map[string]string{},
		}
		for _, a := range node.Attr {
			if a.Key == "class" {
				continue
			}
			section.Attributes[a.Key] = a.Val
		}
		if len(section.Attributes) == 0 {
			section.Attributes = nil
		}

		if section.Class == "teacher" || strings.Contains(section.Class, "teachers") {
			for _, articleNode := range findAll(node, "article") {
				section.Articles = append(section.Articles, parseArticle(articleNode))
			}
		}
		if section.Articles == nil {
			section.Body = innerHTML(node)
		}

		sections = append(sections, section)
	}

	return sections, nil
}

// ParseUpdates extracts the dated postings of a course info page. The
// current format nests <article> blocks inside a <section>; the legacy
// format used an <ol> of <li> entries with an <h2> date heading.
func ParseUpdates(body string) ([]Posting, error) {
	root, err := parseFragment(body)
	if err != nil {
		return nil, err
	}

	var postings []Posting

	articles := findAll(root, "article")
	if len(articles) > 0 {
		for _, node := range articles {
			posting := Posting{}
			for _, h := range findAll(node, "h2") {
				posting.Date = innerText(h)
				break
			}
			var contentParts []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "h2" {
					continue
				}
				var buf bytes.Buffer
				html.Render(&buf, c)
				part := strings.TrimSpace(buf.String())
				if part != "" {
					contentParts = append(contentParts, part)
				}
			}
			posting.Content = strings.Join(contentParts, "\n")
			postings = append(postings, posting)
		}
		return postings, nil
	}

	// Legacy <ol><li> layout.
	for _, list := range findAll(root, "ol") {
		for _, item := range findAll(list, "li") {
			posting := Posting{}
			var contentParts []string
			for c := item.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "h2" {
					posting.Date = innerText(c)
					continue
				}
				var buf bytes.Buffer
				html.Render(&buf, c)
				part := strings.TrimSpace(buf.String())
				if part != "" {
					contentParts = append(contentParts, part)
				}
			}
			posting.Content = strings.Join(contentParts, "\n")
			postings = append(postings, posting)
		}
		break
	}

	return postings, nil
}
