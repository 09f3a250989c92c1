package lint

import (
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// extractLinkDests walks the markdown AST and collects link and image
// destinations in document order.
func extractLinkDests(content []byte) []string {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	pctx := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader(content), parser.WithContext(pctx))

	var dests []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			dests = append(dests, string(node.Destination))
		case *ast.Image:
			dests = append(dests, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})

	return dests
}
