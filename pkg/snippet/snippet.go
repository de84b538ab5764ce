// Package snippet fixes PHP code blocks embedded in Markdown documents.
//
// Only fenced blocks whose info string names php are touched. A block
// without an opening tag is fixed as if it started with "<?php" and the tag
// is removed again afterwards, so documentation snippets keep their shape.
package snippet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gophpfix/pkg/engine"
	"github.com/yaklabco/gophpfix/pkg/fix"
)

const openTag = "<?php"

// ErrOpenTagLost is returned when fixing removed or altered the opening tag
// added to a snippet, so it can no longer be stripped.
var ErrOpenTagLost = errors.New("opening tag added to the snippet was changed")

// Extensions are the Markdown file extensions the markdown commands select.
func Extensions() []string {
	return []string{".md", ".markdown"}
}

// Block is one PHP code block of a document.
type Block struct {
	// Line is the 1-based line of the opening fence.
	Line int

	// Start and End delimit the block body in the original document.
	Start, End int

	// Skipped is set for blocks nested in a list or block quote; their
	// lines are not contiguous in the source and are left alone.
	Skipped bool

	// Result is the engine outcome for the body; nil when Skipped.
	Result *engine.Result
}

// Document is a fixed Markdown document.
type Document struct {
	Output []byte
	Blocks []Block
}

// Changed reports whether any block changed.
func (d *Document) Changed() bool {
	for _, b := range d.Blocks {
		if b.Result != nil && b.Result.Changed {
			return true
		}
	}
	return false
}

// Formatter finds PHP blocks with goldmark and fixes them with an engine.
type Formatter struct {
	md goldmark.Markdown
}

// New returns a Formatter parsing GitHub flavored Markdown.
func New() *Formatter {
	return &Formatter{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Format fixes every PHP block of in.Content through e. Blocks are fixed
// independently; the first failing block aborts the document.
func (f *Formatter) Format(ctx context.Context, e *engine.Engine, in engine.Input) (*Document, error) {
	blocks := f.blocks(in.Content)
	edits := fix.NewEditBuilder()

	for i := range blocks {
		b := &blocks[i]
		if b.Skipped {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := fixBody(ctx, e, engine.Input{
			Path:       fmt.Sprintf("%s:%d", in.Path, b.Line),
			Content:    in.Content[b.Start:b.End],
			Whitespace: in.Whitespace,
		})
		if err != nil {
			return nil, fmt.Errorf("php block at line %d: %w", b.Line, err)
		}
		b.Result = res
		if res.Changed {
			edits.ReplaceRange(b.Start, b.End, string(res.Output))
		}
	}

	out, err := edits.Apply(in.Content)
	if err != nil {
		return nil, fmt.Errorf("splice fixed blocks: %w", err)
	}
	return &Document{Output: out, Blocks: blocks}, nil
}

// FixSnippets implements engine.SnippetFixer. The result folds the blocks
// together: the most passes any block took, the fixers that changed any
// block, and Unstable when one block did not converge.
func (f *Formatter) FixSnippets(ctx context.Context, e *engine.Engine, in engine.Input) (*engine.Result, error) {
	doc, err := f.Format(ctx, e, in)
	if err != nil {
		return nil, err
	}

	res := &engine.Result{
		Output:    doc.Output,
		Changed:   !bytes.Equal(doc.Output, in.Content),
		Converged: true,
	}
	for _, b := range doc.Blocks {
		if b.Result == nil {
			continue
		}
		res.Passes = max(res.Passes, b.Result.Passes)
		res.Applied = appendNew(res.Applied, b.Result.Applied)
		if b.Result.Unstable {
			res.Unstable = true
			res.Converged = false
			res.StillChanging = appendNew(res.StillChanging, b.Result.StillChanging)
		}
	}
	return res, nil
}

// blocks lists the PHP fenced code blocks of source in document order.
func (f *Formatter) blocks(source []byte) []Block {
	doc := f.md.Parser().Parse(text.NewReader(source))

	var out []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		code, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !strings.EqualFold(string(code.Language(source)), "php") {
			return ast.WalkSkipChildren, nil
		}
		lines := code.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		first, last := lines.At(0), lines.At(lines.Len()-1)
		b := Block{
			Line:  bytes.Count(source[:first.Start], []byte("\n")),
			Start: first.Start,
			End:   last.Stop,
		}
		for i := range lines.Len() {
			seg := lines.At(i)
			if seg.Padding != 0 || (i > 0 && seg.Start != lines.At(i-1).Stop) {
				b.Skipped = true
				break
			}
		}
		out = append(out, b)
		return ast.WalkSkipChildren, nil
	})
	return out
}

// fixBody fixes one block body, adding and removing an opening tag when the
// body has none. A trailing line break is kept.
func fixBody(ctx context.Context, e *engine.Engine, in engine.Input) (*engine.Result, error) {
	body := string(in.Content)
	lead := strings.TrimLeft(body, " \t\r\n")
	tagged := len(lead) >= len(openTag) && strings.EqualFold(lead[:len(openTag)], openTag)

	src := body
	if !tagged {
		src = openTag + "\n" + body
	}
	res, err := e.Fix(ctx, engine.Input{Path: in.Path, Content: []byte(src), Whitespace: in.Whitespace})
	if err != nil {
		return nil, err
	}

	out := string(res.Output)
	if !tagged {
		rest, ok := strings.CutPrefix(out, openTag+"\n")
		if !ok {
			return nil, ErrOpenTagLost
		}
		out = rest
	}
	if strings.HasSuffix(body, "\n") && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	res.Output = []byte(out)
	res.Changed = out != body
	return res, nil
}

func appendNew(dst, names []string) []string {
	for _, n := range names {
		if !slices.Contains(dst, n) {
			dst = append(dst, n)
		}
	}
	return dst
}
