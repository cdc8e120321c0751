package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/mijahauan/EG-HG/internal/config"
	"github.com/mijahauan/EG-HG/internal/ctxlog"
	"github.com/mijahauan/EG-HG/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL folio loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and merges their graph and
// inning blocks into one model. Paths that do not exist are skipped. A name
// declared twice, in the same file or in different ones, is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, g := range root.Graphs {
			if prev, ok := model.Graphs[g.Name]; ok {
				return nil, fmt.Errorf("graph '%s' in %s is already declared in %s", g.Name, file, prev.Source)
			}
			model.Graphs[g.Name] = &config.GraphDefinition{
				Name:        g.Name,
				Description: g.Description,
				CLIF:        g.CLIF,
				Source:      file,
			}
		}
		for _, in := range root.Innings {
			if prev := model.Inning(in.Name); prev != nil {
				return nil, fmt.Errorf("inning '%s' in %s is already declared in %s", in.Name, file, prev.Source)
			}
			inning, err := translateInning(in, file)
			if err != nil {
				return nil, err
			}
			model.Innings = append(model.Innings, inning)
		}
	}

	logger.Debug("HCL loading complete.", "graphs", len(model.Graphs), "innings", len(model.Innings))
	return model, nil
}

func translateInning(b *inningBlock, file string) (*config.Inning, error) {
	inning := &config.Inning{
		Name:   b.Name,
		Thesis: b.Thesis,
		Domain: b.Domain,
		Moves:  make([]*config.Move, 0, len(b.Moves)),
		Source: file,
	}
	for i, m := range b.Moves {
		args, err := extractArguments(m.Arguments)
		if err != nil {
			return nil, fmt.Errorf("inning '%s' move %d (%s) in %s: %w", b.Name, i+1, m.Rule, file, err)
		}
		inning.Moves = append(inning.Moves, &config.Move{Rule: m.Rule, Arguments: args})
	}
	return inning, nil
}

func extractArguments(block *argumentsBlock) (map[string]hcl.Expression, error) {
	exprs := make(map[string]hcl.Expression)
	if block == nil || block.Body == nil {
		return exprs, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	for name, attr := range attrs {
		exprs[name] = attr.Expr
	}
	return exprs, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found, each at most once.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			all = append(all, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to find folio files in %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return all, nil
}
