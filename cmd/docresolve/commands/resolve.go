package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	derrors "git.home.luguber.info/inful/docresolve/internal/errors"
	"git.home.luguber.info/inful/docresolve/internal/navigate"
	"git.home.luguber.info/inful/docresolve/internal/resolve"
	"git.home.luguber.info/inful/docresolve/internal/route"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Path   string `arg:"" optional:"" help:"Document path, e.g. guide/setup (empty for the index)"`
	Lang   string `short:"l" help:"Language code (defaults to content.default_language)"`
	Root   string `help:"Content root (overrides content.root)"`
	Pretty bool   `help:"Indent JSON output"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, logger, err := loadConfig(g, root)
	if err != nil {
		return err
	}

	ctx := context.Background()
	ld, err := newLoader(ctx, cfg)
	if err != nil {
		return err
	}

	selector := newSelector(cfg)
	lang := selector.DefaultLanguage()
	if r.Lang != "" {
		matched, ok := selector.Match(r.Lang)
		if !ok {
			return derrors.InvalidRequest("lang", fmt.Sprintf("unsupported language %q", r.Lang))
		}
		lang = matched
	}
	reqRoot := cfg.Content.Root
	if r.Root != "" {
		reqRoot = r.Root
	}

	misses := &navigate.Recorder{}
	orch := resolve.New(ld, selector, misses, resolve.WithLogger(logger))
	res, err := orch.Resolve(ctx, resolve.Request{
		Segments: segmentsFromPath(r.Path),
		Root:     reqRoot,
		Lang:     lang,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(g.out())
	if r.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if m := misses.Misses(); len(m) > 0 {
		return m[0].Err
	}
	return nil
}

// segmentsFromPath splits a slash separated path into path, path1, ... segments.
func segmentsFromPath(p string) route.Segments {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	keys := make([]string, len(parts))
	for i := range parts {
		if i == 0 {
			keys[i] = "path"
			continue
		}
		keys[i] = fmt.Sprintf("path%d", i)
	}
	return route.FromParams(keys, parts)
}
