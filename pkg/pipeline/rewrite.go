package pipeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/tomlorder/pkg/config"
	"github.com/yaklabco/tomlorder/pkg/reorder"
	"github.com/yaklabco/tomlorder/pkg/syntax"
)

// Rewrite parses src, orders the keys of every table named in
// cfg.KeyOrder, then orders the tables by cfg.TableOrder and returns the
// serialized document.
func Rewrite(src []byte, cfg *config.Config, strict bool, logger *log.Logger) ([]byte, error) {
	root, err := syntax.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	opts := []reorder.Option{reorder.WithLogger(logger), reorder.WithStrict(strict)}
	tables := reorder.NewTables(root)

	names := make([]string, 0, len(cfg.KeyOrder))
	for name := range cfg.KeyOrder {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		segments, err := tables.Named(name)
		if errors.Is(err, reorder.ErrNameNotFound) {
			continue
		}
		for _, seg := range segments {
			if err := reorder.ReorderEntries(seg, cfg.KeyOrder[name], opts...); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrReorderFailure, err)
			}
		}
	}

	if err := tables.Reorder(root, cfg.TableOrder, opts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReorderFailure, err)
	}

	return []byte(root.Text()), nil
}
