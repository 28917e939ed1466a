package plot

import (
	"fmt"

	"git.sr.ht/~whereswaldon/soqview/dataset"
)

// DefaultType is the metric shown when none is chosen.
const DefaultType = "psnr"

// OthersOpacity is the opacity of comparison series drawn behind the
// primary one.
const OthersOpacity = 0.3

// Selection chooses which series of a document a chart shows: the
// metric Type, a Primary trace drawn on top and Others drawn faded
// behind it. Names are keys under the Type node.
type Selection struct {
	Type    string
	Primary string
	Others  []string
}

// Resolve fills unset fields from ds. The type defaults to DefaultType
// and the primary trace to the last name under the type.
func (s Selection) Resolve(ds *dataset.Dataset) (Selection, error) {
	if s.Type == "" {
		s.Type = DefaultType
	}
	if s.Primary != "" {
		return s, nil
	}
	node, err := ds.Child(s.Type)
	if err != nil {
		return s, fmt.Errorf("resolving type: %w", err)
	}
	names := node.Names()
	if len(names) == 0 {
		return s, fmt.Errorf("type %q has no traces: %w", s.Type, dataset.ErrNotFound)
	}
	s.Primary = names[len(names)-1]
	return s, nil
}

// Populate resets c with opts and adds the selected series: every other
// trace at OthersOpacity, then the primary trace last so it draws on top.
// Others equal to the primary are skipped.
func Populate(c *Chart, ds *dataset.Dataset, sel Selection, opts Options) error {
	sel, err := sel.Resolve(ds)
	if err != nil {
		return err
	}
	primary, err := ds.Series(sel.Type, sel.Primary)
	if err != nil {
		return fmt.Errorf("primary trace: %w", err)
	}
	if opts.FPS <= 0 {
		opts.FPS = ds.Meta().FPS()
	}
	c.Reset(opts)
	for _, name := range sel.Others {
		if name == sel.Primary {
			continue
		}
		s, err := ds.Series(sel.Type, name)
		if err != nil {
			return fmt.Errorf("other trace: %w", err)
		}
		if err := c.SetVisibility(c.AddSeries(s), OthersOpacity); err != nil {
			return err
		}
	}
	c.AddSeries(primary)
	return nil
}
