package main

import (
	"sort"

	"github.com/revelaction/srlproj/render"
)

func filesCommand(opts FilesOptions, pattern string, e env, ui UI) error {
	layout, err := newLayout(opts.DataDir, e.logger)
	if err != nil {
		return err
	}

	names, err := layout.Files(pattern)
	if err != nil {
		return err
	}

	var st store
	defer st.Close()

	repo, err := st.Open(opts.DB)
	if err != nil {
		return err
	}

	counts := map[string]int{}
	for _, name := range names {
		n, err := repo.Count(name)
		if err != nil {
			return err
		}
		counts[name] = n
	}

	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	r := render.NewRenderer(ui.Out)
	r.HasPrefix = !opts.NoPrefix
	r.Files(names, counts)
	return nil
}
