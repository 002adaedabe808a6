package project

import (
	sent "github.com/revelaction/srlproj/sentence"
)

// tree indexes the dependents of every token of a sentence by id.
type tree struct {
	s        sent.Sentence
	children [][]int
}

func newTree(s sent.Sentence) *tree {
	children := make([][]int, len(s)+1)
	for _, t := range s {
		if t.Head < 1 || t.Head > len(s) {
			continue
		}
		children[t.Head] = append(children[t.Head], t.ID)
	}
	return &tree{s: s, children: children}
}

func (tr *tree) valid(id int) bool {
	return id >= 1 && id <= len(tr.s)
}

// subtree returns the ids governed by head, head included, in ascending
// order. Each token is visited at most once, so cycles in corrupt parses
// terminate.
func (tr *tree) subtree(head int) []int {
	if !tr.valid(head) {
		return nil
	}

	visited := make([]bool, len(tr.s)+1)
	stack := []int{head}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[id] {
			continue
		}
		visited[id] = true

		for _, c := range tr.children[id] {
			if !visited[c] {
				stack = append(stack, c)
			}
		}
	}

	var ids []int
	for id := 1; id <= len(tr.s); id++ {
		if visited[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
