package scanner

import (
	"fmt"
	"sort"
	"strings"
)

// FileTree renders the selected files as an indented directory tree. The
// output is deterministic for a given selection and is embedded in the
// understanding prompt and the report header.
func FileTree(files []SelectedFile) string {
	root := newTreeNode()
	for _, f := range files {
		node := root
		parts := strings.Split(f.Path, "/")
		for _, part := range parts[:len(parts)-1] {
			child, ok := node.dirs[part]
			if !ok {
				child = newTreeNode()
				node.dirs[part] = child
			}
			node = child
		}
		node.files = append(node.files, parts[len(parts)-1])
	}

	var sb strings.Builder
	renderTree(&sb, root, 0)
	return strings.TrimRight(sb.String(), "\n")
}

// LanguageSummary renders language statistics as "ext: count" pairs in
// a stable extension order.
func LanguageSummary(stats map[string]int) string {
	exts := make([]string, 0, len(stats))
	for ext := range stats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	pairs := make([]string, 0, len(exts))
	for _, ext := range exts {
		pairs = append(pairs, fmt.Sprintf("%s: %d", ext, stats[ext]))
	}
	return strings.Join(pairs, ", ")
}

type treeNode struct {
	dirs  map[string]*treeNode
	files []string
}

func newTreeNode() *treeNode {
	return &treeNode{dirs: make(map[string]*treeNode)}
}

func renderTree(sb *strings.Builder, node *treeNode, depth int) {
	indent := strings.Repeat("  ", depth)

	dirNames := make([]string, 0, len(node.dirs))
	for name := range node.dirs {
		dirNames = append(dirNames, name)
	}
	sort.Strings(dirNames)

	for _, name := range dirNames {
		sb.WriteString(indent + name + "/\n")
		renderTree(sb, node.dirs[name], depth+1)
	}

	files := append([]string(nil), node.files...)
	sort.Strings(files)
	for _, name := range files {
		sb.WriteString(indent + name + "\n")
	}
}
