package resolve

import (
	"slices"
	"sort"

	"github.com/alexisbeaulieu97/snygg/internal/snygg/value"
)

// Cycles returns every reference cycle among defines. Each cycle starts and
// ends with the same key, e.g. [--a --b --a]. Results are deterministic.
func Cycles(defines map[string]value.Value) [][]string {
	graph := make(map[string][]string, len(defines))
	for key, v := range defines {
		var deps []string
		for _, ref := range value.References(v) {
			if _, ok := defines[ref]; ok {
				deps = append(deps, ref)
			}
		}
		graph[key] = deps
	}

	visiting := make(map[string]bool, len(graph))
	visited := make(map[string]bool, len(graph))
	var stack []string
	var cycles [][]string

	var dfs func(string)
	dfs = func(node string) {
		visiting[node] = true
		stack = append(stack, node)

		for _, dep := range graph[node] {
			if visited[dep] {
				continue
			}
			if visiting[dep] {
				idx := slices.Index(stack, dep)
				if idx >= 0 {
					cycle := append([]string{}, stack[idx:]...)
					cycles = append(cycles, append(cycle, dep))
				}
				continue
			}
			dfs(dep)
		}

		visiting[node] = false
		visited[node] = true
		stack = stack[:len(stack)-1]
	}

	keys := make([]string, 0, len(graph))
	for key := range graph {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !visited[key] {
			dfs(key)
		}
	}

	return cycles
}

// Missing returns the referenced keys of v that defines does not declare.
func Missing(v value.Value, defines map[string]value.Value) []string {
	var missing []string
	for _, ref := range value.References(v) {
		if _, ok := defines[ref]; !ok {
			missing = append(missing, ref)
		}
	}
	return missing
}
