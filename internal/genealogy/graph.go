// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genealogy

import "errors"

// ErrCycle is returned when a parent-child edge would make someone their own ancestor.
var ErrCycle = errors.New("genealogy: relationship would create an ancestry cycle")

// Graph is the directed parent → child graph built from parent-child relationships.
//
// # Concurrency
//
// Graph is not safe for concurrent use. Build one per operation.
type Graph struct {
	children map[string][]string
	parents  map[string][]string
}

// NewGraph builds a graph from every parent-child relationship in relationships.
// Spouse relationships are ignored. No cycle check is performed here; use
// [Graph.Admit] when the input is untrusted.
func NewGraph(relationships []Relationship) *Graph {
	graph := &Graph{
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}
	for _, relationship := range relationships {
		if !relationship.IsParentChild() {
			continue
		}
		for _, parentID := range relationship.ParentIDs {
			graph.addEdge(parentID, relationship.ChildID)
		}
	}
	return graph
}

// WouldCreateCycle reports whether adding parentID → childID closes a cycle,
// i.e. the child is the parent or already one of the parent's ancestors.
func (graph *Graph) WouldCreateCycle(parentID, childID string) bool {
	if parentID == childID {
		return true
	}
	return graph.reaches(childID, parentID, graph.children)
}

// Admit checks rel against the graph and adds its edges when no cycle results.
//
// The check happens for every parent before any edge is added, so a rejected
// relationship leaves the graph untouched.
func (graph *Graph) Admit(rel Relationship) error {
	if !rel.IsParentChild() {
		return nil
	}
	for _, parentID := range rel.ParentIDs {
		if graph.WouldCreateCycle(parentID, rel.ChildID) {
			return ErrCycle
		}
	}
	for _, parentID := range rel.ParentIDs {
		graph.addEdge(parentID, rel.ChildID)
	}
	return nil
}

// Ancestors lists every individual reachable through parent edges, nearest first.
func (graph *Graph) Ancestors(individualID string) []string {
	return graph.walk(individualID, graph.parents)
}

// Descendants lists every individual reachable through child edges, nearest first.
func (graph *Graph) Descendants(individualID string) []string {
	return graph.walk(individualID, graph.children)
}

func (graph *Graph) addEdge(parentID, childID string) {
	for _, existing := range graph.children[parentID] {
		if existing == childID {
			return
		}
	}
	graph.children[parentID] = append(graph.children[parentID], childID)
	graph.parents[childID] = append(graph.parents[childID], parentID)
}

// reaches runs an iterative depth-first search from start looking for target.
func (graph *Graph) reaches(start, target string, edges map[string][]string) bool {
	stack := []string{start}
	seen := map[string]bool{start: true}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == target {
			return true
		}
		for _, next := range edges[current] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// walk is a breadth-first traversal so that closer relatives come first.
func (graph *Graph) walk(start string, edges map[string][]string) []string {
	var result []string
	queue := []string{start}
	seen := map[string]bool{start: true}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range edges[current] {
			if seen[next] {
				continue
			}
			seen[next] = true
			result = append(result, next)
			queue = append(queue, next)
		}
	}
	return result
}
