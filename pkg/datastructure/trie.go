package datastructure

import (
	"sort"
	"strings"

	"github.com/lintang-b-s/streetmapx/pkg/util"
)

const trieRoot int32 = 0

type trieNode struct {
	char     byte
	end      bool
	children map[byte]int32
}

func newTrieNode(c byte) trieNode {
	return trieNode{char: c, children: make(map[byte]int32)}
}

// Trie. character trie over canonical names (see util.CleanString). nodes live in one slice and refer to
// their children by index. built once by repeated Add, never deleted from.
type Trie struct {
	nodes []trieNode
	size  int
}

func NewTrie() *Trie {
	return &Trie{
		nodes: []trieNode{newTrieNode(0)},
	}
}

// Add. insert the canonical form of key. no-op for keys that are blank after canonicalization.
func (t *Trie) Add(key string) {
	key = util.CleanString(key)
	if strings.TrimSpace(key) == "" {
		return
	}

	cur := trieRoot
	for i := 0; i < len(key); i++ {
		c := key[i]
		next, ok := t.nodes[cur].children[c]
		if !ok {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, newTrieNode(c))
			t.nodes[cur].children[c] = next
		}
		cur = next
	}
	if !t.nodes[cur].end {
		t.nodes[cur].end = true
		t.size++
	}
}

// Contains. true iff the canonical form of key was added.
func (t *Trie) Contains(key string) bool {
	node, ok := t.find(util.CleanString(key))
	if !ok {
		return false
	}
	return t.nodes[node].end
}

func (t *Trie) find(key string) (int32, bool) {
	cur := trieRoot
	for i := 0; i < len(key); i++ {
		next, ok := t.nodes[cur].children[key[i]]
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// KeysWithPrefix. every added key starting with the canonical form of prefix, in lexicographic order.
// empty (non-nil) slice when nothing matches.
func (t *Trie) KeysWithPrefix(prefix string) []string {
	prefix = util.CleanString(prefix)
	keys := make([]string, 0)

	node, ok := t.find(prefix)
	if !ok {
		return keys
	}

	buf := []byte(prefix)
	return t.collect(node, buf, keys)
}

// collect. depth-first walk below node, buf holds the key spelled by the path from the root to node.
func (t *Trie) collect(node int32, buf []byte, keys []string) []string {
	n := t.nodes[node]
	if n.end {
		keys = append(keys, string(buf))
	}

	chars := make([]byte, 0, len(n.children))
	for c := range n.children {
		chars = append(chars, c)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	for _, c := range chars {
		child := n.children[c]
		keys = t.collect(child, append(buf, t.nodes[child].char), keys)
	}
	return keys
}

// Size. number of distinct keys.
func (t *Trie) Size() int {
	return t.size
}
