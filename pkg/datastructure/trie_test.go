package datastructure

import (
	"sort"
	"strings"
	"testing"

	"github.com/lintang-b-s/streetmapx/pkg/util"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
)

func TestTrieKeysWithPrefix(t *testing.T) {
	trie := NewTrie()
	trie.Add("cafe")
	trie.Add("cafeteria")
	trie.Add("car")
	trie.Add("berkeley bowl")

	testCases := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "shared prefix", prefix: "caf", want: []string{"cafe", "cafeteria"}},
		{name: "prefix is a key", prefix: "cafe", want: []string{"cafe", "cafeteria"}},
		{name: "prefix is canonicalized", prefix: "CA!", want: []string{"cafe", "cafeteria", "car"}},
		{name: "prefix with space", prefix: "berkeley b", want: []string{"berkeley bowl"}},
		{name: "no match", prefix: "zebra", want: []string{}},
		{name: "longer than any key", prefix: "cafeterias", want: []string{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := trie.KeysWithPrefix(tt.prefix)
			assert.NotNil(t, got)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestTrieContains(t *testing.T) {
	trie := NewTrie()
	trie.Add("Main St.")
	trie.Add("cafe")

	assert.True(t, trie.Contains("main st"))
	assert.True(t, trie.Contains("MAIN ST"))
	assert.True(t, trie.Contains("cafe"))
	assert.False(t, trie.Contains("caf"))
	assert.False(t, trie.Contains("cafes"))
	assert.False(t, trie.Contains(""))
}

func TestTrieIgnoresBlankKeys(t *testing.T) {
	trie := NewTrie()
	trie.Add("")
	trie.Add("   ")
	trie.Add("1234.")

	assert.Equal(t, 0, trie.Size())
	assert.Empty(t, trie.KeysWithPrefix(""))
}

func TestTrieDuplicateAdd(t *testing.T) {
	trie := NewTrie()
	trie.Add("cafe")
	trie.Add("Cafe")
	trie.Add("cafe!")

	assert.Equal(t, 1, trie.Size())
	assert.Equal(t, []string{"cafe"}, trie.KeysWithPrefix(""))
}

func randomName(rd *rand.Rand) string {
	alphabet := "abcAB C.1'"
	n := 1 + rd.Intn(8)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[rd.Intn(len(alphabet))])
	}
	return sb.String()
}

func TestTrieMatchesLinearScan(t *testing.T) {
	rd := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		trie := NewTrie()
		inserted := make(map[string]struct{})
		for i := 0; i < 200; i++ {
			name := randomName(rd)
			trie.Add(name)
			clean := util.CleanString(name)
			if strings.TrimSpace(clean) != "" {
				inserted[clean] = struct{}{}
			}
		}

		all := trie.KeysWithPrefix("")
		assert.Len(t, all, len(inserted))
		assert.Equal(t, len(inserted), trie.Size())
		for k := range inserted {
			assert.True(t, trie.Contains(k))
		}

		for q := 0; q < 30; q++ {
			prefix := randomName(rd)
			if q%5 == 0 {
				prefix = prefix[:1]
			}
			cleanPrefix := util.CleanString(prefix)

			want := make([]string, 0)
			for k := range inserted {
				if strings.HasPrefix(k, cleanPrefix) {
					want = append(want, k)
				}
			}
			sort.Strings(want)

			got := trie.KeysWithPrefix(prefix)
			assert.Equal(t, want, got, "prefix %q", prefix)
		}
	}
}
