package codepoints

import (
	"strings"
	"testing"

	"github.com/npillmayer/s2tfont/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOperations(t *testing.T) {
	s := NewSet('a', 'b', 'c')
	u := NewSet('b', 'c', 'd')
	assert.Equal(t, []rune("abcd"), s.Union(u).Sorted())
	assert.Equal(t, []rune("bc"), s.Intersect(u).Sorted())
	assert.Equal(t, []rune("a"), s.Difference(u).Sorted())
	assert.True(t, NewSet('b').IsSubset(s))
	assert.False(t, u.IsSubset(s))
	assert.True(t, s.ContainsAll([]rune("ca")))
	assert.False(t, s.ContainsAll([]rune("cad")))
	var nilSet Set
	assert.Equal(t, 3, nilSet.Union(s).Len())
	var all []rune
	for r := range s.All() {
		all = append(all, r)
	}
	assert.Equal(t, []rune("abc"), all)
}

func TestAuxiliaryRanges(t *testing.T) {
	aux := FromTable(Auxiliary)
	for _, r := range []rune{' ', '~', 0x3000, 0x3001, 0x301C, 0xFF01, 0xFF64, 0x02B0, 0x3105} {
		assert.True(t, aux.Contains(r), "expected %U in auxiliary set", r)
	}
	for _, r := range []rune{0x7F, 0x4E00, 0x301D, 0xFF65, '国'} {
		assert.False(t, aux.Contains(r), "expected %U not in auxiliary set", r)
	}
}

func TestParseRanges(t *testing.T) {
	rt, err := ParseRanges([]string{"0041-0043", "U+3000", " 4e00 "})
	require.NoError(t, err)
	assert.Equal(t, []rune{'A', 'B', 'C', 0x3000, 0x4E00}, FromTable(rt).Sorted())
	_, err = ParseRanges([]string{"0043-0041"})
	assert.Error(t, err)
	_, err = ParseRanges([]string{"xyz"})
	assert.Error(t, err)
}

func TestReadReference(t *testing.T) {
	list := "\uFEFF# Tongyong Guifan Hanzi Biao\n国\t0001\n\n汉 0002\r\n   \n#台\n湾\n"
	ref, err := ReadReference(strings.NewReader(list))
	require.NoError(t, err)
	assert.Equal(t, []rune("国汉湾"), ref.Sorted())
}

func TestBuildSets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "s2t.font")
	defer teardown()
	//
	font := fonttest.New("国國汉漢台臺湾灣A、")
	ref := NewSet([]rune("国汉台湾发")...) // 发 is not in the font
	sets := Build(font, ref, nil)
	assert.Equal(t, 10, sets.Font.Len())
	assert.Equal(t, []rune("台国汉湾"), sets.Retained.Sorted())
	assert.Equal(t, []rune("A、"), sets.Auxiliary.Sorted())
	assert.Equal(t, 6, sets.Final.Len())
	//
	require.NoError(t, sets.Extend(NewSet([]rune("國臺灣")...)))
	assert.Equal(t, 9, sets.Final.Len())
	assert.Equal(t, []rune("漢"), sets.Drop().Sorted())
	assert.True(t, sets.Final.IsSubset(sets.Font))
	//
	err := sets.Extend(NewSet('發'))
	assert.Error(t, err, "targets outside the font must be rejected")
	assert.Equal(t, 9, sets.Final.Len())
}
