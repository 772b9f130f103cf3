package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
)

func mustParse(t *testing.T, data string) *i18n.Document {
	t.Helper()
	doc, err := i18n.ParseJSON([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestDeepSearch(t *testing.T) {
	t.Parallel()

	t.Run("echoes key for non-branch input", func(t *testing.T) {
		t.Parallel()
		res := i18n.DeepSearch(i18n.Found(i18n.Leaf("text")), "title")
		s, ok := res.Leaf()
		require.True(t, ok)
		require.Equal(t, "title", s)

		res = i18n.DeepSearch(i18n.Value{}, "title")
		s, ok = res.Leaf()
		require.True(t, ok)
		require.Equal(t, "title", s)
	})

	t.Run("returns own entry including empty string", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"a": "", "b": {"c": "d"}}`)

		res := i18n.DeepSearch(doc.Root(), "a")
		require.True(t, res.IsEmptyString())

		res = i18n.DeepSearch(doc.Root(), "b")
		b, ok := res.Branch()
		require.True(t, ok)
		require.Equal(t, []string{"c"}, b.Keys())
	})

	t.Run("first matching branch wins", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{
			"one": {"target": {"v": "first"}},
			"two": {"target": {"v": "second"}}
		}`)

		res := i18n.DeepSearch(doc.Root(), "target")
		b, ok := res.Branch()
		require.True(t, ok)
		v, _ := b.Get("v")
		require.Equal(t, i18n.Leaf("first"), v)
	})

	t.Run("skips falsy nested results", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{
			"one": {"x": ""},
			"two": {"x": {}},
			"three": {"x": "found"}
		}`)

		s, ok := i18n.DeepSearch(doc.Root(), "x").Leaf()
		require.True(t, ok)
		require.Equal(t, "found", s)
	})

	t.Run("skips zero false and null nested results", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{
			"a": {"x": 0},
			"b": {"x": false},
			"c": {"x": null},
			"d": {"x": "hi"}
		}`)

		s, ok := i18n.DeepSearch(doc.Root(), "x").Leaf()
		require.True(t, ok)
		require.Equal(t, "hi", s)
	})

	t.Run("returns own falsy scalar as-is", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"x": 0, "d": {"x": "hi"}}`)

		res := i18n.DeepSearch(doc.Root(), "x")
		sc, ok := res.Scalar()
		require.True(t, ok)
		require.Equal(t, "0", sc.Text)
		require.False(t, res.Truthy())
	})

	t.Run("echoes key for scalar input", func(t *testing.T) {
		t.Parallel()
		s, ok := i18n.DeepSearch(i18n.Found(i18n.Bool(true)), "x").Leaf()
		require.True(t, ok)
		require.Equal(t, "x", s)
	})

	t.Run("skips leaf entries while descending", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"k0": "leaf", "nested": {"deep": {"k": "v"}}}`)

		s, ok := i18n.DeepSearch(doc.Root(), "k").Leaf()
		require.True(t, ok)
		require.Equal(t, "v", s)
	})

	t.Run("returns absent when nothing matches", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, `{"a": {"b": "c"}, "d": "e"}`)

		require.True(t, i18n.DeepSearch(doc.Root(), "missing").IsAbsent())
	})
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{
		"language": "en_US",
		"translations": {
			"hello": "Hello",
			"empty": "",
			"form": {
				"placeholder": "Name",
				"blank": "",
				"submit": {"label": "Send"}
			},
			"early": {"b": {"c": "wrong"}, "c": "also wrong"},
			"a": {"b": {"c": "right"}},
			"g": {
				"zero": 0, "off": false, "nul": null, "count": 2, "on": true,
				"sub": {"nul": "deep"},
				"a": {"x": 0},
				"b": {"x": "hi"}
			},
			"count": 0,
			"enabled": false,
			"nothing": null
		},
		"titles": {"index": "Welcome"}
	}`)

	localized := func() string { return "English" }

	tests := []struct {
		name string
		key  string
		want string
		meta bool
	}{
		{name: "single segment", key: "hello", want: "Hello"},
		{name: "single segment missing echoes key", key: "nope", want: "nope"},
		{name: "single segment empty string", key: "empty", want: ""},
		{name: "nested key", key: "form.placeholder", want: "Name"},
		{name: "nested missing echoes key", key: "form.missing", want: "form.missing"},
		{name: "nested empty string", key: "form.blank", want: ""},
		{name: "segment found by deep search", key: "submit.label", want: "Send"},
		{name: "path is followed from the previous segment", key: "a.b.c", want: "right"},
		{name: "segment after a leaf echoes the segment", key: "hello.world", want: "world"},
		{name: "segment after a miss echoes the segment", key: "form.missing.deeper", want: "deeper"},
		{name: "branch result echoes key", key: "form", want: "form"},
		{name: "nested zero echoes key", key: "g.zero", want: "g.zero"},
		{name: "nested false echoes key", key: "g.off", want: "g.off"},
		{name: "nested null stops descent and echoes key", key: "g.nul", want: "g.nul"},
		{name: "nested number renders literal", key: "g.count", want: "2"},
		{name: "nested true renders literal", key: "g.on", want: "true"},
		{name: "falsy result in earlier branch is skipped", key: "g.x", want: "hi"},
		{name: "single segment zero renders literal", key: "count", want: "0"},
		{name: "single segment false renders literal", key: "enabled", want: "false"},
		{name: "single segment null echoes key", key: "nothing", want: "nothing"},
		{name: "getLang", key: "getLang", want: "English"},
		{name: "getLang anywhere in the path", key: "form.getLang.x", want: "English"},
		{name: "meta lookup", key: "titles.index", want: "Welcome", meta: true},
		{name: "meta single segment", key: "language", want: "en_US", meta: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.Translate(doc, tt.key, tt.meta, localized))
		})
	}

	t.Run("nil document echoes key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "form.placeholder", i18n.Translate(nil, "form.placeholder", false, nil))
		assert.Equal(t, "hello", i18n.Translate(nil, "hello", false, nil))
	})

	t.Run("getLang without resolver echoes key", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "getLang", i18n.Translate(doc, "getLang", false, nil))
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"translations": {"form": {"placeholder": "Name"}}}`)

	t.Run("exposes branches", func(t *testing.T) {
		t.Parallel()
		b, ok := i18n.Resolve(doc, "form", false).Branch()
		require.True(t, ok)
		require.Equal(t, 1, b.Len())
	})

	t.Run("absent for missing single key", func(t *testing.T) {
		t.Parallel()
		require.True(t, i18n.Resolve(doc, "missing", false).IsAbsent())
	})

	t.Run("absent without translations subtree", func(t *testing.T) {
		t.Parallel()
		bare := mustParse(t, `{"language": "en_US"}`)
		require.True(t, i18n.Resolve(bare, "hello", false).IsAbsent())
	})
}

func TestSplitKey(t *testing.T) {
	t.Parallel()
	require.Equal(t, []string{"form", "placeholder"}, i18n.SplitKey("form.placeholder"))
	require.Equal(t, []string{"hello"}, i18n.SplitKey("hello"))
}
