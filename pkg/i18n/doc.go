// Package i18n resolves dotted translation keys against a nested translation
// document and keeps track of the visitor's language.
//
// A translation document is a JSON (or YAML) object:
//
//	{
//	    "language": "en_US",
//	    "localizedLanguage": "English",
//	    "translations": {
//	        "form": {"placeholder": "Name"}
//	    },
//	    "titles": {"index": "Home"}
//	}
//
// # Key Resolution
//
// A dotted key is split on "." and each segment is looked up with DeepSearch
// in the result of the previous one. DeepSearch first checks the keys owned by
// the current branch, then descends into nested branches in document order and
// takes the first hit, so "form.placeholder" finds "placeholder" anywhere below
// the first branch that owns or contains "form".
//
// Missing keys never fail: the key itself is returned so that untranslated
// strings stay visible. An empty translation is returned as an empty string.
// The reserved segment "getLang" resolves to the localized language name.
//
//	doc, _ := i18n.ParseJSON(data)
//	i18n.Translate(doc, "form.placeholder", false, nil) // "Name"
//	i18n.Translate(doc, "form.missing", false, nil)     // "form.missing"
//
// # Sessions
//
// A Session binds the resolver to a language, a Store that persists the
// language under the "lang" key and a Fetcher that loads the document:
//
//	s, err := i18n.New(ctx, i18n.Config{
//		FallbackLang: "en_US",
//		Translations: map[string]string{
//			"en_US": "en_US.json",
//			"zh_Hans": "zh_Hans.json",
//		},
//	},
//		i18n.WithStore(store),
//		i18n.WithFetcher(i18n.NewFSFetcher(locales)),
//		i18n.WithReloadFunc(reload),
//	)
//	if err != nil {
//		// i18n.IsUnsupportedLanguage(err): the fallback is already persisted.
//	}
//	if err := s.Load(ctx); err != nil {
//		return err
//	}
//	title := s.T(ctx, "form.placeholder")
//
// SetLang persists a new language and calls the ReloadFunc; the host is
// responsible for starting over with a fresh Session.
//
// Pluralization, interpolation, locale formatting and caching are out of scope.
package i18n
